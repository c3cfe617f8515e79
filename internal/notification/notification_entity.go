package notification

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeEmployeeOnboarded Type = "EMPLOYEE_ONBOARDED"
	TypeTaskAssigned      Type = "TASK_ASSIGNED"
	TypeTaskStatusChanged Type = "TASK_STATUS_CHANGED"
	TypeDepartmentChanged Type = "DEPARTMENT_CHANGED"
	TypeBroadcast         Type = "BROADCAST"
)

type Notification struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:idx_notification_user_read,priority:1"`
	Type      Type       `gorm:"column:type;type:varchar(50);not null"`
	Title     string     `gorm:"column:title;type:varchar(255);not null"`
	Message   string     `gorm:"column:message;type:text;not null"`
	Link      string     `gorm:"column:link;type:text"`
	IsRead    bool       `gorm:"column:is_read;not null;default:false;index:idx_notification_user_read,priority:2"`
	ReadAt    *time.Time `gorm:"column:read_at"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime;index"`
}

func (Notification) TableName() string {
	return "notifications"
}

// Input describes one notification to deliver to one user. ID may be preset
// so a redelivered message inserts the same row.
type Input struct {
	ID      uuid.UUID `json:"id,omitempty"`
	UserID  uuid.UUID `json:"userId"`
	Type    Type      `json:"type"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Link    string    `json:"link,omitempty"`
}

func (in Input) toEntity() Notification {
	id := in.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return Notification{
		ID:      id,
		UserID:  in.UserID,
		Type:    in.Type,
		Title:   in.Title,
		Message: in.Message,
		Link:    in.Link,
	}
}
