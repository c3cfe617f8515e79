package task

import (
	"time"

	"go-ems/internal/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

func ParsePriority(raw string) (Priority, bool) {
	switch p := Priority(raw); p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return p, true
	default:
		return "", false
	}
}

type Task struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string         `gorm:"column:title;type:varchar(255);not null"`
	Description string         `gorm:"column:description;type:text"`
	Status      Status         `gorm:"column:status;type:varchar(20);not null;default:PENDING;index"`
	Priority    Priority       `gorm:"column:priority;type:varchar(20);not null;default:MEDIUM"`
	DueDate     *time.Time     `gorm:"column:due_date;type:date"`
	CreatedByID uuid.UUID      `gorm:"column:created_by_id;type:uuid;not null;index"`
	AssigneeID  *uuid.UUID     `gorm:"column:assignee_id;type:uuid;index"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`

	CreatedBy *user.User `gorm:"foreignKey:CreatedByID"`
	Assignee  *user.User `gorm:"foreignKey:AssigneeID"`
}

func (Task) TableName() string {
	return "tasks"
}

// Involves reports whether the user created the task or is assigned to it.
func (t Task) Involves(userID uuid.UUID) bool {
	return t.CreatedByID == userID || (t.AssigneeID != nil && *t.AssigneeID == userID)
}
