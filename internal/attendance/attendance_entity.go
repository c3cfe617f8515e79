package attendance

import (
	"time"

	"go-ems/internal/employee"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPresent    Status = "PRESENT"
	StatusLate       Status = "LATE"
	StatusEarlyLeave Status = "EARLY_LEAVE"
	StatusAbsent     Status = "ABSENT"
)

func ParseStatus(raw string) (Status, bool) {
	switch s := Status(raw); s {
	case StatusPresent, StatusLate, StatusEarlyLeave, StatusAbsent:
		return s, true
	default:
		return "", false
	}
}

type Attendance struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	EmployeeID uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_date,priority:1"`
	Date       time.Time  `gorm:"column:date;type:date;not null;uniqueIndex:uq_attendance_employee_date,priority:2;index"`
	CheckIn    time.Time  `gorm:"column:check_in;type:timestamptz;not null"`
	CheckOut   *time.Time `gorm:"column:check_out;type:timestamptz"`
	TotalHours float64    `gorm:"column:total_hours;type:numeric(5,2);not null;default:0"`
	Status     Status     `gorm:"column:status;type:varchar(20);not null;default:PRESENT;index"`
	Latitude   *float64   `gorm:"column:latitude"`
	Longitude  *float64   `gorm:"column:longitude"`
	Notes      *string    `gorm:"column:notes;type:text"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	Employee *employee.Employee `gorm:"foreignKey:EmployeeID"`
}

func (Attendance) TableName() string {
	return "attendances"
}
