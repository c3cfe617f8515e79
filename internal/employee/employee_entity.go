package employee

import (
	"time"

	"go-ems/internal/department"
	"go-ems/internal/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusActive     Status = "ACTIVE"
	StatusInactive   Status = "INACTIVE"
	StatusOnLeave    Status = "ON_LEAVE"
	StatusTerminated Status = "TERMINATED"
)

func ParseStatus(raw string) (Status, bool) {
	switch s := Status(raw); s {
	case StatusActive, StatusInactive, StatusOnLeave, StatusTerminated:
		return s, true
	default:
		return "", false
	}
}

type Employee struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeCode string          `gorm:"column:employee_code;type:varchar(50);not null;uniqueIndex:uq_employee_code"`
	UserID       uuid.UUID       `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_employee_user"`
	DepartmentID *uuid.UUID      `gorm:"column:department_id;type:uuid;index"`
	ManagerID    *uuid.UUID      `gorm:"column:manager_id;type:uuid;index"`
	Position     string          `gorm:"column:position;type:varchar(255)"`
	Salary       decimal.Decimal `gorm:"column:salary;type:numeric(15,2);not null;default:0"`
	HireDate     time.Time       `gorm:"column:hire_date;type:date;not null"`
	Status       Status          `gorm:"column:status;type:varchar(20);not null;default:ACTIVE"`
	IsActive     bool            `gorm:"column:is_active;not null;default:true;index"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt    gorm.DeletedAt  `gorm:"column:deleted_at;index"`

	User       *user.User             `gorm:"foreignKey:UserID"`
	Department *department.Department `gorm:"foreignKey:DepartmentID"`
	Manager    *Employee              `gorm:"foreignKey:ManagerID"`
}

func (Employee) TableName() string {
	return "employees"
}

// Name is the display name, which lives on the linked user.
func (e Employee) Name() string {
	if e.User == nil {
		return ""
	}
	return e.User.Name
}
