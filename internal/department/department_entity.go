package department

import (
	"time"

	"go-ems/internal/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Department struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string          `gorm:"column:name;size:255;not null;uniqueIndex:uq_department_name,where:deleted_at IS NULL"`
	Description string          `gorm:"column:description;type:text"`
	Budget      decimal.Decimal `gorm:"column:budget;type:numeric(15,2);not null;default:0"`
	ManagerID   *uuid.UUID      `gorm:"column:manager_id;type:uuid;index"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt   gorm.DeletedAt  `gorm:"column:deleted_at;index"`

	Manager *user.User `gorm:"foreignKey:ManagerID;references:ID"`
}

func (Department) TableName() string {
	return "departments"
}

// DepartmentWithCount carries the number of active employees alongside the
// department row.
type DepartmentWithCount struct {
	Department
	EmployeeCount int64 `gorm:"column:employee_count"`
}
