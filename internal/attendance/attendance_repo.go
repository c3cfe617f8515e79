package attendance

import (
	"context"
	"time"

	"go-ems/internal/shared/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var sortColumns = map[string]string{
	"date":       "attendances.date",
	"checkIn":    "attendances.check_in",
	"totalHours": "attendances.total_hours",
	"status":     "attendances.status",
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time, forUpdate bool) (*Attendance, error)
	List(ctx context.Context, filter ListFilter) ([]Attendance, int64, error)
	Update(ctx context.Context, a *Attendance) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time, forUpdate bool) (*Attendance, error) {
	db := r.db.WithContext(ctx)
	if forUpdate {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var a Attendance
	err := db.
		Where("employee_id = ?", employeeID).
		Where("date = ?", date.Format("2006-01-02")).
		First(&a).Error
	return &a, err
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Attendance, int64, error) {
	db := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Joins("JOIN employees ON employees.id = attendances.employee_id").
		Joins("JOIN users ON users.id = attendances.user_id").
		Joins("LEFT JOIN departments ON departments.id = employees.department_id").
		Scopes(
			query.TextSearch(filter.Search, "users.name", "employees.employee_code"),
			query.DateRange("attendances.date", filter.StartDate, filter.EndDate),
		)

	if filter.UserID != nil {
		db = db.Where("attendances.user_id = ?", *filter.UserID)
	}
	if filter.EmployeeID != nil {
		db = db.Where("attendances.employee_id = ?", *filter.EmployeeID)
	}
	if filter.Status != "" {
		db = db.Where("attendances.status = ?", filter.Status)
	}
	db = db.Scopes(query.MatchRef(filter.Department, "employees.department_id", "departments.name"))

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Attendance
	err := db.
		Preload("Employee.User").
		Preload("Employee.Department").
		Scopes(
			query.Sort(filter.SortBy, filter.SortOrder, sortColumns, "attendances.date"),
			query.Paginate(filter.Page, filter.Limit),
		).
		Find(&rows).Error

	return rows, total, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Omit("Employee").Save(a).Error
}
