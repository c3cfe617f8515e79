package employee

import (
	"context"
	"strings"
	"time"

	"go-ems/internal/shared/query"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"name":       "users.name",
	"email":      "users.email",
	"employeeId": "employees.employee_code",
	"position":   "employees.position",
	"hireDate":   "employees.hire_date",
	"salary":     "employees.salary",
	"status":     "employees.status",
	"createdAt":  "employees.created_at",
}

// StatsRow is one (department, status, active) group of employees.
type StatsRow struct {
	DepartmentName string          `gorm:"column:department_name"`
	Status         Status          `gorm:"column:status"`
	IsActive       bool            `gorm:"column:is_active"`
	Count          int64           `gorm:"column:count"`
	RecentHires    int64           `gorm:"column:recent_hires"`
	SalarySum      decimal.Decimal `gorm:"column:salary_sum"`
}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Employee, error)
	FindByName(ctx context.Context, name string) (*Employee, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]Employee, int64, error)
	ListActive(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, e *Employee) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	StatsRows(ctx context.Context, hiredSince time.Time) ([]StatsRow, error)
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Omit("User", "Department", "Manager").Create(e).Error
}

func (r *repository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User").
		Preload("Department").
		Preload("Manager").
		Preload("Manager.User")
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var e Employee
	err := r.withRelations(ctx).Where("employees.id = ?", id).First(&e).Error
	return &e, err
}

func (r *repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*Employee, error) {
	var e Employee
	err := r.withRelations(ctx).Where("employees.user_id = ?", userID).First(&e).Error
	return &e, err
}

// FindByName matches the linked user's name, case-insensitively.
func (r *repository) FindByName(ctx context.Context, name string) (*Employee, error) {
	var e Employee
	err := r.withRelations(ctx).
		Joins("JOIN users ON users.id = employees.user_id AND users.deleted_at IS NULL").
		Where("LOWER(users.name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Where("employees.is_active = ?", true).
		First(&e).Error
	return &e, err
}

func (r *repository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("LOWER(employee_code) = ?", strings.ToLower(strings.TrimSpace(code))).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Employee, int64, error) {
	db := r.db.WithContext(ctx).
		Model(&Employee{}).
		Joins("JOIN users ON users.id = employees.user_id").
		Joins("LEFT JOIN departments ON departments.id = employees.department_id").
		Scopes(query.TextSearch(filter.Search,
			"users.name", "users.email", "employees.employee_code", "employees.position"))

	if filter.UserID != nil {
		db = db.Where("employees.user_id = ?", *filter.UserID)
	}
	if !filter.IncludeInactive {
		db = db.Where("employees.is_active = ?", true)
	}
	if filter.Status != "" {
		db = db.Where("employees.status = ?", filter.Status)
	}
	db = db.Scopes(query.MatchRef(filter.Department, "employees.department_id", "departments.name"))

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Employee
	err := db.
		Preload("User").
		Preload("Department").
		Preload("Manager.User").
		Scopes(
			query.Sort(filter.SortBy, filter.SortOrder, sortColumns, "employees.created_at"),
			query.Paginate(filter.Page, filter.Limit),
		).
		Find(&rows).Error

	return rows, total, err
}

func (r *repository) ListActive(ctx context.Context) ([]Employee, error) {
	var rows []Employee
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Department").
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Omit("User", "Department", "Manager").Save(e).Error
}

func (r *repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]any{"is_active": false, "status": StatusInactive})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) StatsRows(ctx context.Context, hiredSince time.Time) ([]StatsRow, error) {
	var rows []StatsRow
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Select(`COALESCE(departments.name, '') AS department_name,
			employees.status AS status,
			employees.is_active AS is_active,
			COUNT(*) AS count,
			COUNT(*) FILTER (WHERE employees.hire_date >= ?) AS recent_hires,
			COALESCE(SUM(employees.salary), 0) AS salary_sum`, hiredSince).
		Joins("LEFT JOIN departments ON departments.id = employees.department_id").
		Group("departments.name, employees.status, employees.is_active").
		Scan(&rows).Error
	return rows, err
}
