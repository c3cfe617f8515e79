package department

import (
	"context"
	"strings"

	"go-ems/internal/shared/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"name":      "departments.name",
	"budget":    "departments.budget",
	"createdAt": "departments.created_at",
}

const employeeCountSelect = `departments.*, (
	SELECT COUNT(*) FROM employees e
	WHERE e.department_id = departments.id AND e.is_active = true AND e.deleted_at IS NULL
) AS employee_count`

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, dept *Department) error
	List(ctx context.Context, filter ListFilter) ([]DepartmentWithCount, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*DepartmentWithCount, error)
	FindByName(ctx context.Context, name string) (*Department, error)
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
	CountActiveEmployees(ctx context.Context, id uuid.UUID) (int64, error)
	Update(ctx context.Context, dept *Department) error
	Delete(ctx context.Context, id uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]DepartmentWithCount, int64, error) {
	db := r.db.WithContext(ctx).
		Model(&Department{}).
		Scopes(query.TextSearch(filter.Search, "departments.name", "departments.description"))

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []DepartmentWithCount
	err := db.
		Select(employeeCountSelect).
		Preload("Manager").
		Scopes(
			query.Sort(filter.SortBy, filter.SortOrder, sortColumns, "departments.name"),
			query.Paginate(filter.Page, filter.Limit),
		).
		Find(&rows).Error

	return rows, total, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*DepartmentWithCount, error) {
	var row DepartmentWithCount
	err := r.db.WithContext(ctx).
		Model(&Department{}).
		Select(employeeCountSelect).
		Preload("Manager").
		Where("departments.id = ?", id).
		First(&row).Error
	return &row, err
}

func (r *repository) FindByName(ctx context.Context, name string) (*Department, error) {
	var dept Department
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&dept).Error
	return &dept, err
}

func (r *repository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Department{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if excludeID != nil {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) CountActiveEmployees(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("department_id = ? AND is_active = ? AND deleted_at IS NULL", id, true).
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Omit("Manager").Save(dept).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Department{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
