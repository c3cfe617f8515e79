package user

import (
	"context"
	"strings"

	"go-ems/internal/domain"
	"go-ems/internal/shared/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListFilter struct {
	Role      *domain.Role
	IsActive  *bool
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

var sortColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"role":      "role",
	"createdAt": "created_at",
}

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByName(ctx context.Context, name string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *User) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	List(ctx context.Context, filter ListFilter) ([]User, int64, error)
	ListActiveIDs(ctx context.Context, role *domain.Role) ([]uuid.UUID, error)
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

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		First(&u, "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).Error
	return &u, err
}

// FindByName matches case-insensitively; it is how human-entered manager
// names are resolved.
func (r *repository) FindByName(ctx context.Context, name string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Order("created_at ASC").
		First(&u).Error
	return &u, err
}

func (r *repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]User, int64, error) {
	db := r.db.WithContext(ctx).Model(&User{}).
		Scopes(query.TextSearch(filter.Search, "name", "email"))

	if filter.Role != nil {
		db = db.Where("role = ?", *filter.Role)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	err := db.
		Scopes(
			query.Sort(filter.SortBy, filter.SortOrder, sortColumns, "created_at"),
			query.Paginate(filter.Page, filter.Limit),
		).
		Find(&users).Error

	return users, total, err
}

// ListActiveIDs returns active user ids, optionally narrowed to one role.
func (r *repository) ListActiveIDs(ctx context.Context, role *domain.Role) ([]uuid.UUID, error) {
	db := r.db.WithContext(ctx).Model(&User{}).Where("is_active = ?", true)
	if role != nil {
		db = db.Where("role = ?", *role)
	}

	var ids []uuid.UUID
	err := db.Pluck("id", &ids).Error
	return ids, err
}
