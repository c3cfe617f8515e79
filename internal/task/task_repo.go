package task

import (
	"context"

	"go-ems/internal/shared/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"title":     "tasks.title",
	"status":    "tasks.status",
	"priority":  "tasks.priority",
	"dueDate":   "tasks.due_date",
	"createdAt": "tasks.created_at",
	"updatedAt": "tasks.updated_at",
}

//go:generate mockgen -source=task_repo.go -destination=mock/task_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	List(ctx context.Context, filter ListFilter) ([]Task, int64, error)
	Update(ctx context.Context, t *Task) error
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

func (r *repository) Create(ctx context.Context, t *Task) error {
	return r.db.WithContext(ctx).Omit("CreatedBy", "Assignee").Create(t).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	var t Task
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("Assignee").
		Where("tasks.id = ?", id).
		First(&t).Error
	return &t, err
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Task, int64, error) {
	db := r.db.WithContext(ctx).
		Model(&Task{}).
		Scopes(
			query.TextSearch(filter.Search, "tasks.title", "tasks.description"),
			query.DateRange("tasks.due_date", filter.StartDate, filter.EndDate),
		)

	if filter.ParticipantID != nil {
		db = db.Where("(tasks.created_by_id = ? OR tasks.assignee_id = ?)", *filter.ParticipantID, *filter.ParticipantID)
	}
	switch {
	case filter.Unassigned:
		db = db.Where("tasks.assignee_id IS NULL")
	case filter.AssigneeID != nil:
		db = db.Where("tasks.assignee_id = ?", *filter.AssigneeID)
	}
	if filter.Status != "" {
		db = db.Where("tasks.status = ?", filter.Status)
	}
	if filter.Priority != "" {
		db = db.Where("tasks.priority = ?", filter.Priority)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Task
	err := db.
		Preload("CreatedBy").
		Preload("Assignee").
		Scopes(
			query.Sort(filter.SortBy, filter.SortOrder, sortColumns, "tasks.created_at"),
			query.Paginate(filter.Page, filter.Limit),
		).
		Find(&rows).Error

	return rows, total, err
}

func (r *repository) Update(ctx context.Context, t *Task) error {
	return r.db.WithContext(ctx).Omit("CreatedBy", "Assignee").Save(t).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Task{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
