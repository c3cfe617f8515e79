package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	AttendanceRows(ctx context.Context, start, end time.Time, departmentID *uuid.UUID) ([]AttendanceRow, error)
	TaskRows(ctx context.Context, start, end time.Time, departmentID *uuid.UUID) ([]TaskRow, error)
	RecentTasks(ctx context.Context, limit int) ([]TaskRow, error)
	CountActiveEmployees(ctx context.Context) (int64, error)
	CountDepartments(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) AttendanceRows(ctx context.Context, start, end time.Time, departmentID *uuid.UUID) ([]AttendanceRow, error) {
	db := r.db.WithContext(ctx).
		Table("attendances AS a").
		Select(`a.employee_id, e.employee_code, u.name AS employee_name,
			COALESCE(d.name, '') AS department, a.date, a.status, a.total_hours`).
		Joins("JOIN employees e ON e.id = a.employee_id").
		Joins("JOIN users u ON u.id = a.user_id").
		Joins("LEFT JOIN departments d ON d.id = e.department_id").
		Where("a.date BETWEEN ? AND ?", start.Format(time.DateOnly), end.Format(time.DateOnly))

	if departmentID != nil {
		db = db.Where("e.department_id = ?", *departmentID)
	}

	var rows []AttendanceRow
	err := db.Order("a.date ASC").Scan(&rows).Error
	return rows, err
}

func (r *repository) taskQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("tasks AS t").
		Select(`t.id, t.title, t.status, t.priority, t.assignee_id,
			COALESCE(u.name, '') AS assignee_name, COALESCE(d.name, '') AS department,
			t.due_date, t.created_at, t.updated_at`).
		Joins("LEFT JOIN users u ON u.id = t.assignee_id").
		Joins("LEFT JOIN employees e ON e.user_id = t.assignee_id").
		Joins("LEFT JOIN departments d ON d.id = e.department_id").
		Where("t.deleted_at IS NULL")
}

func (r *repository) TaskRows(ctx context.Context, start, end time.Time, departmentID *uuid.UUID) ([]TaskRow, error) {
	db := r.taskQuery(ctx).Where("t.created_at BETWEEN ? AND ?", start, end)
	if departmentID != nil {
		db = db.Where("e.department_id = ?", *departmentID)
	}

	var rows []TaskRow
	err := db.Order("t.created_at ASC").Scan(&rows).Error
	return rows, err
}

func (r *repository) RecentTasks(ctx context.Context, limit int) ([]TaskRow, error) {
	var rows []TaskRow
	err := r.taskQuery(ctx).Order("t.created_at DESC").Limit(limit).Scan(&rows).Error
	return rows, err
}

func (r *repository) CountActiveEmployees(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("is_active = ? AND deleted_at IS NULL", true).
		Count(&n).Error
	return n, err
}

func (r *repository) CountDepartments(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("departments").
		Where("deleted_at IS NULL").
		Count(&n).Error
	return n, err
}
