package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-ems/internal/domain"
	"go-ems/internal/notification"
	"go-ems/internal/shared/cache"
	"go-ems/internal/shared/contextutil"
	taskerrors "go-ems/internal/task/errors"
	"go-ems/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=task_service.go -destination=mock/task_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, actor domain.SessionUser, filter ListFilter) ([]TaskResponse, int64, error)
	GetByID(ctx context.Context, actor domain.SessionUser, id uuid.UUID) (TaskResponse, error)
	Create(ctx context.Context, actor domain.SessionUser, req CreateTaskRequest) (TaskResponse, error)
	Update(ctx context.Context, actor domain.SessionUser, id uuid.UUID, req UpdateTaskRequest) (TaskResponse, error)
	UpdateStatus(ctx context.Context, actor domain.SessionUser, id uuid.UUID, status string) (TaskResponse, error)
	Delete(ctx context.Context, actor domain.SessionUser, id uuid.UUID) error
}

type service struct {
	db       *gorm.DB
	repo     Repository
	users    user.Repository
	cache    cache.Store
	notifier notification.Dispatcher
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	users user.Repository,
	store cache.Store,
	notifier notification.Dispatcher,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("task.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("task.service")
	}
	if store == nil {
		store = cache.Nop()
	}
	if notifier == nil {
		notifier = notification.NopDispatcher()
	}
	return &service{
		db:       db,
		repo:     repo,
		users:    users,
		cache:    store,
		notifier: notifier,
		now:      time.Now,
		logger:   l,
	}
}

func (s *service) List(ctx context.Context, actor domain.SessionUser, filter ListFilter) ([]TaskResponse, int64, error) {
	if !actor.Role.IsPrivileged() {
		filter.ParticipantID = &actor.ID
	}

	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list tasks failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}

	now := s.now()
	items := make([]TaskResponse, len(rows))
	for i, t := range rows {
		items[i] = mapToResponse(t, now)
	}
	return items, total, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.SessionUser, id uuid.UUID) (TaskResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}
	if !actor.Role.IsPrivileged() && !t.Involves(actor.ID) {
		return TaskResponse{}, taskerrors.ErrNotParticipant
	}
	return mapToResponse(*t, s.now()), nil
}

func (s *service) Create(ctx context.Context, actor domain.SessionUser, req CreateTaskRequest) (TaskResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	priority := PriorityMedium
	if req.Priority != "" {
		p, ok := ParsePriority(req.Priority)
		if !ok {
			return TaskResponse{}, taskerrors.ErrInvalidPriority
		}
		priority = p
	}

	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return TaskResponse{}, err
	}

	t := &Task{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Status:      StatusPending,
		Priority:    priority,
		DueDate:     due,
		CreatedByID: actor.ID,
	}

	assignee, err := s.resolveAssignee(ctx, s.users, req.AssigneeID)
	if err != nil {
		return TaskResponse{}, err
	}
	if assignee != nil {
		t.AssigneeID = &assignee.ID
		t.Assignee = assignee
	}

	if err := s.repo.Create(ctx, t); err != nil {
		l.Error("create task failed", zap.Error(err))
		return TaskResponse{}, mapRepositoryError(err)
	}
	t.CreatedBy = &user.User{ID: actor.ID, Name: actor.Name, Email: actor.Email}

	s.cache.Invalidate(contextutil.Detach(ctx), cache.TagTasks, cache.TagDashboard)
	s.notifyAssigned(ctx, actor, t)

	l.Info("task created", zap.String("task_id", t.ID.String()))
	return mapToResponse(*t, s.now()), nil
}

func (s *service) Update(ctx context.Context, actor domain.SessionUser, id uuid.UUID, req UpdateTaskRequest) (TaskResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	var (
		updated    *Task
		reassigned bool
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		t, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !actor.Role.IsPrivileged() && t.CreatedByID != actor.ID {
			return taskerrors.ErrNotAssigner
		}

		if req.Title != nil {
			t.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			t.Description = strings.TrimSpace(*req.Description)
		}
		if req.Priority != nil {
			p, ok := ParsePriority(*req.Priority)
			if !ok {
				return taskerrors.ErrInvalidPriority
			}
			t.Priority = p
		}
		if req.DueDate != nil {
			due, err := parseDueDate(*req.DueDate)
			if err != nil {
				return err
			}
			t.DueDate = due
		}
		if req.Status != nil {
			next, ok := ParseStatus(*req.Status)
			if !ok {
				return taskerrors.ErrInvalidStatus
			}
			if err := checkTransition(t.Status, next); err != nil {
				return err
			}
			t.Status = next
		}
		if req.AssigneeID != nil {
			assignee, err := s.resolveAssignee(ctx, s.users.WithTx(tx), *req.AssigneeID)
			if err != nil {
				return err
			}
			previous := t.AssigneeID
			if assignee == nil {
				t.AssigneeID = nil
				t.Assignee = nil
			} else {
				t.AssigneeID = &assignee.ID
				t.Assignee = assignee
				reassigned = previous == nil || *previous != assignee.ID
			}
		}

		if err := repo.Update(ctx, t); err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		l.Warn("update task failed", zap.String("task_id", id.String()), zap.Error(err))
		return TaskResponse{}, mapRepositoryError(err)
	}

	s.cache.Invalidate(contextutil.Detach(ctx), cache.TagTasks, cache.TagDashboard)
	if reassigned {
		s.notifyAssigned(ctx, actor, updated)
	}
	return mapToResponse(*updated, s.now()), nil
}

// UpdateStatus lets any participant move the task along the state machine.
// Setting the current status again changes nothing.
func (s *service) UpdateStatus(ctx context.Context, actor domain.SessionUser, id uuid.UUID, status string) (TaskResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	next, ok := ParseStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !ok {
		return TaskResponse{}, taskerrors.ErrInvalidStatus
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}
	if !actor.Role.IsPrivileged() && !t.Involves(actor.ID) {
		return TaskResponse{}, taskerrors.ErrNotParticipant
	}
	if t.Status == next {
		return mapToResponse(*t, s.now()), nil
	}
	if err := checkTransition(t.Status, next); err != nil {
		return TaskResponse{}, err
	}

	previous := t.Status
	t.Status = next
	if err := s.repo.Update(ctx, t); err != nil {
		l.Error("update task status failed", zap.String("task_id", id.String()), zap.Error(err))
		return TaskResponse{}, mapRepositoryError(err)
	}

	s.cache.Invalidate(contextutil.Detach(ctx), cache.TagTasks, cache.TagDashboard)
	s.notifyStatusChanged(ctx, actor, t, previous)

	l.Info("task status changed",
		zap.String("task_id", id.String()),
		zap.String("from", string(previous)),
		zap.String("to", string(next)),
	)
	return mapToResponse(*t, s.now()), nil
}

func (s *service) Delete(ctx context.Context, actor domain.SessionUser, id uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		t, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !actor.Role.IsPrivileged() && t.CreatedByID != actor.ID {
			return taskerrors.ErrNotAssigner
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return mapRepositoryError(err)
	}

	s.cache.Invalidate(contextutil.Detach(ctx), cache.TagTasks, cache.TagDashboard)
	contextutil.GetLogger(ctx, s.logger).Info("task deleted", zap.String("task_id", id.String()))
	return nil
}

// resolveAssignee maps the raw assigneeId to an active user; blank and the
// unassigned sentinel yield nil.
func (s *service) resolveAssignee(ctx context.Context, users user.Repository, raw string) (*user.User, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, UnassignedSentinel) {
		return nil, nil
	}

	notFound := taskerrors.ErrAssigneeNotFound.WithMessage("Assignee '%s' not found", raw)
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, notFound
	}
	u, err := users.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound
	}
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, taskerrors.ErrAssigneeNotFound.WithMessage("Assignee '%s' is inactive", u.Name)
	}
	return u, nil
}

func (s *service) notifyAssigned(ctx context.Context, actor domain.SessionUser, t *Task) {
	if t.AssigneeID == nil || *t.AssigneeID == actor.ID {
		return
	}
	s.notifier.Dispatch(ctx, notification.Input{
		UserID:  *t.AssigneeID,
		Type:    notification.TypeTaskAssigned,
		Title:   "New task assigned",
		Message: fmt.Sprintf("%s assigned you \"%s\"", actor.Name, t.Title),
		Link:    "/tasks/" + t.ID.String(),
	})
}

func (s *service) notifyStatusChanged(ctx context.Context, actor domain.SessionUser, t *Task, previous Status) {
	recipients := make([]uuid.UUID, 0, 2)
	if t.CreatedByID != actor.ID {
		recipients = append(recipients, t.CreatedByID)
	}
	if t.AssigneeID != nil && *t.AssigneeID != actor.ID && *t.AssigneeID != t.CreatedByID {
		recipients = append(recipients, *t.AssigneeID)
	}
	if len(recipients) == 0 {
		return
	}

	inputs := make([]notification.Input, len(recipients))
	for i, id := range recipients {
		inputs[i] = notification.Input{
			UserID:  id,
			Type:    notification.TypeTaskStatusChanged,
			Title:   "Task status changed",
			Message: fmt.Sprintf("\"%s\" moved from %s to %s", t.Title, previous, t.Status),
			Link:    "/tasks/" + t.ID.String(),
		}
	}
	s.notifier.Dispatch(ctx, inputs...)
}

func parseDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, taskerrors.ErrInvalidDueDate
	}
	return &d, nil
}
