package notification

import (
	"context"
	"errors"
	"time"

	"go-ems/internal/domain"
	notificationerrors "go-ems/internal/notification/errors"
	"go-ems/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RecipientLister is satisfied by user.Repository.
type RecipientLister interface {
	ListActiveIDs(ctx context.Context, role *domain.Role) ([]uuid.UUID, error)
}

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, page, limit int) (ListResult, error)
	MarkRead(ctx context.Context, userID uuid.UUID, req MarkReadRequest) (int64, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Broadcast(ctx context.Context, req BroadcastRequest) (int, error)
	// Persist stores already-addressed notifications; used by the consumer.
	Persist(ctx context.Context, inputs ...Input) error
}

type service struct {
	repo       Repository
	recipients RecipientLister
	dispatcher Dispatcher
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(repo Repository, recipients RecipientLister, dispatcher Dispatcher, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	if dispatcher == nil {
		dispatcher = NopDispatcher()
	}
	return &service{repo: repo, recipients: recipients, dispatcher: dispatcher, now: time.Now, logger: l}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, page, limit int) (ListResult, error) {
	items, total, err := s.repo.List(ctx, userID, unreadOnly, page, limit)
	if err != nil {
		return ListResult{}, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return ListResult{}, err
	}

	resp := make([]NotificationResponse, len(items))
	for i, n := range items {
		resp[i] = mapToResponse(n)
	}
	return ListResult{Items: resp, Total: total, Unread: unread}, nil
}

func (s *service) MarkRead(ctx context.Context, userID uuid.UUID, req MarkReadRequest) (int64, error) {
	now := s.now()
	if req.All {
		return s.repo.MarkAllRead(ctx, userID, now)
	}
	if len(req.IDs) == 0 {
		return 0, notificationerrors.ErrEmptySelection
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return 0, notificationerrors.ErrInvalidNotificationID
		}
		ids = append(ids, id)
	}
	return s.repo.MarkRead(ctx, userID, ids, now)
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notificationerrors.ErrNotificationNotFound
		}
		return err
	}
	return nil
}

func (s *service) Broadcast(ctx context.Context, req BroadcastRequest) (int, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	var role *domain.Role
	if req.Role != "" {
		r, ok := domain.ParseRole(req.Role)
		if !ok {
			return 0, notificationerrors.ErrNoRecipients
		}
		role = &r
	}

	ids, err := s.recipients.ListActiveIDs(ctx, role)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, notificationerrors.ErrNoRecipients
	}

	inputs := make([]Input, len(ids))
	for i, id := range ids {
		inputs[i] = Input{
			UserID:  id,
			Type:    TypeBroadcast,
			Title:   req.Title,
			Message: req.Message,
			Link:    req.Link,
		}
	}
	s.dispatcher.Dispatch(ctx, inputs...)

	l.Info("broadcast dispatched", zap.Int("recipients", len(ids)), zap.String("role", req.Role))
	return len(ids), nil
}

func (s *service) Persist(ctx context.Context, inputs ...Input) error {
	items := make([]Notification, len(inputs))
	for i, in := range inputs {
		items[i] = in.toEntity()
	}
	return s.repo.CreateBatch(ctx, items)
}
