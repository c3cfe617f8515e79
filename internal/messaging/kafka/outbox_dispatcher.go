package kafka

import (
	"context"
	"encoding/json"
	"time"

	"go-ems/internal/events"
	"go-ems/internal/notification"
	"go-ems/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OutboxDispatcher enqueues notifications as one outbox event; the worker
// relays it to Kafka and the consumer persists the rows.
type OutboxDispatcher struct {
	repo   OutboxRepository
	topic  string
	now    func() time.Time
	logger *zap.Logger
}

var _ notification.Dispatcher = (*OutboxDispatcher)(nil)

func NewOutboxDispatcher(repo OutboxRepository, topic string, logger ...*zap.Logger) *OutboxDispatcher {
	l := zap.L().Named("kafka.outbox.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.outbox.dispatcher")
	}
	if topic == "" {
		topic = events.NotificationRequestedTopic
	}
	return &OutboxDispatcher{repo: repo, topic: topic, now: time.Now, logger: l}
}

func (d *OutboxDispatcher) Dispatch(ctx context.Context, inputs ...notification.Input) {
	if len(inputs) == 0 {
		return
	}
	ctx = contextutil.Detach(ctx)
	l := contextutil.GetLogger(ctx, d.logger)

	requestID := contextutil.GetRequestID(ctx)
	event := events.NotificationRequestedEvent{
		EventType:     events.NotificationRequestedType,
		RequestID:     requestID,
		Notifications: make([]events.NotificationRecipient, len(inputs)),
		OccurredAt:    d.now().UTC(),
	}
	for i, in := range inputs {
		id := in.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		event.Notifications[i] = events.NotificationRecipient{
			ID:      id.String(),
			UserID:  in.UserID.String(),
			Type:    string(in.Type),
			Title:   in.Title,
			Message: in.Message,
			Link:    in.Link,
		}
	}

	payload, err := json.Marshal(event)
	if err != nil {
		l.Error("failed to encode notification event", zap.Error(err))
		return
	}

	outbox := OutboxEvent{
		ID:            uuid.New(),
		RequestID:     requestID,
		AggregateType: "notification",
		AggregateID:   inputs[0].UserID.String(),
		EventType:     events.NotificationRequestedType,
		Topic:         d.topic,
		Payload:       payload,
		Status:        OutboxStatusPending,
	}
	if err := d.repo.Create(ctx, outbox); err != nil {
		l.Error("failed to enqueue notification event",
			zap.String("outbox_id", outbox.ID.String()),
			zap.Int("count", len(inputs)),
			zap.Error(err),
		)
		return
	}

	l.Debug("notification event enqueued", zap.String("outbox_id", outbox.ID.String()), zap.Int("count", len(inputs)))
}
