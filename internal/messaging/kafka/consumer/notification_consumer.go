package consumer

import (
	"context"
	"encoding/json"

	"go-ems/internal/events"
	"go-ems/internal/notification"
	"go-ems/internal/shared/contextutil"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Persister is satisfied by notification.Service.
type Persister interface {
	Persist(ctx context.Context, inputs ...notification.Input) error
}

func ConsumeNotifications(
	ctx context.Context,
	reader MessageReader,
	persister Persister,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.notification")
	log.Info("notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification consumer stopped")
				return
			}
			log.Error("fetch notification message failed", zap.Error(err))
			continue
		}

		HandleMessage(ctx, reader, persister, msg, log)
	}
}

// HandleMessage persists one message. Undecodable messages are committed so
// they do not block the partition; persistence failures are left uncommitted.
func HandleMessage(
	ctx context.Context,
	reader MessageReader,
	persister Persister,
	msg kafkago.Message,
	log *zap.Logger,
) {
	var event events.NotificationRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode notification event failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		_ = reader.CommitMessages(ctx, msg)
		return
	}

	inputs, skipped := toInputs(event)
	if skipped > 0 {
		log.Warn("skipped malformed notification recipients", zap.Int("skipped", skipped))
	}

	if event.RequestID != "" {
		ctx = contextutil.WithRequestID(ctx, event.RequestID)
	}
	if len(inputs) > 0 {
		if err := persister.Persist(ctx, inputs...); err != nil {
			log.Error("persist notifications failed",
				zap.String("request_id", event.RequestID),
				zap.Int("count", len(inputs)),
				zap.Error(err),
			)
			return
		}
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit notification message failed", zap.Error(err))
		return
	}

	log.Info("notifications persisted from event",
		zap.String("request_id", event.RequestID),
		zap.Int("count", len(inputs)),
	)
}

func toInputs(event events.NotificationRequestedEvent) ([]notification.Input, int) {
	inputs := make([]notification.Input, 0, len(event.Notifications))
	skipped := 0
	for _, n := range event.Notifications {
		userID, err := uuid.Parse(n.UserID)
		if err != nil {
			skipped++
			continue
		}
		id, err := uuid.Parse(n.ID)
		if err != nil {
			id = uuid.Nil
		}
		inputs = append(inputs, notification.Input{
			ID:      id,
			UserID:  userID,
			Type:    notification.Type(n.Type),
			Title:   n.Title,
			Message: n.Message,
			Link:    n.Link,
		})
	}
	return inputs, skipped
}
