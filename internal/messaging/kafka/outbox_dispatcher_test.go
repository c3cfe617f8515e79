package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go-ems/internal/events"
	"go-ems/internal/messaging/kafka"
	kafkaMock "go-ems/internal/messaging/kafka/mock"
	"go-ems/internal/notification"
	"go-ems/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestOutboxDispatcher_Dispatch(t *testing.T) {
	t.Run("enqueues one event for all recipients", func(t *testing.T) {
		repo := kafkaMock.NewMockOutboxRepository(gomock.NewController(t))
		d := kafka.NewOutboxDispatcher(repo, "", zap.NewNop())
		u1, u2 := uuid.New(), uuid.New()

		repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
				assert.NoError(t, kafka.ValidateOutboxEvent(e))
				assert.Equal(t, events.NotificationRequestedTopic, e.Topic)
				assert.Equal(t, "req-42", e.RequestID)

				var payload events.NotificationRequestedEvent
				require.NoError(t, json.Unmarshal(e.Payload, &payload))
				require.Len(t, payload.Notifications, 2)
				assert.Equal(t, u2.String(), payload.Notifications[1].UserID)
				assert.NotEmpty(t, payload.Notifications[0].ID)
				return nil
			})

		ctx := contextutil.WithRequestID(context.Background(), "req-42")
		d.Dispatch(ctx,
			notification.Input{UserID: u1, Type: notification.TypeTaskAssigned, Title: "a"},
			notification.Input{UserID: u2, Type: notification.TypeTaskAssigned, Title: "b"},
		)
	})

	t.Run("enqueue failure is swallowed", func(t *testing.T) {
		repo := kafkaMock.NewMockOutboxRepository(gomock.NewController(t))
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		assert.NotPanics(t, func() {
			kafka.NewOutboxDispatcher(repo, "topic", zap.NewNop()).Dispatch(context.Background(), notification.Input{UserID: uuid.New()})
		})
	})
}

func TestValidateOutboxEvent(t *testing.T) {
	base := kafka.OutboxEvent{ID: uuid.New(), Topic: "t", Payload: []byte(`{}`), Status: kafka.OutboxStatusPending}
	assert.NoError(t, kafka.ValidateOutboxEvent(base))

	noTopic := base
	noTopic.Topic = ""
	assert.Error(t, kafka.ValidateOutboxEvent(noTopic))

	badStatus := base
	badStatus.Status = "queued"
	assert.Error(t, kafka.ValidateOutboxEvent(badStatus))
}
