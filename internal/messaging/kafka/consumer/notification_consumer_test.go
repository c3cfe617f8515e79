package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go-ems/internal/events"
	"go-ems/internal/messaging/kafka/consumer"
	"go-ems/internal/notification"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReader struct {
	committed []kafkago.Message
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	<-ctx.Done()
	return kafkago.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

type fakePersister struct {
	err    error
	inputs []notification.Input
}

func (p *fakePersister) Persist(_ context.Context, inputs ...notification.Input) error {
	if p.err != nil {
		return p.err
	}
	p.inputs = append(p.inputs, inputs...)
	return nil
}

func eventMessage(t *testing.T, recipients ...events.NotificationRecipient) kafkago.Message {
	t.Helper()
	payload, err := json.Marshal(events.NotificationRequestedEvent{
		EventType:     events.NotificationRequestedType,
		RequestID:     "req-1",
		Notifications: recipients,
	})
	require.NoError(t, err)
	return kafkago.Message{Value: payload, Offset: 7}
}

func TestHandleMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and commits", func(t *testing.T) {
		reader, persister := &fakeReader{}, &fakePersister{}
		userID, id := uuid.New(), uuid.New()

		msg := eventMessage(t,
			events.NotificationRecipient{ID: id.String(), UserID: userID.String(), Type: "TASK_ASSIGNED", Title: "New task"},
			events.NotificationRecipient{UserID: "not-a-uuid"},
		)
		consumer.HandleMessage(ctx, reader, persister, msg, zap.NewNop())

		require.Len(t, persister.inputs, 1)
		assert.Equal(t, id, persister.inputs[0].ID)
		assert.Equal(t, userID, persister.inputs[0].UserID)
		assert.Equal(t, notification.TypeTaskAssigned, persister.inputs[0].Type)
		assert.Len(t, reader.committed, 1)
	})

	t.Run("undecodable message is committed", func(t *testing.T) {
		reader, persister := &fakeReader{}, &fakePersister{}

		consumer.HandleMessage(ctx, reader, persister, kafkago.Message{Value: []byte("{")}, zap.NewNop())

		assert.Empty(t, persister.inputs)
		assert.Len(t, reader.committed, 1)
	})

	t.Run("persist failure is not committed", func(t *testing.T) {
		reader, persister := &fakeReader{}, &fakePersister{err: errors.New("db down")}

		consumer.HandleMessage(ctx, reader, persister, eventMessage(t, events.NotificationRecipient{UserID: uuid.NewString()}), zap.NewNop())

		assert.Empty(t, reader.committed)
	})
}

func TestConsumeNotifications_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		consumer.ConsumeNotifications(ctx, &fakeReader{}, &fakePersister{}, zap.NewNop())
		close(done)
	}()
	<-done
}
