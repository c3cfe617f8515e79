package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-ems/internal/domain"
	"go-ems/internal/notification"
	notificationerrors "go-ems/internal/notification/errors"
	notificationMock "go-ems/internal/notification/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type deps struct {
	repo       *notificationMock.MockRepository
	recipients *notificationMock.MockRecipientLister
	dispatcher *notificationMock.MockDispatcher
	service    notification.Service
}

func setup(t *testing.T) deps {
	ctrl := gomock.NewController(t)
	d := deps{
		repo:       notificationMock.NewMockRepository(ctrl),
		recipients: notificationMock.NewMockRecipientLister(ctrl),
		dispatcher: notificationMock.NewMockDispatcher(ctrl),
	}
	d.service = notification.NewService(d.repo, d.recipients, d.dispatcher, zap.NewNop())
	return d
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("returns unread count", func(t *testing.T) {
		d := setup(t)
		d.repo.EXPECT().List(gomock.Any(), userID, true, 1, 10).Return([]notification.Notification{
			{ID: uuid.New(), UserID: userID, Type: notification.TypeTaskAssigned, Title: "New task"},
		}, int64(1), nil)
		d.repo.EXPECT().CountUnread(gomock.Any(), userID).Return(int64(4), nil)

		res, err := d.service.List(ctx, userID, true, 1, 10)

		require.NoError(t, err)
		assert.Equal(t, int64(4), res.Unread)
		assert.Equal(t, "TASK_ASSIGNED", res.Items[0].Type)
	})
}

func TestService_MarkRead(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("all", func(t *testing.T) {
		d := setup(t)
		d.repo.EXPECT().MarkAllRead(gomock.Any(), userID, gomock.Any()).Return(int64(3), nil)

		n, err := d.service.MarkRead(ctx, userID, notification.MarkReadRequest{All: true})

		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})

	t.Run("explicit ids scoped to requester", func(t *testing.T) {
		d := setup(t)
		id := uuid.New()
		d.repo.EXPECT().MarkRead(gomock.Any(), userID, []uuid.UUID{id}, gomock.Any()).Return(int64(1), nil)

		n, err := d.service.MarkRead(ctx, userID, notification.MarkReadRequest{IDs: []string{id.String()}})

		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("neither all nor ids", func(t *testing.T) {
		d := setup(t)

		_, err := d.service.MarkRead(ctx, userID, notification.MarkReadRequest{})

		assert.ErrorIs(t, err, notificationerrors.ErrEmptySelection)
	})
}

func TestService_Delete(t *testing.T) {
	d := setup(t)
	userID, id := uuid.New(), uuid.New()
	d.repo.EXPECT().Delete(gomock.Any(), userID, id).Return(gorm.ErrRecordNotFound)

	err := d.service.Delete(context.Background(), userID, id)

	assert.ErrorIs(t, err, notificationerrors.ErrNotificationNotFound)
}

func TestService_Broadcast(t *testing.T) {
	ctx := context.Background()

	t.Run("to a role", func(t *testing.T) {
		d := setup(t)
		ids := []uuid.UUID{uuid.New(), uuid.New()}

		d.recipients.EXPECT().
			ListActiveIDs(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, role *domain.Role) ([]uuid.UUID, error) {
				require.NotNil(t, role)
				assert.Equal(t, domain.RoleManager, *role)
				return ids, nil
			})
		d.dispatcher.EXPECT().
			Dispatch(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, inputs ...notification.Input) {
				require.Len(t, inputs, 2)
				assert.Equal(t, notification.TypeBroadcast, inputs[0].Type)
				assert.Equal(t, ids[1], inputs[1].UserID)
			})

		n, err := d.service.Broadcast(ctx, notification.BroadcastRequest{Title: "Hi", Message: "All hands", Role: "MANAGER"})

		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("no recipients", func(t *testing.T) {
		d := setup(t)
		d.recipients.EXPECT().ListActiveIDs(gomock.Any(), nil).Return(nil, nil)

		_, err := d.service.Broadcast(ctx, notification.BroadcastRequest{Title: "Hi", Message: "x"})

		assert.ErrorIs(t, err, notificationerrors.ErrNoRecipients)
	})
}

func TestDirectDispatcher(t *testing.T) {
	t.Run("failure is swallowed", func(t *testing.T) {
		repo := notificationMock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().CreateBatch(gomock.Any(), gomock.Len(1)).Return(errors.New("insert failed"))

		dispatcher := notification.NewDirectDispatcher(repo, zap.NewNop())

		assert.NotPanics(t, func() {
			dispatcher.Dispatch(context.Background(), notification.Input{UserID: uuid.New(), Title: "x"})
		})
	})

	t.Run("cancelled request still delivers", func(t *testing.T) {
		repo := notificationMock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().
			CreateBatch(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, items []notification.Notification) error {
				assert.NoError(t, ctx.Err())
				return nil
			})

		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		<-ctx.Done()

		notification.NewDirectDispatcher(repo, zap.NewNop()).Dispatch(ctx, notification.Input{UserID: uuid.New()})
	})

	t.Run("nothing to do", func(t *testing.T) {
		repo := notificationMock.NewMockRepository(gomock.NewController(t))
		notification.NewDirectDispatcher(repo, zap.NewNop()).Dispatch(context.Background())
	})
}
