package user_test

import (
	"context"
	"errors"
	"testing"

	"go-ems/internal/domain"
	"go-ems/internal/user"
	usererrors "go-ems/internal/user/errors"
	mock_user "go-ems/internal/user/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*mock_user.MockRepository, user.Service) {
	ctrl := gomock.NewController(t)
	mockRepo := mock_user.NewMockRepository(ctrl)
	svc := user.NewService(mockRepo, zap.NewNop())
	return mockRepo, svc
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo, svc := setup(t)
		filter := user.ListFilter{Page: 1, Limit: 10}

		repo.EXPECT().
			List(gomock.Any(), filter).
			Return([]user.User{{ID: uuid.New(), Email: "john@mail.com", Role: domain.RoleEmployee, IsActive: true}}, int64(1), nil)

		res, total, err := svc.List(ctx, filter)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, res, 1)
		assert.Equal(t, "john@mail.com", res[0].Email)
		assert.Equal(t, "EMPLOYEE", res[0].Role)
	})

	t.Run("repository error", func(t *testing.T) {
		repo, svc := setup(t)
		repo.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, int64(0), errors.New("db error"))

		res, _, err := svc.List(ctx, user.ListFilter{})

		assert.Error(t, err)
		assert.Nil(t, res)
	})
}

func TestUserService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		repo, svc := setup(t)
		id := uuid.New()
		repo.EXPECT().FindByID(gomock.Any(), id).Return(&user.User{}, gorm.ErrRecordNotFound)

		_, err := svc.GetByID(ctx, id)

		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestUserService_ChangeRole(t *testing.T) {
	ctx := context.Background()
	admin := domain.SessionUser{ID: uuid.New(), Role: domain.RoleAdmin}

	t.Run("success", func(t *testing.T) {
		repo, svc := setup(t)
		id := uuid.New()

		repo.EXPECT().FindByID(gomock.Any(), id).Return(&user.User{ID: id, Role: domain.RoleEmployee}, nil)
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				assert.Equal(t, domain.RoleManager, u.Role)
				return nil
			})

		res, err := svc.ChangeRole(ctx, admin, id, "manager")

		assert.NoError(t, err)
		assert.Equal(t, "MANAGER", res.Role)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, svc := setup(t)

		_, err := svc.ChangeRole(ctx, admin, uuid.New(), "SUPERADMIN")

		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})

	t.Run("own role", func(t *testing.T) {
		_, svc := setup(t)

		_, err := svc.ChangeRole(ctx, admin, admin.ID, "EMPLOYEE")

		assert.ErrorIs(t, err, usererrors.ErrSelfRoleChange)
	})

	t.Run("same role is a no-op", func(t *testing.T) {
		repo, svc := setup(t)
		id := uuid.New()
		repo.EXPECT().FindByID(gomock.Any(), id).Return(&user.User{ID: id, Role: domain.RoleManager}, nil)

		res, err := svc.ChangeRole(ctx, admin, id, "MANAGER")

		assert.NoError(t, err)
		assert.Equal(t, "MANAGER", res.Role)
	})
}

func TestUserService_SetStatus(t *testing.T) {
	ctx := context.Background()
	admin := domain.SessionUser{ID: uuid.New(), Role: domain.RoleAdmin}

	t.Run("deactivate other user", func(t *testing.T) {
		repo, svc := setup(t)
		id := uuid.New()

		repo.EXPECT().FindByID(gomock.Any(), id).Return(&user.User{ID: id, IsActive: true}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.SetStatus(ctx, admin, id, false)

		assert.NoError(t, err)
		assert.False(t, res.IsActive)
	})

	t.Run("cannot deactivate self", func(t *testing.T) {
		_, svc := setup(t)

		_, err := svc.SetStatus(ctx, admin, admin.ID, false)

		assert.ErrorIs(t, err, usererrors.ErrSelfDeactivation)
	})
}
