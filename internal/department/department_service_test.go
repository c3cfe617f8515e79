package department_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-ems/internal/department"
	departmenterrors "go-ems/internal/department/errors"
	departmentMock "go-ems/internal/department/mock"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/cache"
	"go-ems/internal/shared/ref"
	"go-ems/internal/user"
	userMock "go-ems/internal/user/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type serviceDeps struct {
	sqlMock sqlmock.Sqlmock
	service department.Service
	repo    *departmentMock.MockRepository
	users   *userMock.MockRepository
}

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func setupServiceTest(t *testing.T, store cache.Store) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, mock := newGormMock(t)

	repo := departmentMock.NewMockRepository(ctrl)
	users := userMock.NewMockRepository(ctrl)
	repo.EXPECT().WithTx(gomock.Any()).Return(repo).AnyTimes()
	users.EXPECT().WithTx(gomock.Any()).Return(users).AnyTimes()

	return &serviceDeps{
		sqlMock: mock,
		service: department.NewService(db, repo, users, store, time.Minute, zap.NewNop()),
		repo:    repo,
		users:   users,
	}
}

func expectTx(mock sqlmock.Sqlmock, commit bool) {
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestDepartmentService_List(t *testing.T) {
	ctx := context.Background()
	filter := department.ListFilter{Page: 1, Limit: 10, SortOrder: "desc"}

	t.Run("cache hit skips the repository", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		deps := setupServiceTest(t, cache.NewRedisStore(rdb, zap.NewNop()))

		cached, _ := json.Marshal(map[string]any{
			"items": []department.DepartmentResponse{{ID: "d-1", Name: "HR"}},
			"total": 1,
		})
		redisMock.ExpectGet("cache:departments:list::1:10::desc").SetVal(string(cached))

		items, total, err := deps.service.List(ctx, filter)

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "HR", items[0].Name)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("miss loads with employee counts", func(t *testing.T) {
		deps := setupServiceTest(t, cache.Nop())

		deps.repo.EXPECT().List(gomock.Any(), filter).Return([]department.DepartmentWithCount{
			{Department: department.Department{ID: uuid.New(), Name: "Engineering"}, EmployeeCount: 7},
		}, int64(1), nil)

		items, total, err := deps.service.List(ctx, filter)

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, int64(7), items[0].EmployeeCount)
	})
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success with manager by name", func(t *testing.T) {
		deps := setupServiceTest(t, cache.Nop())
		managerID := uuid.New()
		budget := decimal.NewFromInt(50000)

		deps.repo.EXPECT().ExistsByName(gomock.Any(), "Engineering", nil).Return(false, nil)
		expectTx(deps.sqlMock, true)
		deps.users.EXPECT().FindByName(gomock.Any(), "Grace").Return(&user.User{ID: managerID, Name: "Grace", IsActive: true}, nil)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, d *department.Department) error {
				require.NotNil(t, d.ManagerID)
				assert.Equal(t, managerID, *d.ManagerID)
				assert.True(t, budget.Equal(d.Budget))
				return nil
			})

		resp, err := deps.service.Create(ctx, department.CreateDepartmentRequest{
			Name:    " Engineering ",
			Budget:  &budget,
			Manager: ref.ByName("Grace"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Engineering", resp.Name)
		require.NotNil(t, resp.Manager)
		assert.Equal(t, "Grace", resp.Manager.Name)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate name", func(t *testing.T) {
		deps := setupServiceTest(t, cache.Nop())
		deps.repo.EXPECT().ExistsByName(gomock.Any(), "HR", nil).Return(true, nil)

		_, err := deps.service.Create(ctx, department.CreateDepartmentRequest{Name: "HR"})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNameExists)
		assert.Equal(t, 400, apperror.ToHTTP(err).Status)
	})

	t.Run("unknown manager rolls back", func(t *testing.T) {
		deps := setupServiceTest(t, cache.Nop())

		deps.repo.EXPECT().ExistsByName(gomock.Any(), "Ops", nil).Return(false, nil)
		expectTx(deps.sqlMock, false)
		deps.users.EXPECT().FindByName(gomock.Any(), "Nobody").Return(&user.User{}, gorm.ErrRecordNotFound)

		_, err := deps.service.Create(ctx, department.CreateDepartmentRequest{Name: "Ops", Manager: ref.ByName("Nobody")})

		require.Error(t, err)
		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, 400, httpErr.Status)
		assert.Contains(t, httpErr.Message, "Manager 'Nobody' not found")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestDepartmentService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("partial patch keeps other fields", func(t *testing.T) {
		deps := setupServiceTest(t, cache.Nop())
		id := uuid.New()
		desc := "Builds things"

		expectTx(deps.sqlMock, true)
		deps.repo.EXPECT().FindByID(gomock.Any(), id).Return(&department.DepartmentWithCount{
			Department:    department.Department{ID: id, Name: "Engineering", Budget: decimal.NewFromInt(10)},
			EmployeeCount: 3,
		}, nil)
		deps.repo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, d *department.Department) error {
				assert.Equal(t, "Engineering", d.Name)
				assert.Equal(t, desc, d.Description)
				return nil
			})

		resp, err := deps.service.Update(ctx, id, department.UpdateDepartmentRequest{Description: &desc})

		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.EmployeeCount)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t, cache.Nop())
		id := uuid.New()

		expectTx(deps.sqlMock, false)
		deps.repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, id, department.UpdateDepartmentRequest{})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}

func TestDepartmentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("refused while employees remain", func(t *testing.T) {
		deps := setupServiceTest(t, cache.Nop())
		id := uuid.New()

		expectTx(deps.sqlMock, false)
		deps.repo.EXPECT().CountActiveEmployees(gomock.Any(), id).Return(int64(2), nil)

		err := deps.service.Delete(ctx, id)

		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, 400, httpErr.Status)
		assert.Equal(t, apperror.CodeInvalidState, httpErr.Code)
	})

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t, cache.Nop())
		id := uuid.New()

		expectTx(deps.sqlMock, true)
		deps.repo.EXPECT().CountActiveEmployees(gomock.Any(), id).Return(int64(0), nil)
		deps.repo.EXPECT().Delete(gomock.Any(), id).Return(nil)

		assert.NoError(t, deps.service.Delete(ctx, id))
	})

	t.Run("repository failure is passed through", func(t *testing.T) {
		deps := setupServiceTest(t, cache.Nop())
		id := uuid.New()

		expectTx(deps.sqlMock, false)
		deps.repo.EXPECT().CountActiveEmployees(gomock.Any(), id).Return(int64(0), errors.New("db down"))

		err := deps.service.Delete(ctx, id)

		assert.True(t, apperror.IsInternal(err))
	})
}
