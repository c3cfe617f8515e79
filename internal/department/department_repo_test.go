package department_test

import (
	"context"
	"testing"

	"go-ems/internal/department"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newRecordingDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *[]string) {
	t.Helper()
	var stmts []string
	matcher := sqlmock.QueryMatcherFunc(func(_, actual string) error {
		stmts = append(stmts, actual)
		return nil
	})
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(matcher))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock, &stmts
}

func TestRepository_CountActiveEmployees(t *testing.T) {
	id := uuid.New()
	db, mock, stmts := newRecordingDB(t)
	mock.ExpectQuery("count").WithArgs(id, true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := department.NewRepository(db).CountActiveEmployees(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	require.Len(t, *stmts, 1)
	assert.Contains(t, (*stmts)[0], "is_active = $2")
	assert.Contains(t, (*stmts)[0], "deleted_at IS NULL")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListCountsOnlyActiveEmployees(t *testing.T) {
	db, mock, stmts := newRecordingDB(t)
	mock.ExpectQuery("count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("select").
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_count"}))

	_, _, err := department.NewRepository(db).List(context.Background(), department.ListFilter{Page: 1, Limit: 10})

	require.NoError(t, err)
	require.Len(t, *stmts, 2)
	assert.Contains(t, (*stmts)[1], "e.is_active = true AND e.deleted_at IS NULL")
}
