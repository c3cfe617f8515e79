package report_test

import (
	"context"
	"testing"
	"time"

	"go-ems/internal/report"

	"github.com/DATA-DOG/go-sqlmock"
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
	db, mock, stmts := newRecordingDB(t)
	mock.ExpectQuery("count").WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := report.NewRepository(db).CountActiveEmployees(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	require.Len(t, *stmts, 1)
	assert.Contains(t, (*stmts)[0], "is_active = $1 AND deleted_at IS NULL")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_AttendanceRowsKeepDeactivatedHistory(t *testing.T) {
	db, mock, stmts := newRecordingDB(t)
	mock.ExpectQuery("select").WithArgs("2024-03-01", "2024-03-31").
		WillReturnRows(sqlmock.NewRows([]string{"employee_id", "status"}))

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := report.NewRepository(db).AttendanceRows(context.Background(), start, start.AddDate(0, 1, -1), nil)

	require.NoError(t, err)
	require.Len(t, *stmts, 1)
	assert.NotContains(t, (*stmts)[0], "is_active")
	assert.NotContains(t, (*stmts)[0], "deleted_at")
	assert.NoError(t, mock.ExpectationsWereMet())
}
