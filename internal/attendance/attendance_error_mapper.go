package attendance

import (
	"errors"

	attendanceerrors "go-ems/internal/attendance/errors"
	"go-ems/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	// Concurrent check-ins that both miss the row lock hit the unique key.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendance_employee_date" {
		return attendanceerrors.ErrAlreadyCheckedIn
	}
	return err
}
