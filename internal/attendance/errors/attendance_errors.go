package attendanceerrors

import (
	"go-ems/internal/shared/apperror"
	"net/http"
)

var (
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeInvalidState,
		"You have already checked in today",
		http.StatusBadRequest,
	)
	ErrNotCheckedIn = apperror.New(
		apperror.CodeInvalidState,
		"You have not checked in today",
		http.StatusBadRequest,
	)
	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeInvalidState,
		"You have already checked out today",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"departmentId must be a valid UUID",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Status must be one of PRESENT, LATE, EARLY_LEAVE, ABSENT",
		http.StatusBadRequest,
	)

	ErrNoEmployeeRecord = apperror.Forbidden("No active employee record is linked to this account")
)
