package departmenterrors

import (
	"go-ems/internal/shared/apperror"
	"net/http"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)

	ErrDepartmentNameExists = apperror.Conflict("Department with the same name already exists")

	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid department ID",
		http.StatusBadRequest,
	)

	ErrDepartmentHasEmployees = apperror.New(
		apperror.CodeInvalidState,
		"Department still has active employees",
		http.StatusBadRequest,
	)

	ErrManagerNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Manager not found",
		http.StatusBadRequest,
	)

	ErrInvalidBudget = apperror.New(
		apperror.CodeValidationError,
		"Budget must be a non-negative amount",
		http.StatusBadRequest,
	)
)
