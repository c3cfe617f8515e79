package employeeerrors

import (
	"go-ems/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmailAlreadyExists = apperror.Conflict("Employee with the same email already exists")

	ErrEmployeeCodeAlreadyExists = apperror.Conflict("Employee ID already exists")

	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid hireDate format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Status must be one of ACTIVE, INACTIVE, ON_LEAVE, TERMINATED",
		http.StatusBadRequest,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"departmentId must be a valid UUID",
		http.StatusBadRequest,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Department not found",
		http.StatusBadRequest,
	)
	ErrManagerNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Manager not found",
		http.StatusBadRequest,
	)
	ErrSelfManager = apperror.New(
		apperror.CodeInvalidInput,
		"An employee cannot be their own manager",
		http.StatusBadRequest,
	)
	ErrNegativeSalary = apperror.New(
		apperror.CodeInvalidInput,
		"Salary cannot be negative",
		http.StatusBadRequest,
	)

	ErrNotOwner = apperror.Forbidden("You can only access your own employee record")

	ErrRestrictedFields = apperror.Forbidden("Employees may only update phone, address and avatar")

	ErrAvatarRequired = apperror.New(
		apperror.CodeValidationError,
		"avatar is required",
		http.StatusBadRequest,
	)
	ErrAvatarTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"Avatar exceeds the maximum upload size",
		http.StatusBadRequest,
	)
	ErrAvatarUploadFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to upload avatar",
		http.StatusInternalServerError,
	)
)
