package usererrors

import (
	"go-ems/internal/shared/apperror"
	"net/http"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrUserAlreadyExists = apperror.Conflict("User with the same email already exists")

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Role must be one of ADMIN, MANAGER, EMPLOYEE",
		http.StatusBadRequest,
	)

	ErrSelfRoleChange = apperror.Forbidden("You cannot change your own role")

	ErrSelfDeactivation = apperror.Forbidden("You cannot deactivate your own account")
)
