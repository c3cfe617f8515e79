package notificationerrors

import (
	"go-ems/internal/shared/apperror"
	"net/http"
)

var (
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Notification not found",
		http.StatusNotFound,
	)

	ErrInvalidNotificationID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid notification ID",
		http.StatusBadRequest,
	)

	ErrEmptySelection = apperror.New(
		apperror.CodeValidationError,
		"Either all or ids must be provided",
		http.StatusBadRequest,
	)

	ErrNoRecipients = apperror.New(
		apperror.CodeInvalidInput,
		"No active users match the broadcast audience",
		http.StatusBadRequest,
	)
)
