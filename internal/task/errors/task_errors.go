package taskerrors

import (
	"go-ems/internal/shared/apperror"
	"net/http"
)

var (
	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"Task not found",
		http.StatusNotFound,
	)
	ErrInvalidTaskID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid task ID",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Status must be one of PENDING, IN_PROGRESS, COMPLETED, CANCELLED",
		http.StatusBadRequest,
	)
	ErrInvalidPriority = apperror.New(
		apperror.CodeInvalidInput,
		"Priority must be one of LOW, MEDIUM, HIGH, URGENT",
		http.StatusBadRequest,
	)
	ErrInvalidDueDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid dueDate format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"Invalid status transition",
		http.StatusBadRequest,
	)
	ErrAssigneeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Assignee not found",
		http.StatusBadRequest,
	)

	ErrNotParticipant = apperror.Forbidden("You can only access tasks assigned to or created by you")

	ErrNotAssigner = apperror.Forbidden("Only the task creator or a manager can change this task")
)
