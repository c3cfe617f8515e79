package reporterrors

import (
	"go-ems/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"department must be a department id",
		http.StatusBadRequest,
	)
	ErrExportFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to generate the attendance report",
		http.StatusInternalServerError,
	)
)
