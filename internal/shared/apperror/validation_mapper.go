package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldErrors is keyed by JSON field name.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

var camelBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)

// formatFieldName turns "employeeId" or "due_date" into "Employee Id" / "Due Date".
func formatFieldName(s string) string {
	s = camelBoundary.ReplaceAllString(s, "$1 $2")
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

func messageFor(e validator.FieldError) string {
	label := formatFieldName(e.Field())
	switch e.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return label + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(e.Param(), " ", ", "))
	case "uuid", "uuid4":
		return label + " must be a valid id"
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", label, e.Param())
	case "datetime":
		return fmt.Sprintf("%s must match format %s", label, e.Param())
	default:
		return label + " is invalid"
	}
}

// MapValidationError converts binding failures into a 400 with a
// field-keyed list of messages.
func MapValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := FieldErrors{}
		for _, e := range verrs {
			details.Add(e.Field(), messageFor(e))
		}
		return ErrValidation.WithDetails(details)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		details := FieldErrors{}
		details.Add(typeErr.Field, formatFieldName(typeErr.Field)+" has the wrong type")
		return ErrValidation.WithDetails(details)
	case errors.As(err, &syntaxErr):
		return InvalidInput("Malformed JSON body")
	}

	return ErrInvalidInput
}
