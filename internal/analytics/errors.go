package analytics

import (
	"errors"
	"fmt"
)

// Error kinds returned by the engine. Callers match them with errors.Is.
var (
	// ErrInvalidDateFormat is returned when a date parameter is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")
	// ErrInvalidParameter is returned for missing or out-of-range parameters.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrNoData is returned when a well-formed selection matches no rows.
	ErrNoData = errors.New("no data available for this selection")
)

// ValidationError represents an invalid request parameter.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message string.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidParameter.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidParameter
}

// NewValidationError creates a new ValidationError for field.
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewValidationErrorf creates a new ValidationError with a formatted message.
func NewValidationErrorf(field, format string, args ...interface{}) error {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}
