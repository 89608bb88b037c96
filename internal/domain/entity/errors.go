package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrEmptyInput indicates that the submitted text is empty after trimming whitespace.
	ErrEmptyInput = errors.New("input text is required")

	// ErrScoreOutOfRange indicates that an accuracy score falls outside [0, 100].
	ErrScoreOutOfRange = errors.New("accuracy score out of range")
)

// ValidationError represents a validation error with detailed field information.
// It wraps the sentinel error that caused it so callers can use errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
