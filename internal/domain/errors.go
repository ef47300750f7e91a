package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for inputs the estimator refuses to price.
var (
	ErrInvalidCondition = errors.New("invalid condition")
	ErrInvalidGrade     = errors.New("invalid grade")
	ErrInvalidBody      = errors.New("invalid body")
)

// ValidationError wraps a sentinel with the offending field.
type ValidationError struct {
	Field   string
	Value   string
	Wrapped error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %q", e.Wrapped, e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Wrapped }

func NewValidationError(field, value string, wrapped error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Wrapped: wrapped}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
