package service

import (
	"errors"
	"fmt"
)

// ErrValidation marks input rejected before any query runs
var ErrValidation = errors.New("validation failed")

// ValidationError describes the offending field of a rejected request
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// boundedLimit applies the default when limit is absent and rejects values outside [1, max]
func boundedLimit(field string, limit *int, def, max int) (int, error) {
	if limit == nil {
		return def, nil
	}
	if *limit < 1 || *limit > max {
		return 0, invalid(field, "must be between 1 and %d", max)
	}
	return *limit, nil
}
