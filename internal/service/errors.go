package service

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("error not found")

// ValidationError is returned when a proposed mutation would break the
// allocation-sum rules. The mutation is not applied.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Reason)
}

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}
