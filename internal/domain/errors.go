package domain

import (
	"errors"
	"fmt"
)

var ErrValidation = errors.New("validation failed")

// ValidationError is a local, user-visible rejection of one input field.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
