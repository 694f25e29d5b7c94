package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both truly absent records and records owned by
	// another user. Callers must not be able to tell the two apart.
	ErrNotFound = errors.New("record not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
)

// FieldError reports a validation failure on a single named field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}
