package domain

import (
	"errors"
	"fmt"
)

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrAlreadyExists   = errors.New("entity already exists")
	ErrInvalidArgument = errors.New("invalid argument")
)

// ValidationError reports rejected input. Fields is set when individual
// fields failed schema rules (length, URL shape); Message is the summary
// returned to the caller.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Fields)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidArgument }

// NewValidationError builds a ValidationError without field details.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// ConflictError is returned when a write violates a uniqueness constraint.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return "duplicate value"
	}
	return "duplicate value for " + e.Field
}

func (e *ConflictError) Unwrap() error { return ErrAlreadyExists }
