package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no evaluation exists for an id.
	ErrNotFound = errors.New("evaluation not found")
	// ErrInternal hides unexpected failures from callers.
	ErrInternal = errors.New("internal error")
)

// FieldError is a single complaint about one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every rejected field of a submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for i := range e.Fields {
		parts = append(parts, e.Fields[i].Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// StoreError reports a failure of the persistence medium itself.
type StoreError struct {
	Op  string
	ID  string
	Err error
}

func (e *StoreError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s %s: %v", e.Op, e.ID, e.Err)
}

// Unwrap exposes the medium error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err carries field complaints.
func IsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
