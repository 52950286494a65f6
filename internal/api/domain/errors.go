package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUnauthorized is returned when no valid principal accompanies a request
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the principal has the wrong role or does not own the resource
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when a referenced entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicateApplication is returned when a user applies to the same job twice
	ErrDuplicateApplication = errors.New("already applied")

	// ErrValidation is matched by every *ValidationError
	ErrValidation = errors.New("validation failed")
)

// ValidationError carries field-keyed messages for inline display
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns an empty error ready to collect field messages
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add records msg for field, keeping the first message per field
func (e *ValidationError) Add(field, msg string) {
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

// HasErrors reports whether any field message was recorded
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// OrNil returns e when it holds messages and nil otherwise
func (e *ValidationError) OrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrValidation) match
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// FieldError builds a single-field validation error
func FieldError(field, msg string) error {
	e := NewValidationError()
	e.Add(field, msg)
	return e
}

// Merge copies the field messages of err into e. Errors that are not
// validation errors are returned unchanged.
func (e *ValidationError) Merge(err error) error {
	if err == nil {
		return nil
	}
	var other *ValidationError
	if !errors.As(err, &other) {
		return err
	}
	for field, msg := range other.Fields {
		e.Add(field, msg)
	}
	return nil
}
