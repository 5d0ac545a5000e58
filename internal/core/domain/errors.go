package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSubmissionInProgress indicates an analysis is already in flight.
	// Only one submission may be outstanding at a time.
	ErrSubmissionInProgress = errors.New("analysis submission in progress")

	// Remote Service Errors.

	// ErrRequestFailed indicates a transport failure or a non-2xx response
	// that is not a schema validation failure.
	ErrRequestFailed = errors.New("analysis request failed")

	// ErrSchemaValidation indicates the service rejected the request shape (HTTP 422).
	ErrSchemaValidation = errors.New("request rejected by service validation")

	// ErrServiceUnavailable indicates no analysis service is configured.
	ErrServiceUnavailable = errors.New("analysis service unavailable")
)

// ValidationError carries field-level messages for a rejected BusinessInput.
// It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	Fields map[Field]string
}

// NewValidationError creates an empty validation error.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[Field]string)}
}

// Add records a message for a field. The first message per field wins.
func (e *ValidationError) Add(field Field, msg string) {
	if _, ok := e.Fields[field]; ok {
		return
	}
	e.Fields[field] = msg
}

// HasErrors returns true if any field failed validation.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// Error implements error.
func (e *ValidationError) Error() string {
	if !e.HasErrors() {
		return ErrInvalidInput.Error()
	}

	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[Field(f)]))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), strings.Join(parts, "; "))
}

// Is reports whether target is ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Message returns the message recorded for a field, or empty string.
func (e *ValidationError) Message(field Field) string {
	if e == nil {
		return ""
	}
	return e.Fields[field]
}
