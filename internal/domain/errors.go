package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation error")
	ErrToolMissing      = errors.New("subtitle tool is not installed")
	ErrToolFailed       = errors.New("subtitle tool failed")
	ErrNetwork          = errors.New("video page unreachable")
	ErrModelUnavailable = errors.New("language model is not configured")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s — %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// ToolError is a failed external tool invocation. Kind is one of
// ErrNetwork, ErrNotFound or ErrToolFailed; Diagnostic holds the raw
// stderr of the tool.
type ToolError struct {
	Kind       error
	Diagnostic string
	Cause      error
}

func (e *ToolError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Cause)
	}
	return e.Kind.Error()
}

func (e *ToolError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// DiagnosticOf returns the tool diagnostic carried by err, or "".
func DiagnosticOf(err error) string {
	var te *ToolError
	if errors.As(err, &te) {
		return strings.TrimSpace(te.Diagnostic)
	}
	return ""
}
