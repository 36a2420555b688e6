package domain

import "errors"

// Closed set of error kinds surfaced by the workflow layer.
// Gateways map their storage errors onto these; everything else
// passes through untouched so the original reason is never masked.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrFileRequired = errors.New("file required")
)

// StoreError carries the kind plus a human-readable message and,
// for validation failures, the offending field.
type StoreError struct {
	Kind    error
	Field   string
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}

func (e *StoreError) Unwrap() error {
	return e.Kind
}

func NewNotFound(entity string) error {
	return &StoreError{
		Kind:    ErrNotFound,
		Message: entity + " not found",
	}
}

func NewConflict(message string) error {
	return &StoreError{
		Kind:    ErrConflict,
		Message: message,
	}
}

func NewValidation(field string) error {
	return &StoreError{
		Kind:    ErrValidation,
		Field:   field,
		Message: "Missing " + field + " field",
	}
}

func NewInvalidField(field, reason string) error {
	return &StoreError{
		Kind:    ErrValidation,
		Field:   field,
		Message: reason,
	}
}

func NewFileRequired() error {
	return &StoreError{
		Kind:    ErrFileRequired,
		Message: "File is required for non-text content",
	}
}
