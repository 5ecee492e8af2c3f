package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrForbidden indicates that the actor lacks the role or ownership for an operation
	ErrForbidden = errors.New("forbidden")

	// ErrConflict indicates that the entity is not in the state an operation requires
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthenticated indicates that no valid credentials were presented
	ErrUnauthenticated = errors.New("unauthenticated")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrInvalidInput) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// StatusConflictError is returned when a transition runs from the wrong status.
type StatusConflictError struct {
	Expected ArticleStatus
	Actual   ArticleStatus
}

// Error returns the client-facing message, e.g. "Article status is not draft.".
func (e *StatusConflictError) Error() string {
	return fmt.Sprintf("Article status is not %s.", e.Expected)
}

// Is lets errors.Is(err, ErrConflict) match.
func (e *StatusConflictError) Is(target error) bool {
	return target == ErrConflict
}

// DomainError carries a client-facing message together with one of the sentinel kinds.
type DomainError struct {
	Kind    error
	Message string
}

func (e *DomainError) Error() string { return e.Message }

func (e *DomainError) Unwrap() error { return e.Kind }

// NotFound returns a not-found error with msg as its client message.
func NotFound(msg string) error { return &DomainError{Kind: ErrNotFound, Message: msg} }

// Forbidden returns a forbidden error with msg as its client message.
func Forbidden(msg string) error { return &DomainError{Kind: ErrForbidden, Message: msg} }
