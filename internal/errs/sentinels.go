// Package errs contains sentinel and typed errors used across layers for stable error mapping.
package errs

import (
	"errors"
	"fmt"
)

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnauthorized indicates failed authentication.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates a valid identity with insufficient privilege.
	ErrForbidden = errors.New("forbidden")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")
)

// ValidationError reports malformed or out-of-range input for a named field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Msg) }

// Validation constructs a ValidationError for the given field.
func Validation(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}

// InsufficientQuantityError reports a purchase request exceeding current stock.
// It carries both sides of the shortfall so the boundary can report them.
type InsufficientQuantityError struct {
	Available int64
	Requested int64
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("insufficient quantity: available %d, requested %d", e.Available, e.Requested)
}
