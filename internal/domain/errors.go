package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an update targets an id that does not exist.
	// Deletes never return it: deleting an absent id is a no-op.
	ErrNotFound = errors.New("record not found")

	// ErrStoreUnavailable covers transport, auth and backend failures reaching
	// the record store. Callers can distinguish it from an empty result set.
	ErrStoreUnavailable = errors.New("record store unavailable")

	// ErrUnauthorized is returned when a mutation is attempted without an
	// unlocked admin session or a valid shared secret.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError reports a required field missing or malformed at create
// time. It is raised before any store call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func requiredField(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "required"}
}
