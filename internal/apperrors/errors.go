// Package apperrors holds the sentinel errors shared across services and
// handlers. Call sites wrap them with fmt.Errorf("...: %w", ...) and the
// HTTP layer maps them to status codes with errors.Is.
package apperrors

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned for malformed or illegal input, including
	// illegal order status transitions.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized is returned for bad credentials or missing privileges.
	ErrUnauthorized = errors.New("unauthorized")
)
