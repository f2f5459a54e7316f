// Package common defines shared helpers and sentinel errors used across
// the game shelf core. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Login errors. Unknown email and wrong password both map to this
	// value so callers cannot enumerate registered emails.
	ErrorInvalidCredentials = errors.New("invalid email or password")

	// Registration errors.
	ErrorEmailInUse       = errors.New("email already in use")
	ErrorPasswordMismatch = errors.New("passwords do not match")

	// Field-level constraint violations (rating range, unknown status, ...).
	ErrorValidation = errors.New("validation error")

	// Session restore errors (invalid or expired persisted token).
	ErrInvalidToken = errors.New("invalid token")
)
