// Package apperr defines the error taxonomy shared across stores, the
// rewards ledger and the HTTP layer. Handlers map these to status codes.
package apperr

import "errors"

var (
	// ErrInvalidInput is a caller error; nothing was written.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound means the referenced document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned on registration conflicts.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrUnauthenticated is returned on credential mismatch.
	ErrUnauthenticated = errors.New("invalid credentials")

	// ErrUnavailable marks transient store failures; safe to retry.
	ErrUnavailable = errors.New("store temporarily unavailable")

	// ErrInconsistent marks a partially applied submit transaction. It must
	// not occur while submits run inside a transaction; if it does, it is an
	// integrity error requiring reconciliation, never silently swallowed.
	ErrInconsistent = errors.New("ledger state inconsistent")
)
