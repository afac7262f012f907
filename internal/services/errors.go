package services

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every service. Handlers map these onto HTTP
// statuses; services never touch HTTP themselves.
var (
	// ErrInvalidInput marks malformed enum values, empty required text, or
	// content exceeding a length bound.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden marks a caller lacking the required capability. Admin-only
	// operations fail closed with this, never a silent no-op.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound marks a reference to an initiative or comment that does not
	// exist, distinct from ErrForbidden.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyVoted marks a duplicate vote attempt. It is a recoverable
	// user-facing condition, not a failure.
	ErrAlreadyVoted = errors.New("already voted")
)

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func forbiddenf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}
