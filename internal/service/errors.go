// Package service holds the business rules of the planner.  Services
// translate repository errors into the domain errors below; the HTTP layer
// maps each kind to a status code in one place.
package service

import (
	"errors"
	"fmt"
)

// Error kinds.  Every domain error matches exactly one of these with errors.Is.
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("Forbidden")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrCapacityExceeded = errors.New("Event is full")
	ErrAlreadyJoined    = errors.New("Already joined this event")
	ErrUpstream         = errors.New("Movie lookup unavailable")
)

// Specific errors carrying the message shown to clients.
var (
	ErrInvalidCredentials = kindError(ErrUnauthorized, "Invalid credentials")
	ErrMissingToken       = kindError(ErrUnauthorized, "No token provided")
	ErrInvalidToken       = kindError(ErrUnauthorized, "Invalid token")

	ErrEventNotFound = kindError(ErrNotFound, "Event not found")
	ErrUserNotFound  = kindError(ErrNotFound, "User not found")

	ErrUserExists         = kindError(ErrConflict, "Username or email already exists")
	ErrMovieExists        = kindError(ErrConflict, "Movie already in list")
	ErrCapacityBelowCount = kindError(ErrConflict, "max_participants is below the current participant count")
)

// domainError is a client-facing message tied to an error kind.
type domainError struct {
	kind error
	msg  string
}

func kindError(kind error, msg string) error { return &domainError{kind: kind, msg: msg} }

func (e *domainError) Error() string { return e.msg }
func (e *domainError) Unwrap() error { return e.kind }

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalidf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
