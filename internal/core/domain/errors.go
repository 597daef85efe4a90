package domain

import "errors"

var (
	// ErrInvalidInput covers missing or malformed client input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmailTaken maps the store's email uniqueness violation.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned for every login failure. Unknown email
	// and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated covers a missing, malformed, expired, or stale session.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means the actor is authenticated but not authorized.
	ErrForbidden = errors.New("access forbidden")

	ErrUserNotFound = errors.New("user not found")
	ErrNoteNotFound = errors.New("note not found")
)
