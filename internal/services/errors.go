package services

import "errors"

// Service-level error taxonomy. Handlers map these onto HTTP statuses;
// anything not listed here surfaces as an internal error.
var (
	// ErrInvalidInput means a required request field is missing or empty.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUsernameTaken means registration lost to an existing account.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrAuthenticationFailed covers both unknown-user and wrong-password
	// logins. The two causes are deliberately indistinguishable so the
	// API does not leak which usernames exist.
	ErrAuthenticationFailed = errors.New("invalid username or password")

	// ErrUnauthorized means the bearer token is missing, malformed,
	// tampered with, or expired.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidID means the note id is not a well-formed identifier.
	ErrInvalidID = errors.New("invalid note id")

	// ErrNotFound means no note matches the (owner, id) pair. A note
	// owned by someone else reports the same error as a missing one.
	ErrNotFound = errors.New("note not found")

	// ErrStoreUnavailable wraps unexpected storage failures.
	ErrStoreUnavailable = errors.New("store unavailable")
)
