package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidNotification indicates a push envelope that could not be decoded.
	ErrInvalidNotification = errors.New("invalid push notification")

	// ErrInvalidOptions indicates a fetch options configuration error.
	// Raised synchronously, before any provider I/O happens.
	ErrInvalidOptions = errors.New("invalid fetch options")

	// ErrLabelSetOverlap indicates the include and exclude label sets share
	// a label ID. A record cannot both require and forbid the same label.
	ErrLabelSetOverlap = errors.New("with/without label sets overlap")

	// Authentication Errors.

	// ErrAuthRequired indicates the mailbox requires authentication but none is configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the authentication credentials are invalid.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
