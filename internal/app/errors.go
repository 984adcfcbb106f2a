package app

import "errors"

// Validation failures. Services wrap them with the offending field names.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrMissingField  = errors.New("missing field")
	ErrTooShort      = errors.New("too short")
	ErrInvalidLikes  = errors.New("likes must be a non-negative integer")
	ErrUsernameTaken = errors.New("username is already in use")
)

// Auth failures.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenMissing       = errors.New("missing token")
	ErrTokenInvalid       = errors.New("missing or invalid token")
	ErrTokenExpired       = errors.New("token has expired")
	ErrForbidden          = errors.New("permission denied")
)
