package common

import (
	"errors"
	"fmt"
)

// The error taxonomy of the system. Everything here is recoverable at the
// call site and surfaced as a typed result; nothing is fatal.
var (
	ErrNotFound      = errors.New("not found")
	ErrPermission    = errors.New("permission denied")
	ErrBanned        = errors.New("account is banned")
	ErrBadCredential = errors.New("wrong password")
	ErrSelfFollow    = errors.New("cannot follow yourself")
)

// ValidationError reports missing or malformed input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError reports a uniqueness violation at registration or profile
// update (student id, username or email already taken).
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already taken", e.Field)
}

func Conflict(field string) error {
	return &ConflictError{Field: field}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}
