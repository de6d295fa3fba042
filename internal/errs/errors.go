package errs

import (
	"errors"
	"fmt"
)

// Common sentinel errors for cross-layer signaling.
var (
	ErrNotFound = errors.New("not_found")
	// ErrDuplicate is returned when a create would break key uniqueness.
	ErrDuplicate = errors.New("duplicate")
	ErrInvalid   = errors.New("invalid")
)

// kindError carries a human-readable message while unwrapping to one of the
// sentinel kinds above, so callers can match with errors.Is and still surface
// the message verbatim.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// New returns an error with message msg that matches kind via errors.Is.
func New(kind error, msg string) error { return &kindError{kind: kind, msg: msg} }

// NotFoundf formats a not-found failure.
func NotFoundf(format string, args ...any) error {
	return New(ErrNotFound, fmt.Sprintf(format, args...))
}

// Duplicatef formats a duplicate-key failure.
func Duplicatef(format string, args ...any) error {
	return New(ErrDuplicate, fmt.Sprintf(format, args...))
}

// Invalidf formats an invalid-argument failure.
func Invalidf(format string, args ...any) error {
	return New(ErrInvalid, fmt.Sprintf(format, args...))
}
