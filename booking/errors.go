package booking

import (
	"errors"
	"fmt"
	"time"
)

// Kind is the stable error classification the HTTP layer maps to status
// codes. New kinds must also be mapped in the handlers package.
type Kind string

const (
	KindValidation         Kind = "validation_error"
	KindConflict           Kind = "conflict_error"
	KindNotFound           Kind = "not_found"
	KindForbidden          Kind = "forbidden"
	KindInvalidState       Kind = "invalid_state"
	KindUnauthenticated    Kind = "unauthenticated"
	KindPersistenceTimeout Kind = "persistence_timeout"
)

// Error is the engine's structured failure value. Conflict errors carry the
// first interval that failed the overlap check so callers can report which
// occurrence of a recurring series collided.
type Error struct {
	Kind     Kind      `json:"kind"`
	Message  string    `json:"message"`
	Conflict *Interval `json:"conflict,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewValidation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewConflict(iv Interval) *Error {
	return &Error{
		Kind:     KindConflict,
		Message:  fmt.Sprintf("interval [%s, %s) overlaps an existing booking", iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339)),
		Conflict: &iv,
	}
}

func NewNotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewForbidden(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidState(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func NewUnauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func NewPersistenceTimeout(message string) *Error {
	return &Error{Kind: KindPersistenceTimeout, Message: message}
}

// KindOf extracts the Kind from an error chain; unrecognized errors report
// an empty Kind and should be treated as internal failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}
