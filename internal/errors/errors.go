package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so callers branch on it instead of matching
// message text.
type Kind int

const (
	Unauthenticated Kind = iota // no identity claim presented
	Forbidden                   // claim present, role/ownership mismatch
	Conflict                    // duplicate account
	NotFound                    // no matching account/record
	NoCredential                // account has no password (Google sign-in)
	InvalidCredential           // password mismatch
	InvalidInput                // missing or malformed field
	Unavailable                 // storage/collaborator failure
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the kind onto the HTTP status the handler layer writes.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case Conflict:
		return http.StatusConflict
	case NotFound:
		return http.StatusNotFound
	case NoCredential, InvalidCredential, InvalidInput:
		return http.StatusBadRequest
	case Unavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap keeps the underlying cause for logs while the caller still sees the kind.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func IsNotFound(err error) bool {
	return IsKind(err, NotFound)
}
