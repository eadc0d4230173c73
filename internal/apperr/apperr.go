// Package apperr is the error taxonomy shared by every entry point.
// Errors are classified once, at the place the condition is detected,
// and translated to an HTTP status exactly once at the handler boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	Validation Kind = iota // malformed or missing input
	Authentication         // bad credentials
	Authorization          // wrong role or non-owner
	NotFound
	Timeout
	Conflict
	Internal
)

// Error carries a kind for status mapping and a stable machine code
// that clients can branch on without parsing the message.
type Error struct {
	Kind Kind
	Code string
	Msg  string
	Err  error // wrapped cause, never sent to the client
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Msg: msg}
}

// Wrap downgrades an unexpected failure to an opaque internal error.
// The cause stays attached for server-side logging.
func Wrap(err error, msg string) *Error {
	return &Error{Kind: Internal, Code: "internal", Msg: msg, Err: err}
}

// From extracts an *Error, or wraps unknown errors as internal.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, "internal server error")
}

func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case Validation:
		return http.StatusBadRequest
	case Authentication:
		return http.StatusUnauthorized
	case Authorization:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Timeout:
		return http.StatusRequestTimeout
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Shared sentinels for conditions raised from more than one place.
var (
	ErrInvalidCredentials = New(Authentication, "invalid_credentials", "invalid credentials")
	ErrDuplicateEmail     = New(Conflict, "duplicate_email", "email already in use")
	ErrForbidden          = New(Authorization, "forbidden", "forbidden")
	ErrNotFound           = New(NotFound, "not_found", "appointment not found")
)
