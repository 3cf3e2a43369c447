// Package apierr provides the error taxonomy shared by the transport, the
// resource client, and the caches.
//
// Two families of failures exist: the backend rejected a request
// (a remote error carrying the HTTP status and the server message), or the
// transport never reached the backend (a network error wrapping the cause).
// Callers match either family with errors.Is against the sentinel values, or
// inspect the Code/Status of a concrete *Error via errors.As.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code is a machine-readable error class.
type Code string

const (
	CodeNetwork      Code = "NETWORK"
	CodeValidation   Code = "VALIDATION"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeRateLimited  Code = "RATE_LIMITED"
	CodeServer       Code = "SERVER"
	CodeInternal     Code = "INTERNAL"
)

// Error is a request failure. Status is the HTTP status for remote errors and
// zero for network errors.
type Error struct {
	Status  int    `json:"status,omitempty"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error. Two *Error values match when
// their codes are equal, so sentinel comparisons work regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Remote reports whether the error came back from the backend rather than
// from the transport.
func (e *Error) Remote() bool {
	return e.Status > 0
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{Status: e.Status, Code: e.Code, Message: e.Message, cause: err}
}

// Sentinel errors for use with errors.Is().
var (
	ErrNetwork      = &Error{Code: CodeNetwork, Message: "network error"}
	ErrValidation   = &Error{Status: http.StatusBadRequest, Code: CodeValidation, Message: "validation error"}
	ErrUnauthorized = &Error{Status: http.StatusUnauthorized, Code: CodeUnauthorized, Message: "unauthorized"}
	ErrForbidden    = &Error{Status: http.StatusForbidden, Code: CodeForbidden, Message: "forbidden"}
	ErrNotFound     = &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: "not found"}
	ErrConflict     = &Error{Status: http.StatusConflict, Code: CodeConflict, Message: "conflict"}
	ErrRateLimited  = &Error{Status: http.StatusTooManyRequests, Code: CodeRateLimited, Message: "rate limited"}
	ErrServer       = &Error{Status: http.StatusInternalServerError, Code: CodeServer, Message: "server error"}
)

// Network creates a network error wrapping the transport cause.
func Network(msg string, cause error) *Error {
	return &Error{Code: CodeNetwork, Message: msg, cause: cause}
}

// Internal creates an internal client error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Internalf creates an internal client error with a formatted message.
func Internalf(format string, args ...any) *Error {
	return &Error{Code: CodeInternal, Message: fmt.Sprintf(format, args...)}
}

// FromStatus normalizes a non-2xx response into a remote error. The message
// should be the server-provided message when one was parsed from the body.
func FromStatus(status int, message string) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	return &Error{Status: status, Code: codeForStatus(status), Message: message}
}

func codeForStatus(status int) Code {
	switch status {
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	case http.StatusTooManyRequests:
		return CodeRateLimited
	}
	if status >= 500 {
		return CodeServer
	}
	return CodeValidation
}
