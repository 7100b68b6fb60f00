// Package domainerrors defines the coded error type shared across the
// client. Services and the gateway attach a Code so callers can branch on
// failure kind without string matching; infra layers keep returning
// pkg/platform/sentinel errors and are translated at the service boundary.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for callers.
type Code string

const (
	// CodeNetwork marks a transport failure: the request never produced a
	// response. Never retried automatically.
	CodeNetwork Code = "network"
	// CodeUnauthorized marks a missing, malformed, or rejected credential.
	CodeUnauthorized Code = "unauthorized"
	// CodeValidation marks input rejected either locally before the wire
	// call or by the remote service.
	CodeValidation Code = "validation"
	// CodeNotFound marks a lookup with no match; a user-visible state, not
	// a fault.
	CodeNotFound Code = "not_found"
	// CodeConflict marks a uniqueness clash, e.g. registering an email
	// that already has an account.
	CodeConflict Code = "conflict"
	// CodeInternal marks an unexpected remote or local failure.
	CodeInternal Code = "internal"
)

// Error is a coded error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a coded error with no cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error. A nil err
// yields nil so call sites can wrap unconditionally.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err or any error in its chain carries code.
func HasCode(err error, code Code) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	if e.Code == code {
		return true
	}
	return HasCode(e.Unwrap(), code)
}

// Is is shorthand for HasCode, reading naturally in tests.
func Is(err error, code Code) bool { return HasCode(err, code) }

// CodeOf returns the outermost code in the chain, or CodeInternal when
// err carries none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
