// Package errors provides structured error types for graphview.
//
// Every failure surfaced by the scene, the geometry generator, the backends
// and the loaders carries a machine-readable Code so callers can branch on
// the category without string matching:
//
//	err := s.AddNode(1, geom.Pt(0, 0))
//	if errors.Is(err, errors.ErrCodeDuplicateID) {
//	    // id 1 already exists
//	}
//
// Wrap keeps the underlying cause available to the standard errors.Is/As.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Scene identity errors
	ErrCodeDuplicateID Code = "DUPLICATE_ID"
	ErrCodeNotFound    Code = "NOT_FOUND"

	// Geometry errors (non-positive widths, bad dash fill, negative sizes)
	ErrCodeInvalidGeometry Code = "INVALID_GEOMETRY"

	// Icon, background or font files that are missing or undecodable
	ErrCodeResourceLoad Code = "RESOURCE_LOAD"

	// Window lifecycle misuse (create twice, mutate before create, ...)
	ErrCodeInvalidLifecycle Code = "INVALID_LIFECYCLE"

	// Malformed graph files or configuration
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix for *Error
// values, and the plain error string otherwise.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// NotFound is shorthand for the common "no such <kind> <id>" error.
func NotFound(kind string, id int) *Error {
	return New(ErrCodeNotFound, "no such %s id %d", kind, id)
}

// DuplicateID is shorthand for the "<kind> <id> already exists" error.
func DuplicateID(kind string, id int) *Error {
	return New(ErrCodeDuplicateID, "%s id %d already exists", kind, id)
}
