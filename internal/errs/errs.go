// Package errs defines the closed set of error categories used across the
// dispatch layer. Every failure that can reach a caller is tagged with a
// Kind so the front ends can translate it into the right response shape.
package errs

import (
	"errors"
	"fmt"
)

// Error kinds categorize errors by their type.
const (
	// KindConfiguration represents a missing or invalid startup setting.
	KindConfiguration = "configuration"

	// KindValidation represents an argument that failed schema validation.
	KindValidation = "validation"

	// KindNotFound represents a lookup of an unregistered tool name.
	KindNotFound = "not_found"

	// KindBadRequest represents a malformed or unroutable request.
	KindBadRequest = "bad_request"

	// KindExecution represents a tool executor or remote-call failure.
	KindExecution = "execution"
)

// Error is a structured error carrying the operation that failed, its
// category, and an optional field path and underlying cause.
//
// Error supports errors.Is and errors.As so callers can match on either
// the concrete type or a wrapped sentinel.
type Error struct {
	// Op is the operation that failed (e.g., "registry.Dispatch").
	Op string

	// Kind categorizes the error (e.g., KindValidation).
	Kind string

	// Field is the argument path for validation errors (e.g., "metafields.0.value").
	Field string

	// Message is a human-readable description of the failure.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, msg)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, msg)
	}
	return msg
}

// Unwrap returns the underlying error for errors.Is/errors.As chains.
func (e *Error) Unwrap() error { return e.Err }

// New constructs an Error with the given kind and formatted message.
func New(op, kind, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap constructs an Error around an underlying cause.
func Wrap(op, kind string, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Validation constructs a KindValidation error for a specific field path.
func Validation(field, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err if it is (or wraps) an *Error, or
// KindExecution otherwise. Untagged errors from executors are treated as
// execution failures at the dispatch boundary.
func KindOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindExecution
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind string) bool {
	return KindOf(err) == kind
}

// MessageOf returns the human-readable message of err without the Op prefix,
// falling back to err.Error() for untagged errors.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		msg := e.Message
		if msg == "" && e.Err != nil {
			msg = e.Err.Error()
		}
		if e.Field != "" {
			return fmt.Sprintf("%s: %s", e.Field, msg)
		}
		return msg
	}
	return err.Error()
}

// DetailOf returns the underlying cause chain of err as a string, or ""
// when there is nothing beyond the message itself. Used to populate the
// details part of a failure envelope.
func DetailOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Err != nil {
		return e.Err.Error()
	}
	return ""
}
