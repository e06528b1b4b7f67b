// Package errs defines the error taxonomy of the fetch pipeline. Every
// error is fatal: it propagates to the CLI top level, which prints a
// one-line diagnostic and exits non-zero.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	// KindConfig: missing or invalid credentials or arguments, detected
	// before any network call is made.
	KindConfig Kind = iota + 1
	// KindFetch: network, HTTP status or response transport failure.
	KindFetch
	// KindFormat: the API response lacks the expected shape.
	KindFormat
	// KindIO: output file or database write failure.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindFetch:
		return "fetch"
	case KindFormat:
		return "format"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error carries a kind, a message and an optional underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// New creates an Error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an Error with the given kind and formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps a cause with the given kind and message.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Wrapf wraps a cause with the given kind and formatted message.
func Wrapf(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// HasKind reports whether err, or anything it wraps, is an Error of the
// given kind.
func HasKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
