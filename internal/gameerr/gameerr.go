// Package gameerr defines the error taxonomy shared by the rules engine.
//
// Every rejected action carries a Kind so callers can decide between
// reporting the failure to the player and aborting an operation.
package gameerr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind string

// Error kinds.
const (
	KindParse           Kind = "parse"
	KindValidation      Kind = "validation"
	KindInvalidTarget   Kind = "invalid_target"
	KindUnknownLocation Kind = "unknown_location"
	KindPersistence     Kind = "persistence"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
)

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// Sentinels for errors.Is checks against a Kind.
var (
	ErrParse           = &Error{Kind: KindParse}
	ErrValidation      = &Error{Kind: KindValidation}
	ErrInvalidTarget   = &Error{Kind: KindInvalidTarget}
	ErrUnknownLocation = &Error{Kind: KindUnknownLocation}
	ErrPersistence     = &Error{Kind: KindPersistence}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrConflict        = &Error{Kind: KindConflict}
)

// Error is a classified failure with an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies cause under kind. A nil cause yields nil.
func Wrap(kind Kind, cause error, message string) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Validationf is shorthand for Newf(KindValidation, ...).
func Validationf(format string, args ...any) *Error {
	return Newf(KindValidation, format, args...)
}

// KindOf returns the Kind of err, or "" when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, ErrParse) {
		return KindParse
	}
	return ""
}
