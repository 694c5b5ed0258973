package apperrors

import (
	"errors"
	"fmt"
)

// Kind is the stable category of an application error.
type Kind string

const (
	KindNotFound            Kind = "NOT_FOUND"
	KindForbidden           Kind = "FORBIDDEN"
	KindConflict            Kind = "CONFLICT"
	KindInvalid             Kind = "INVALID_ARGUMENT"
	KindInsufficientCatalog Kind = "INSUFFICIENT_CATALOG"
	KindCatalog             Kind = "CATALOG"
	KindInternal            Kind = "INTERNAL"
)

// Error carries a Kind, a human readable message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports a match when the target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrNotFound            = &Error{Kind: KindNotFound}
	ErrForbidden           = &Error{Kind: KindForbidden}
	ErrConflict            = &Error{Kind: KindConflict}
	ErrInvalid             = &Error{Kind: KindInvalid}
	ErrInsufficientCatalog = &Error{Kind: KindInsufficientCatalog}
	ErrCatalog             = &Error{Kind: KindCatalog}
)

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func NotFound(format string, args ...any) *Error  { return New(KindNotFound, format, args...) }
func Forbidden(format string, args ...any) *Error { return New(KindForbidden, format, args...) }
func Conflict(format string, args ...any) *Error  { return New(KindConflict, format, args...) }
func Invalid(format string, args ...any) *Error   { return New(KindInvalid, format, args...) }

func InsufficientCatalog(format string, args ...any) *Error {
	return New(KindInsufficientCatalog, format, args...)
}

func Catalog(format string, args ...any) *Error { return New(KindCatalog, format, args...) }

// KindOf returns the Kind of the first *Error in the chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns the message of the first *Error in the chain, or err.Error().
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}
