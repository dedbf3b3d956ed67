package core

import (
	"errors"
	"fmt"
)

// Kind classifies service errors so the HTTP layer can map them to responses.
type Kind string

const (
	// KindConfiguration indicates a missing or invalid credential.
	KindConfiguration Kind = "configuration_error"
	// KindProvider indicates an upstream LLM call failure.
	KindProvider Kind = "provider_error"
	// KindState indicates an operation invalid for the debate's current status.
	KindState Kind = "state_error"
	// KindNotFound indicates an unknown debate ID.
	KindNotFound Kind = "not_found"
	// KindParse indicates malformed judge output.
	KindParse Kind = "parse_error"
)

// Error is a classified service error. It wraps an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a classified error, or "" for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is a classified error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// ConfigurationErrorf creates a credential configuration error.
func ConfigurationErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Message: fmt.Sprintf(format, args...)}
}

// ProviderErrorf creates an upstream provider error wrapping its cause.
func ProviderErrorf(err error, format string, args ...any) *Error {
	return &Error{Kind: KindProvider, Message: fmt.Sprintf(format, args...), Err: err}
}

// StateErrorf creates an invalid-state error.
func StateErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindState, Message: fmt.Sprintf(format, args...)}
}

// NotFoundErrorf creates an unknown-ID error.
func NotFoundErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// ParseErrorf creates a malformed-output error wrapping its cause.
func ParseErrorf(err error, format string, args ...any) *Error {
	return &Error{Kind: KindParse, Message: fmt.Sprintf(format, args...), Err: err}
}
