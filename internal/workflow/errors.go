package workflow

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an engine failure so the transport layer can map it to a
// status code without parsing messages.
type Kind string

const (
	KindValidation   Kind = "validation_error"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindInvalidState Kind = "invalid_state"
	KindConflict     Kind = "conflict"
	KindUnavailable  Kind = "unavailable"
)

// Error is the engine's failure type. Every check runs before any write, so
// an Error always means zero mutations happened.
type Error struct {
	Kind    Kind
	Message string
	// Fields lists the offending input fields for validation failures.
	Fields []string
	cause  error
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func validationErr(fields ...string) *Error {
	return &Error{Kind: KindValidation, Message: "invalid fields", Fields: fields}
}

func unauthorizedErr(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func forbiddenErr(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func notFoundErr(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func invalidStateErr(msg string) *Error {
	return &Error{Kind: KindInvalidState, Message: msg}
}

func conflictErr(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func unavailableErr(cause error) *Error {
	return &Error{Kind: KindUnavailable, Message: "storage unavailable", cause: cause}
}

// KindOf extracts the Kind from err, or empty string for non-engine errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
