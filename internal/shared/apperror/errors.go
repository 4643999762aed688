// Package apperror defines the typed errors that cross the usecase boundary.
// Each Kind maps to exactly one HTTP status and one stable machine-readable code.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
)

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Code returns the stable error code for the kind.
func (k Kind) Code() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindAuthentication:
		return "AUTHENTICATION_ERROR"
	case KindAuthorization:
		return "AUTHORIZATION_ERROR"
	case KindNotFound:
		return "NOT_FOUND_ERROR"
	case KindConflict:
		return "CONFLICT_ERROR"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}

// Error is an application error carrying a Kind, a client-safe message and optional details.
type Error struct {
	Kind    Kind
	Message string
	// Details is serialized for validation errors, and for other kinds only in development mode.
	Details any
	// Err is the underlying cause, if any. It is never serialized.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a sentinel of the same Kind.
func (e *Error) Is(target error) bool {
	var s *sentinel
	if errors.As(target, &s) {
		return s.kind == e.Kind
	}
	return false
}

type sentinel struct {
	kind Kind
}

func (s *sentinel) Error() string { return s.kind.Code() }

// Sentinels for errors.Is checks against a Kind.
var (
	ErrValidation     error = &sentinel{kind: KindValidation}
	ErrAuthentication error = &sentinel{kind: KindAuthentication}
	ErrAuthorization  error = &sentinel{kind: KindAuthorization}
	ErrNotFound       error = &sentinel{kind: KindNotFound}
	ErrConflict       error = &sentinel{kind: KindConflict}
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validation returns a validation error. Optional field errors become Details.
func Validation(message string, fields ...FieldError) *Error {
	e := &Error{Kind: KindValidation, Message: message}
	if len(fields) > 0 {
		e.Details = fields
	}
	return e
}

// Authentication returns an authentication error.
func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// Authorization returns an authorization error.
func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

// NotFound returns "<resource> not found".
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

// Conflict returns a conflict error.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// KindOf returns the Kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
