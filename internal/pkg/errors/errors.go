// Package errors provides the typed error kinds shared by the store, the
// integrity guard, the device façade and the HTTP layer.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error. Each kind maps to exactly one HTTP status.
type Kind string

const (
	KindValidation         Kind = "validation"
	KindReference          Kind = "reference"
	KindNotFound           Kind = "not_found"
	KindUnsupportedCommand Kind = "unsupported_command"
	KindMissingParameter   Kind = "missing_parameter"
	KindStore              Kind = "store"
)

// AppError is a structured application error.
type AppError struct {
	// Kind is the machine-readable error class.
	Kind Kind `json:"-"`

	// Message is the caller-facing message written into {"error": ...}.
	Message string `json:"error"`

	// HTTPStatus is the status the API boundary responds with.
	HTTPStatus int `json:"-"`

	// Err is the wrapped underlying error, never shown to callers.
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(kind Kind, message string, httpStatus int) *AppError {
	return &AppError{
		Kind:       kind,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an existing error into an AppError.
func Wrap(err error, kind Kind, message string, httpStatus int) *AppError {
	return &AppError{
		Kind:       kind,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Validation creates a 400 error for a missing, malformed or duplicate field.
func Validation(format string, args ...any) *AppError {
	return New(KindValidation, fmt.Sprintf(format, args...), http.StatusBadRequest)
}

// Reference creates a 400 error for a recipe pointing at a missing parent.
func Reference(format string, args ...any) *AppError {
	return New(KindReference, fmt.Sprintf(format, args...), http.StatusBadRequest)
}

// NotFound creates a 404 error.
func NotFound(format string, args ...any) *AppError {
	return New(KindNotFound, fmt.Sprintf(format, args...), http.StatusNotFound)
}

// UnsupportedCommand creates a 400 error for an unknown device command.
func UnsupportedCommand(format string, args ...any) *AppError {
	return New(KindUnsupportedCommand, fmt.Sprintf(format, args...), http.StatusBadRequest)
}

// MissingParameter creates a 400 error for a device command lacking a parameter.
func MissingParameter(format string, args ...any) *AppError {
	return New(KindMissingParameter, fmt.Sprintf(format, args...), http.StatusBadRequest)
}

// Store wraps a persistence failure as a 500 error.
func Store(err error, message string) *AppError {
	return Wrap(err, KindStore, message, http.StatusInternalServerError)
}

// IsAppError checks if an error is an AppError and returns it.
func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of err, or "" when err is not an AppError.
func KindOf(err error) Kind {
	if appErr, ok := IsAppError(err); ok {
		return appErr.Kind
	}
	return ""
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
