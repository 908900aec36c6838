// Package apperr provides structured application errors that carry an HTTP status.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents an application error with a stable code and HTTP status.
type Error struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithError returns a copy of e wrapping err, so predefined errors stay untouched.
func (e *Error) WithError(err error) *Error {
	clone := *e
	clone.Err = err
	return &clone
}

// New creates a new Error.
func New(code, message string, httpStatus int) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Validation creates a 400 validation error with the given message.
func Validation(message string) *Error {
	return New(CodeValidation, message, http.StatusBadRequest)
}

// Error codes
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHENTICATED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
)

// Predefined errors. Status quirks follow the public API contract: duplicate
// email and ownership failures are 403, a missing like/membership target is 400.
var (
	ErrUnauthorized       = New(CodeUnauthorized, "authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "permission denied", http.StatusForbidden)
	ErrEmailTaken         = New(CodeConflict, "email already registered", http.StatusForbidden)
	ErrInvalidCredentials = New(CodeValidation, "invalid email or password", http.StatusBadRequest)
	ErrUserNotFound       = New(CodeNotFound, "user not found", http.StatusNotFound)
	ErrSongNotFound       = New(CodeNotFound, "song not found", http.StatusNotFound)
	ErrSongUnknown        = New(CodeNotFound, "song does not exist", http.StatusBadRequest)
	ErrPlaylistNotFound   = New(CodeNotFound, "playlist not found", http.StatusNotFound)
	ErrPlaylistUnknown    = New(CodeNotFound, "playlist does not exist", http.StatusBadRequest)
	ErrInternal           = New(CodeInternal, "internal server error", http.StatusInternalServerError)
)

// Status returns the HTTP status for err, defaulting to 500.
func Status(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// Message returns the client-facing message for err. Unexpected errors are
// masked as an internal failure.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ErrInternal.Message
}

// Is reports whether err matches target by code.
func Is(err error, target *Error) bool {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code == target.Code
}
