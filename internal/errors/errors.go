// Package errors is the console's error taxonomy. Every failure that can
// reach a page is an *AppError whose Code decides how it is shown: inline
// field errors, a redirect to login, or a toast.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an AppError.
type ErrorCode string

const (
	// ErrCodeValidation is a failed form rule. It never reaches the API.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeUnauthorized is a missing or expired token (401).
	ErrCodeUnauthorized ErrorCode = "unauthorized"
	ErrCodeForbidden    ErrorCode = "forbidden" // 403
	ErrCodeConflict     ErrorCode = "conflict"  // 409, duplicate unique field
	ErrCodeNotFound     ErrorCode = "not_found" // 404
	// ErrCodeNetwork means no response was received.
	ErrCodeNetwork ErrorCode = "network"
	// ErrCodeServer covers 5xx and every status without a code of its own, 400 included.
	ErrCodeServer   ErrorCode = "server"
	ErrCodeInternal ErrorCode = "internal"
	ErrCodeTimeout  ErrorCode = "timeout"
	ErrCodeCanceled ErrorCode = "canceled"
)

var statusCodes = map[int]ErrorCode{
	http.StatusUnauthorized: ErrCodeUnauthorized,
	http.StatusForbidden:    ErrCodeForbidden,
	http.StatusNotFound:     ErrCodeNotFound,
	http.StatusConflict:     ErrCodeConflict,
}

// AppError carries a code, the message shown to the user and, for remote
// failures, the HTTP status the API answered with (0 when none arrived).
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
	// Field names the form field a validation error belongs to.
	Field  string
	Status int
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

func newErr(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Validation(message string) *AppError   { return newErr(ErrCodeValidation, message) }
func NotFound(message string) *AppError     { return newErr(ErrCodeNotFound, message) }
func Conflict(message string) *AppError     { return newErr(ErrCodeConflict, message) }
func Unauthorized(message string) *AppError { return newErr(ErrCodeUnauthorized, message) }
func Internal(message string) *AppError     { return newErr(ErrCodeInternal, message) }

// ValidationField is a validation error rendered next to field.
func ValidationField(field, message string) *AppError {
	e := newErr(ErrCodeValidation, message)
	e.Field = field
	return e
}

// FromStatus classifies a non-2xx API response.
func FromStatus(status int, message string) *AppError {
	code, ok := statusCodes[status]
	if !ok {
		code = ErrCodeServer
	}
	return &AppError{Code: code, Message: message, Status: status}
}

// Network classifies a request that got no response. Cancellation and
// deadlines keep their own codes.
func Network(err error) *AppError {
	switch {
	case errors.Is(err, context.Canceled):
		return Wrap(err, ErrCodeCanceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(err, ErrCodeTimeout, "request timed out")
	default:
		return Wrap(err, ErrCodeNetwork, "remote api unreachable")
	}
}

// Wrap attaches a code and message to err; nil stays nil.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

func asApp(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// Is reports whether the outermost AppError in err's chain has code.
func Is(err error, code ErrorCode) bool {
	appErr, ok := asApp(err)
	return ok && appErr.Code == code
}

func IsValidation(err error) bool   { return Is(err, ErrCodeValidation) }
func IsUnauthorized(err error) bool { return Is(err, ErrCodeUnauthorized) }
func IsForbidden(err error) bool    { return Is(err, ErrCodeForbidden) }
func IsConflict(err error) bool     { return Is(err, ErrCodeConflict) }
func IsNotFound(err error) bool     { return Is(err, ErrCodeNotFound) }
func IsNetwork(err error) bool      { return Is(err, ErrCodeNetwork) }
func IsServer(err error) bool       { return Is(err, ErrCodeServer) }
func IsTimeout(err error) bool      { return Is(err, ErrCodeTimeout) }

// GetCode returns "" for errors outside the taxonomy.
func GetCode(err error) ErrorCode {
	if appErr, ok := asApp(err); ok {
		return appErr.Code
	}
	return ""
}

// GetStatus returns the API status carried by err, or 0.
func GetStatus(err error) int {
	if appErr, ok := asApp(err); ok {
		return appErr.Status
	}
	return 0
}

func GetField(err error) string {
	if appErr, ok := asApp(err); ok {
		return appErr.Field
	}
	return ""
}

// WithMessage keeps err's classification (code, status, field) but replaces
// the message the user sees. err stays reachable as the cause.
func WithMessage(err error, message string) *AppError {
	if err == nil {
		return nil
	}
	out := &AppError{Code: ErrCodeInternal, Message: message, Cause: err}
	if appErr, ok := asApp(err); ok {
		out.Code, out.Status, out.Field = appErr.Code, appErr.Status, appErr.Field
	}
	return out
}

// MessageOf returns the outermost AppError's message, or err.Error() for
// errors outside the taxonomy.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	if appErr, ok := asApp(err); ok {
		return appErr.Message
	}
	return err.Error()
}
