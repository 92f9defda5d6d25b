package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeTransport indicates the request never produced an HTTP response
	// (DNS failure, refused connection, reset stream).
	ErrCodeTransport ErrorCode = "transport"
	// ErrCodeAuthRejected indicates the backend refused the credentials or token.
	ErrCodeAuthRejected ErrorCode = "auth_rejected"
	// ErrCodeValidation indicates the backend rejected the request as malformed.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeBackend indicates any other non-2xx backend response.
	ErrCodeBackend ErrorCode = "backend"
	// ErrCodeDecode indicates a 2xx response whose body could not be decoded.
	ErrCodeDecode ErrorCode = "decode"
	// ErrCodeInternal indicates a client-side failure (building a request, bad config).
	ErrCodeInternal ErrorCode = "internal"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Status is the HTTP status code returned by the backend, zero when no response was received.
	Status int
	// Detail is the backend's error detail verbatim (FastAPI "detail" field or raw body).
	Detail string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Transport wraps a failure that happened before any response arrived.
func Transport(err error, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    ErrCodeTransport,
		Message: message,
		Cause:   err,
	}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// Internalf creates a new Internal error with formatted message.
func Internalf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// FromStatus classifies a non-2xx backend response.
func FromStatus(status int, message, detail string) *AppError {
	return &AppError{
		Code:    CodeForStatus(status),
		Message: message,
		Status:  status,
		Detail:  detail,
	}
}

// CodeForStatus maps an HTTP status to the error taxonomy.
func CodeForStatus(status int) ErrorCode {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrCodeAuthRejected
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrCodeValidation
	default:
		return ErrCodeBackend
	}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsTransport checks if an error is a Transport error.
func IsTransport(err error) bool {
	return isCode(err, ErrCodeTransport)
}

// IsAuthRejected checks if an error is an AuthRejected error.
func IsAuthRejected(err error) bool {
	return isCode(err, ErrCodeAuthRejected)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsBackend checks if an error is a generic Backend error.
func IsBackend(err error) bool {
	return isCode(err, ErrCodeBackend)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetStatus returns the backend HTTP status from an error, or 0 if none was received.
func GetStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return 0
}
