// Package errors defines the application error taxonomy. Every layer
// attaches context and forwards; the HTTP error boundary is the single
// place these become wire responses.
package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError is the contract between business code and the error boundary.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
}

// BaseError is the standard AppError implementation.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, errorCode, message string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message.
func (e *BaseError) Message() string {
	return e.message
}

// Predefined error types
var (
	// Input validation failed before reaching any controller.
	ErrValidationFailed = NewBaseError(
		http.StatusUnprocessableEntity,
		"VALIDATION_FAILED",
		"request body failed validation",
	)

	// Session lifecycle errors, distinguished by message so clients can
	// decide between a silent refresh and a forced re-login.
	ErrNotAuthenticated = NewBaseError(
		http.StatusUnauthorized,
		"NOT_AUTHENTICATED",
		"no session credentials supplied",
	)

	ErrSessionExpired = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_EXPIRED",
		"session expired, sign in again",
	)

	ErrSessionInvalid = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_INVALID",
		"session credentials are not valid",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"email or password is incorrect",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"access denied",
	)

	// Uniqueness and mutation conflicts.
	ErrEmailTaken = NewBaseError(
		http.StatusConflict,
		"EMAIL_TAKEN",
		"a user with this email already exists",
	)

	ErrPhoneTaken = NewBaseError(
		http.StatusConflict,
		"PHONE_TAKEN",
		"a user with this phone number already exists",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"resource conflict",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"resource not found",
	)

	// A referenced entity failed its pre-mutation existence check.
	ErrReferenceNotFound = NewBaseError(
		http.StatusBadRequest,
		"REFERENCE_NOT_FOUND",
		"referenced entity does not exist",
	)

	// The requesting user has no interest set, so discovery cannot be
	// personalized. Terminal for the request; fixed by setting preferences.
	ErrCannotPersonalize = NewBaseError(
		http.StatusConflict,
		"CANNOT_PERSONALIZE",
		"set your interests to discover deals",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"password processing failed",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
	)
)

// DatabaseExecuteError represents a document store execution error.
type DatabaseExecuteError struct {
	err error
	// op is the originating operation name, kept for traceability in logs.
	op string
}

// NewDatabaseExecuteError creates a store-related error annotated with
// the originating operation.
func NewDatabaseExecuteError(err error, op string) AppError {
	return &DatabaseExecuteError{err: err, op: op}
}

// Error implements the error interface.
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "document store execution failed at "+e.op).Error()
}

// HTTPCode returns the HTTP status code.
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code.
func (e *DatabaseExecuteError) ErrorCode() string {
	return "STORE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message.
func (e *DatabaseExecuteError) Message() string {
	return "document store execution failed"
}

// Unwrap exposes the underlying store error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}
