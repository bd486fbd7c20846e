package errors

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Validation errors. Reported synchronously to the caller; a request that
	// fails validation never reaches the export log.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"export request validation failed",
		"",
	)

	// Credential errors. The user has not linked the named provider yet;
	// this is a legitimate state, not a system fault.
	ErrMetaNotConnected = NewBaseError(
		http.StatusPreconditionFailed,
		"META_NOT_CONNECTED",
		"Meta account is not connected, connect it before exporting",
		"",
	)

	ErrGoogleNotConnected = NewBaseError(
		http.StatusPreconditionFailed,
		"GOOGLE_NOT_CONNECTED",
		"Google account is not connected, connect it before exporting",
		"",
	)

	// Upstream provider errors. The provider's own message is preserved
	// verbatim in the details.
	ErrMetaUpstream = NewBaseError(
		http.StatusBadGateway,
		"META_UPSTREAM_ERROR",
		"Meta API request failed",
		"",
	)

	ErrSheetsUpstream = NewBaseError(
		http.StatusBadGateway,
		"SHEETS_UPSTREAM_ERROR",
		"Google Sheets request failed",
		"",
	)

	ErrTokenExchangeFailed = NewBaseError(
		http.StatusBadGateway,
		"TOKEN_EXCHANGE_FAILED",
		"token exchange with the provider failed",
		"",
	)

	// Export config errors
	ErrExportConfigNotFound = NewBaseError(
		http.StatusNotFound,
		"EXPORT_CONFIG_NOT_FOUND",
		"export config not found",
		"",
	)

	ErrExportConfigNameTaken = NewBaseError(
		http.StatusConflict,
		"EXPORT_CONFIG_NAME_TAKEN",
		"an export config with this name already exists",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"resource not found",
		"",
	)
)

// RateLimitedError is returned when the sync cooldown for a guarded operation
// has not elapsed. It carries the remaining wait time in whole seconds.
type RateLimitedError struct {
	SecondsLeft int64
}

// NewRateLimitedError creates a rate-limited error with the remaining wait.
func NewRateLimitedError(secondsLeft int64) AppError {
	return &RateLimitedError{SecondsLeft: secondsLeft}
}

// Error implements the error interface
func (e *RateLimitedError) Error() string {
	return e.Message()
}

// HTTPCode returns the HTTP status code
func (e *RateLimitedError) HTTPCode() int {
	return http.StatusTooManyRequests
}

// ErrorCode returns the business error code
func (e *RateLimitedError) ErrorCode() string {
	return "SYNC_RATE_LIMITED"
}

// Message returns the user-friendly error message
func (e *RateLimitedError) Message() string {
	return fmt.Sprintf("please wait %d seconds before refreshing again", e.SecondsLeft)
}

// Details returns detailed error information
func (e *RateLimitedError) Details() string {
	return fmt.Sprintf("%d seconds remaining in the cooldown window", e.SecondsLeft)
}

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
