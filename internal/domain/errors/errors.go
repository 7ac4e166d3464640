package errors

import (
	"net/http"

	"inkwell/internal/errors"
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

// Predefined error types. The messages are part of the public API contract
// and must not be reworded.
var (
	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusBadRequest,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrUserMissing = NewBaseError(
		http.StatusBadRequest,
		"USER_MISSING",
		"User tidak ditemukan",
		"",
	)

	ErrEmailTaken = NewBaseError(
		http.StatusBadRequest,
		"EMAIL_TAKEN",
		"Email sudah terdaftar",
		"",
	)

	ErrUsernameTaken = NewBaseError(
		http.StatusBadRequest,
		"USERNAME_TAKEN",
		"Username sudah terdaftar",
		"",
	)

	// Authentication-related errors
	ErrPasswordNotMatch = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_NOT_MATCH",
		"Password not match",
		"",
	)

	ErrPasswordConfirmation = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_CONFIRMATION",
		"Password tidak sama",
		"",
	)

	ErrTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_INVALID",
		"Token tidak valid",
		"",
	)

	ErrTokenNotFound = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_NOT_FOUND",
		"Token tidak ditemukan",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Failed to process password",
		"",
	)

	// API token gate errors
	ErrAPITokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"API_TOKEN_INVALID",
		"Token tidak valid",
		"",
	)

	ErrAPITokenExhausted = NewBaseError(
		http.StatusTooManyRequests,
		"API_TOKEN_EXHAUSTED",
		"Kuota token sudah habis",
		"",
	)

	// Content-related errors
	ErrBlogNotFound = NewBaseError(
		http.StatusNotFound,
		"BLOG_NOT_FOUND",
		"Blog tidak ditemukan",
		"",
	)

	ErrPortfolioNotFound = NewBaseError(
		http.StatusNotFound,
		"PORTFOLIO_NOT_FOUND",
		"Portfolio tidak ditemukan",
		"",
	)

	ErrRoomNotFound = NewBaseError(
		http.StatusNotFound,
		"ROOM_NOT_FOUND",
		"Room tidak ditemukan",
		"",
	)

	ErrRoomAccessDenied = NewBaseError(
		http.StatusForbidden,
		"ROOM_ACCESS_DENIED",
		"Anda bukan anggota room ini",
		"",
	)

	ErrAppNotFound = NewBaseError(
		http.StatusNotFound,
		"APP_NOT_FOUND",
		"App tidak ditemukan",
		"",
	)

	ErrFileNotFound = NewBaseError(
		http.StatusNotFound,
		"FILE_NOT_FOUND",
		"File tidak ditemukan",
		"",
	)

	ErrFileTypeNotAllowed = NewBaseError(
		http.StatusBadRequest,
		"FILE_TYPE_NOT_ALLOWED",
		"Tipe file tidak didukung",
		"",
	)

	// AI proxy errors
	ErrAIProviderRejected = NewBaseError(
		http.StatusBadGateway,
		"AI_PROVIDER_REJECTED",
		"AI provider rejected the request",
		"",
	)

	ErrAIRateLimited = NewBaseError(
		http.StatusTooManyRequests,
		"AI_RATE_LIMITED",
		"AI provider rate limit exceeded",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Validation failed",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)
)

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
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
