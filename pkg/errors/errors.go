package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrAlreadyExists  ErrorCode = "ALREADY_EXISTS"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Archive errors
	ErrArchiveOpen       ErrorCode = "ARCHIVE_OPEN"
	ErrArchiveRead       ErrorCode = "ARCHIVE_READ"
	ErrArchiveWrite      ErrorCode = "ARCHIVE_WRITE"
	ErrArchiveClosed     ErrorCode = "ARCHIVE_CLOSED"
	ErrUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	ErrChecksumMismatch  ErrorCode = "CHECKSUM_MISMATCH"
	ErrFieldNotFound     ErrorCode = "FIELD_NOT_FOUND"

	// Boundary marshalling errors
	ErrAllocation ErrorCode = "ALLOCATION"

	// MetaInfo errors
	ErrMetaInfoKeyExists ErrorCode = "METAINFO_KEY_EXISTS"
	ErrMetaInfoType      ErrorCode = "METAINFO_TYPE"
)

// GridboxError represents a structured error with code and details
type GridboxError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *GridboxError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *GridboxError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *GridboxError) Is(target error) bool {
	var targetErr *GridboxError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new GridboxError with the given code and message
func New(code ErrorCode, message string) *GridboxError {
	return &GridboxError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new GridboxError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *GridboxError {
	return &GridboxError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a GridboxError
func Wrap(err error, code ErrorCode, message string) *GridboxError {
	if err == nil {
		return nil
	}
	return &GridboxError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *GridboxError {
	if err == nil {
		return nil
	}
	return &GridboxError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *GridboxError) WithDetail(key string, value interface{}) *GridboxError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *GridboxError) WithDetails(details map[string]interface{}) *GridboxError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var gbErr *GridboxError
	if errors.As(err, &gbErr) {
		return gbErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a GridboxError
func GetErrorCode(err error) ErrorCode {
	var gbErr *GridboxError
	if errors.As(err, &gbErr) {
		return gbErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a GridboxError
func GetErrorDetails(err error) map[string]interface{} {
	var gbErr *GridboxError
	if errors.As(err, &gbErr) {
		return gbErr.Details
	}
	return nil
}
