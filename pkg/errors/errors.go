// Package errors provides structured error types for bannerforge.
//
// Every failure the pipeline surfaces carries a machine-readable code so the
// CLI can tell a broken template apart from a filesystem problem:
//   - CONFIGURATION_ERROR: structurally invalid template or input layout
//   - FILESYSTEM_ERROR: read/write/copy/mkdir failures
//   - INVALID_CONFIG: malformed bannerforge.toml
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConfiguration, "no html document in %s", dir)
//	if errors.Is(err, errors.ErrCodeConfiguration) {
//	    // fix the template and rerun
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFilesystem, origErr, "copy %s", src)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// ErrCodeConfiguration marks an input layout or template that cannot be
	// processed. Retrying with the same input reproduces the failure.
	ErrCodeConfiguration Code = "CONFIGURATION_ERROR"

	// ErrCodeFilesystem marks an underlying filesystem failure.
	ErrCodeFilesystem Code = "FILESYSTEM_ERROR"

	// ErrCodeInvalidConfig marks a config file that failed to decode.
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// ErrCodeInternal marks an unexpected internal error.
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Configuration is shorthand for New(ErrCodeConfiguration, ...).
func Configuration(format string, args ...any) *Error {
	return New(ErrCodeConfiguration, format, args...)
}

// Filesystem wraps cause as a FILESYSTEM_ERROR.
// A nil cause yields a nil error so callers can wrap unconditionally.
func Filesystem(cause error, format string, args ...any) error {
	if cause == nil {
		return nil
	}
	return Wrap(ErrCodeFilesystem, cause, format, args...)
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
