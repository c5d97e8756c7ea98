// Package errors provides structured error types for the Lumen renderer.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the pipeline
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages that name the failing stage
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Each fatal pipeline stage has its own code, so a failure report always
// identifies where the pipeline stopped:
//
//	err := errors.New(errors.ErrCodeLoad, "scene file %s is unreadable", path)
//	if errors.Is(err, errors.ErrCodeLoad) {
//	    // Handle load failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeEncode, origErr, "writing %s", outputPath)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the pipeline stages and the command surface.
const (
	// Command-surface errors, surfaced before any stage runs.
	ErrCodeArgument Code = "INVALID_ARGUMENT"

	// Stage-specific fatal errors.
	ErrCodeLoad       Code = "LOAD_ERROR"       // scene file unreadable or malformed
	ErrCodeAsset      Code = "ASSET_ERROR"      // asset unreadable or undecodable
	ErrCodeValidation Code = "VALIDATION_ERROR" // scene references an unknown asset
	ErrCodeSave       Code = "SAVE_ERROR"       // scene file write failure
	ErrCodeEncode     Code = "ENCODE_ERROR"     // output image write failure

	// Unexpected internal errors.
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
		return e.Message
	}
	return err.Error()
}
