// Package errors provides structured error types for the tiermcp application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI, HTTP API, and MCP transport
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes fall into four classes:
//   - INVALID_INPUT: the supplied tier-list config is malformed
//   - TOO_MANY_ITEMS, CANVAS_TOO_TALL, UNSAFE_RESOURCE, INVALID_SCHEME:
//     client-safety rejections; caller-correctable, safe to echo back
//   - FETCH_FAILED, DECODE_FAILED: transient per-item resource failures;
//     the render continues with a fallback for the affected item
//   - INTERNAL_ERROR: unexpected faults; callers see an opaque message
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "duplicate tier id: %s", id)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFetchFailed, origErr, "fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// Client-safety rejections
	ErrCodeTooManyItems   Code = "TOO_MANY_ITEMS"
	ErrCodeCanvasTooTall  Code = "CANVAS_TOO_TALL"
	ErrCodeUnsafeResource Code = "UNSAFE_RESOURCE"
	ErrCodeInvalidScheme  Code = "INVALID_SCHEME"

	// Transient per-item resource failures
	ErrCodeFetchFailed  Code = "FETCH_FAILED"
	ErrCodeDecodeFailed Code = "DECODE_FAILED"

	// Internal errors
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
// Internal errors always map to an opaque message so no internal
// detail leaks to callers. For other errors, returns the error
// string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Code == ErrCodeInternal {
			return "internal rendering error"
		}
		return e.Message
	}
	return err.Error()
}

// IsClientSafety reports whether err is one of the client-safety
// rejections (resource ceilings and unsafe URL classifications).
// These abort the render and carry messages safe to echo to callers.
func IsClientSafety(err error) bool {
	switch GetCode(err) {
	case ErrCodeTooManyItems, ErrCodeCanvasTooTall, ErrCodeUnsafeResource, ErrCodeInvalidScheme:
		return true
	}
	return false
}

// IsTransient reports whether err is a per-item resource failure.
// Transient errors never abort a render; the affected item falls
// back to its text or placeholder form.
func IsTransient(err error) bool {
	switch GetCode(err) {
	case ErrCodeFetchFailed, ErrCodeDecodeFailed:
		return true
	}
	return false
}
