// Package errors provides structured error types for daipendency.
//
// Every failure surfaced by library loading carries a machine-readable
// [Code] so callers can tell apart the cases that matter for extractor
// discovery:
//   - MISSING_MANIFEST: the candidate language's manifest is absent (skip it)
//   - MALFORMED_MANIFEST: the manifest exists but cannot be parsed (fatal)
//   - DISCOVERY_NOT_FOUND: no registered language matched
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnsupportedLanguage, "unknown language %q", name)
//	if errors.Is(err, errors.ErrCodeUnsupportedLanguage) {
//	    // Handle bad user input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformedManifest, origErr, "failed to parse %s", path)
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
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidPackage Code = "INVALID_PACKAGE"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	// Library loading errors
	ErrCodeUnsupportedLanguage Code = "UNSUPPORTED_LANGUAGE"
	ErrCodeMissingManifest     Code = "MISSING_MANIFEST"
	ErrCodeMalformedManifest   Code = "MALFORMED_MANIFEST"
	ErrCodeDiscoveryNotFound   Code = "DISCOVERY_NOT_FOUND"
	ErrCodeExtraction          Code = "EXTRACTION_FAILED"
	ErrCodeDependency          Code = "DEPENDENCY_NOT_RESOLVED"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodePackageNotFound Code = "PACKAGE_NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"

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
// Only the outermost *Error in the chain is inspected, so a wrapped
// MISSING_MANIFEST inside an EXTRACTION_FAILED is reported as the latter.
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

// UserMessage returns a single-line, user-friendly message for the error.
// For *Error types, the code prefix is dropped and the cause (if any) is
// appended. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	return err.Error()
}
