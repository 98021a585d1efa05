// Package errors provides structured error types for the pedtools library.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI, and HTTP surface
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes map one-to-one onto the validation failures the data model can
// produce: structural pedigree defects, malformed arguments, unknown member
// labels, shape and count mismatches, and allele/frequency violations.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownMember, "unknown member: %s", label)
//	if errors.Is(err, errors.ErrCodeUnknownMember) {
//	    // Handle lookup failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMutationModel, origErr, "marker %s", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Pedigree structure errors
	ErrCodeStructural      Code = "STRUCTURAL_ERROR"
	ErrCodeInvalidArgument Code = "INVALID_ARGUMENT"
	ErrCodeUnknownMember   Code = "UNKNOWN_MEMBER"
	ErrCodeCountMismatch   Code = "COUNT_MISMATCH"

	// Marker data errors
	ErrCodeInvalidAllele   Code = "INVALID_ALLELE"
	ErrCodeAlleleFrequency Code = "ALLELE_FREQUENCY"
	ErrCodeNameFormat      Code = "NAME_FORMAT"
	ErrCodeShapeMismatch   Code = "SHAPE_MISMATCH"
	ErrCodeMutationModel   Code = "MUTATION_MODEL"

	// I/O and surface errors
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeInternal      Code = "INTERNAL_ERROR"
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
