// Package taxerr defines stable error codes for all taxatlas failure modes.
package taxerr

import (
	"errors"
	"fmt"
)

// Code represents a stable error code for a failure mode
type Code string

const (
	// ValidationFailed indicates a missing or invalid record field
	ValidationFailed Code = "VALIDATION_FAILED"
	// StorageFailed indicates a dataset file could not be read or written
	StorageFailed Code = "STORAGE_FAILED"
	// ParseFailed indicates a malformed CSV row or JSON document
	ParseFailed Code = "PARSE_FAILED"
	// BuildFailed indicates the dataset build produced no usable records
	BuildFailed Code = "BUILD_FAILED"
	// AuthFailed indicates a missing or mismatched write token
	AuthFailed Code = "AUTH_FAILED"
)

// Error represents a taxatlas error with a code, message, and optional field context
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	cause   error  // Underlying error (not exported to JSON)
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s (field %q)", msg, e.Field)
	}
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, msg, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// New creates an error with the given code and message
func New(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// Validation creates a ValidationFailed error for a specific field
func Validation(field, message string) *Error {
	return &Error{Code: ValidationFailed, Message: message, Field: field}
}

// Storage creates a StorageFailed error wrapping cause
func Storage(message string, cause error) *Error {
	return &Error{Code: StorageFailed, Message: message, cause: cause}
}

// Parse creates a ParseFailed error wrapping cause
func Parse(message string, cause error) *Error {
	return &Error{Code: ParseFailed, Message: message, cause: cause}
}

// Build creates a BuildFailed error
func Build(message string, cause error) *Error {
	return &Error{Code: BuildFailed, Message: message, cause: cause}
}

// Auth creates an AuthFailed error. The message must never echo the
// expected token.
func Auth(message string) *Error {
	return &Error{Code: AuthFailed, Message: message}
}

// CodeOf returns the code carried by err, or empty if err is not a taxatlas error
func CodeOf(err error) Code {
	var te *Error
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

// Is reports whether err carries the given code
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
