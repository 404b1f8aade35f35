// Package errors provides structured error types for gqlcanvas.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-facing messages that match what the canvas shows verbatim
//
// # Error Codes
//
// The three request errors are terminal for one submission and never produce
// a partial canvas:
//   - INVALID_JSON: the request body is not JSON
//   - MISSING_QUERY: the "query" field is absent, empty or not a string
//   - INVALID_GRAPHQL: the query text violates the GraphQL grammar
//
// The remaining codes cover the outer surfaces (API, store, renderer).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingQuery, `Missing or invalid "query" field`)
//	if errors.Is(err, errors.ErrCodeMissingQuery) {
//	    // Surface errors.UserMessage(err) and keep the previous canvas
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidGraphQL, parseErr, "Invalid GraphQL query: %s", msg)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Request errors
	ErrCodeInvalidJSON    Code = "INVALID_JSON"
	ErrCodeMissingQuery   Code = "MISSING_QUERY"
	ErrCodeInvalidGraphQL Code = "INVALID_GRAPHQL"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPatch  Code = "INVALID_PATCH"
	ErrCodeInvalidID     Code = "INVALID_ID"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeNodeNotFound Code = "NODE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// IsRequestError reports whether err is one of the three terminal request
// errors (invalid JSON, missing query, invalid GraphQL).
func IsRequestError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidJSON, ErrCodeMissingQuery, ErrCodeInvalidGraphQL:
		return true
	}
	return false
}
