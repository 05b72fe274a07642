// Package apperr provides structured error types for the animebooth pipeline.
//
// Every failure in the upload → transform → composite → persist sequence maps
// to one of a small set of machine-readable codes, so handlers can answer with
// the right HTTP status and the client can tell a rejected upload apart from a
// provider outage.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the failure taxonomy.
const (
	// CodeValidation covers malformed or missing input: no image part,
	// undecodable bytes, unsupported type.
	CodeValidation Code = "VALIDATION"

	// CodeProvider covers the external generation service: transport failure,
	// rejected request, authentication failure, or zero usable results.
	CodeProvider Code = "PROVIDER"

	// CodeCompositing covers the overlay step: unreadable image metadata or a
	// missing logo asset.
	CodeCompositing Code = "COMPOSITING"

	// CodeStorage covers the backing store: unreachable or failed writes/reads.
	CodeStorage Code = "STORAGE"

	// CodeNotFound is returned when a requested artifact does not exist.
	CodeNotFound Code = "NOT_FOUND"

	// Camera error subkinds, surfaced by the capture controller.
	CodeCameraDenied          Code = "CAMERA_DENIED"
	CodeCameraNotFound        Code = "CAMERA_NOT_FOUND"
	CodeCameraBusy            Code = "CAMERA_BUSY"
	CodeCameraOverconstrained Code = "CAMERA_OVERCONSTRAINED"

	// CodeInternal is the fallback for unexpected failures.
	CodeInternal Code = "INTERNAL"
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

// Is reports whether err carries the given error code anywhere in its chain.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns CodeInternal if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps an error to the HTTP status the API surface should answer with.
// Provider outages are 502 so they are distinguishable from local failures.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeProvider:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
