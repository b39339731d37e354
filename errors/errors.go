// Package errors defines the structured error returned at the HTTP
// boundary.
//
// A HandlerError pairs a short header with a human message and an HTTP
// status. Authentication failures of every internal kind collapse to the
// same generic unauthorized value so clients cannot distinguish a wrong
// password from a missing account or an expired token. Internal faults
// carry their cause privately: the cause is logged server-side under a
// correlation log_id and only the log_id reaches the client.
package errors

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// HandlerError is the error shape rendered to clients.
type HandlerError struct {
	// Status is the HTTP status code. Never serialized.
	Status int `json:"-"`
	// Header is a short, stable, machine-friendly summary.
	Header string `json:"header"`
	// Message describes what went wrong or what to do next.
	Message string `json:"message"`
	// LogID correlates a server fault with its server-side log entry.
	// Set when the error carries an internal cause, absent otherwise.
	LogID *uuid.UUID `json:"log_id,omitempty"`

	cause error
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Header, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Header, e.Message)
}

// Unwrap returns the hidden cause.
func (e *HandlerError) Unwrap() error { return e.cause }

// Cause returns the hidden cause without unwrapping semantics.
func (e *HandlerError) Cause() error { return e.cause }

// WithCause attaches an internal cause and returns the receiver. The
// cause is never serialized; rendering assigns a LogID and logs it.
func (e *HandlerError) WithCause(cause error) *HandlerError {
	e.cause = cause
	return e
}

// New creates a HandlerError with status, header and message.
func New(status int, header, message string) *HandlerError {
	return &HandlerError{Status: status, Header: header, Message: message}
}

// Unauthorized is the single response for every authentication failure.
// Deliberately free of detail: parse errors, bad signatures, expired
// tokens and wrong passwords all look identical from outside.
func Unauthorized() *HandlerError {
	return New(
		http.StatusUnauthorized,
		"Unauthorized for resource",
		"You do not have permission to access this resource.",
	)
}

// NotFound creates a generic not-found error.
func NotFound(resource string) *HandlerError {
	return New(
		http.StatusNotFound,
		"Not found",
		fmt.Sprintf("The requested %s was not found.", resource),
	)
}

// Conflict creates a conflict error.
func Conflict(message string) *HandlerError {
	return New(http.StatusConflict, "Conflict", message)
}

// BadRequest creates an invalid-input error.
func BadRequest(message string) *HandlerError {
	return New(http.StatusBadRequest, "Invalid request", message)
}

// Internal wraps an unexpected fault. The cause stays server-side; the
// client sees only the opaque message and, once rendered, a log_id.
func Internal(cause error) *HandlerError {
	e := New(
		http.StatusInternalServerError,
		"Something went wrong",
		"If this issue persists, please contact an administrator.",
	)
	e.cause = cause
	return e
}
