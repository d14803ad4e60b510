package session

import (
	"errors"
	"fmt"
)

// Common error types for the session engine.
var (
	// ErrSessionNotFound indicates that no active session exists with the
	// given ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidTransition indicates that an operation is not valid in the
	// session's current state (e.g. saving before a prompt was answered).
	ErrInvalidTransition = errors.New("operation not valid in current session state")

	// ErrPhaseIncomplete indicates that a phase transition was requested
	// before the current phase reached its recommended count.
	ErrPhaseIncomplete = errors.New("phase has not reached its recommended count")

	// ErrSessionExited indicates that the session has already been exited
	// and can no longer accept operations.
	ErrSessionExited = errors.New("session has exited")
)

// SessionError wraps errors from the session engine with additional context.
// This allows consumers to differentiate between different types of engine
// errors using errors.As instead of string matching.
type SessionError struct {
	// Operation is the operation that failed (e.g. "begin", "save")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for SessionError.
func (e *SessionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *SessionError) Unwrap() error {
	return e.Err
}

// NewBeginError returns a new SessionError for the begin operation.
func NewBeginError(message string, err error) *SessionError {
	return &SessionError{Operation: "begin", Message: message, Err: err}
}

// NewSaveError returns a new SessionError for the save operation.
func NewSaveError(message string, err error) *SessionError {
	return &SessionError{Operation: "save", Message: message, Err: err}
}
