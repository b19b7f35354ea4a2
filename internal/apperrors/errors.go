package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates an operation was attempted against an entity whose
// lifecycle state does not allow it (e.g. recording a movement on a closed session).
var ErrInvalidState = errors.New("invalid state for operation")

// ErrConflict indicates the operation violates a uniqueness or singleton
// invariant (e.g. opening a second session on a register). The caller should
// re-fetch current state and decide.
var ErrConflict = errors.New("conflicting operation")

// ErrBusinessRule indicates an operation that is individually valid but
// violates a domain rule (e.g. voiding a session that already has movements).
var ErrBusinessRule = errors.New("business rule violated")

// ErrTransientStorage indicates a retryable storage failure (lock wait
// timeout, deadlock, serialization failure). The core performs no automatic
// retry; backoff policy is left to the caller.
var ErrTransientStorage = errors.New("transient storage error")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the authenticated user may not perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level error with an HTTP-ish status code and a
// human-readable message. Repositories use it to report storage failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
