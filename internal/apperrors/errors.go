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

// ErrInvalidTransition indicates a journal entry lifecycle operation was
// attempted from a status that forbids it.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrRetryExhausted indicates a retried remote submission gave up after its
// attempt ceiling. It is distinct from the underlying conflict error.
var ErrRetryExhausted = errors.New("retry attempts exhausted")

// InsufficientStockError is returned when a sale requests more units than the
// product has in stock. It carries both quantities so callers can produce a
// precise message.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: available %d, requested %d", e.Available, e.Requested)
}

// RemoteError wraps a failure from a remote service boundary. StatusCode is
// zero for transport-level failures (timeout, connection refused).
type RemoteError struct {
	Service    string
	StatusCode int
	Err        error
}

func (e *RemoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service call failed: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("%s service returned status %d", e.Service, e.StatusCode)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
