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

// ErrConflict indicates an operation incompatible with the current state of
// the resource (e.g. closing an already closed exercise).
var ErrConflict = errors.New("operation conflicts with resource state")

// ErrPeriodClosed indicates an attempt to post into an accounting period
// whose exercise has been closed.
var ErrPeriodClosed = errors.New("accounting period is closed")

// ErrReference indicates that a foreign-domain id embedded in a record does
// not resolve to an existing, valid entity.
var ErrReference = errors.New("invalid cross-domain reference")

// ErrStorage indicates a failure of the underlying persistent store. Callers
// may treat it as transient and retry; every other kind is semantic.
var ErrStorage = errors.New("storage error")

// AppError wraps a lower-level error with an operation-local message while
// staying matchable with errors.Is against the sentinel kinds above.
type AppError struct {
	Kind    error
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func (e *AppError) Is(target error) bool { return errors.Is(e.Kind, target) }

// NewStorageError wraps a driver/database failure as an ErrStorage.
func NewStorageError(message string, err error) error {
	return &AppError{Kind: ErrStorage, Message: message, Err: err}
}

// NewNotFoundError builds an ErrNotFound with a resource-specific message.
func NewNotFoundError(message string) error {
	return &AppError{Kind: ErrNotFound, Message: message}
}
