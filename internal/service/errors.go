package service

import (
	"errors"
	"fmt"

	"github.com/carson-networks/expense-tracker/internal/storage/docstore"
)

// Error kinds. Match with errors.Is(err, service.ErrConflict).
var (
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("unavailable")
	ErrInternal     = errors.New("internal error")
)

// Error pairs an error kind with the message shown to API clients. Cause keeps the underlying
// storage or library error for logs.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Is(target error) bool { return errors.Is(e.Kind, target) }
func (e *Error) Unwrap() error        { return e.Cause }

// Message returns the client-facing message carried by err, if any.
func Message(err error) string {
	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Message
	}
	return ""
}

func validationError(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

// fromStorage classifies a storage failure at the operation boundary.
func fromStorage(err error, notFoundMessage string) error {
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		return &Error{Kind: ErrNotFound, Message: notFoundMessage, Cause: err}
	case errors.Is(err, docstore.ErrDuplicateKey):
		return &Error{Kind: ErrConflict, Message: "Record already exists", Cause: err}
	case errors.Is(err, docstore.ErrUnavailable):
		return &Error{Kind: ErrUnavailable, Message: "Service temporarily unavailable", Cause: err}
	default:
		return &Error{Kind: ErrInternal, Message: "Something went wrong!", Cause: err}
	}
}
