package services

import (
	"errors"
	"log"
)

// Error kinds. Handlers map them to HTTP status codes with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInternal        = errors.New("internal error")
)

// Error carries a message that is safe to show to the client.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

func validationError(message string) error { return newError(ErrValidation, message) }

func notFound(message string) error { return newError(ErrNotFound, message) }

// internalError logs the storage failure and hides it from the caller.
func internalError(op string, err error) error {
	log.Printf("[%s] %v", op, err)
	return newError(ErrInternal, "Internal server error")
}

// Message returns the client-facing text of err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}
