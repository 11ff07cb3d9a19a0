// Package apperror defines the error kinds surfaced at the request boundary.
package apperror

import (
	"errors"
	"net/http"
)

// Kinds. Compare with errors.Is.
var (
	ErrInvalidRequestBody = errors.New("invalid request body")
	ErrNotFound           = errors.New("not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrBadRequest         = errors.New("bad request")
)

// Error pairs a kind with the message shown to the caller.
type Error struct {
	Kind    error
	Message string
}

func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// StatusOf maps err to the HTTP status code it should produce.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidRequestBody),
		errors.Is(err, ErrInvalidArgument),
		errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// MessageOf returns the caller-facing message carried by err. Errors that are
// not *Error get a generic message so driver details never leak.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		if appErr.Message != "" {
			return appErr.Message
		}
		return appErr.Kind.Error()
	}
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound.Error()
	}
	return "something went wrong"
}
