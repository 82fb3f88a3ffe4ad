package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists,
// or that the operation conflicts with the current state of the resource.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the authenticated user is not permitted to perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates that the request lacks valid authentication.
var ErrUnauthorized = errors.New("unauthorized")

// AppError wraps an underlying error with an HTTP-ish status code and a
// message safe to surface to clients. Infrastructure failures (render,
// persistence, mail) are wrapped with code 500 so no partial state leaks.
type AppError struct {
	Code    int
	Message string
	Err     error
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

// NewAppError creates a new AppError wrapping the given error.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
