// Package common defines shared constants and sentinel errors used across
// the bereal client layers. Callers should use errors.Is / errors.As to match
// these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork reports a transport failure: the backend could not be
	// reached, the connection dropped or the request timed out.
	ErrNetwork = errors.New("network error")

	// ErrBackend reports a failure answered by the backend itself
	// (authentication, validation, server-side errors).
	ErrBackend = errors.New("backend error")

	// ErrInput reports invalid user input detected before any remote call.
	ErrInput = errors.New("invalid input")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotLoggedIn  = errors.New("not logged in")

	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
)

// BackendError carries the code and message returned by the backend.
// It matches ErrBackend, and ErrUnauthorized when the code denotes an
// invalid or missing session.
type BackendError struct {
	Status  int
	Code    int
	Message string
}

func (e *BackendError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
	}
	return e.Message
}

func (e *BackendError) Is(target error) bool {
	switch target {
	case ErrBackend:
		return true
	case ErrUnauthorized:
		return e.Code == CodeInvalidSessionToken || e.Status == 401 || e.Status == 403
	}
	return false
}

// InputError builds an ErrInput-wrapping error with a user-facing message.
func InputError(msg string) error {
	return fmt.Errorf("%w: %s", ErrInput, msg)
}

// UserMessage returns the text to show the user for err: the backend's own
// message when there is one, otherwise the error string.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var be *BackendError
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	return err.Error()
}
