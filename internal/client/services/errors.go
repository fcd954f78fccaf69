package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/lostfound/internal/client/api"
)

var (
	// ErrBusy is returned when a backend call is started while another one
	// is still outstanding.
	ErrBusy = errors.New("another request is still in progress")

	ErrNotAuthenticated     = errors.New("not signed in")
	ErrAlreadyAuthenticated = errors.New("already signed in, log out first")
)

const (
	msgUnexpectedResponse = "Unexpected response from server"
	msgTransport          = "Unable to reach the server, please try again."
)

// ValidationError is a client-side check that failed before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// AuthError is a rejection by the backend. Message is safe to show to the user.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }
func (e *AuthError) Unwrap() error { return e.Err }

// TransportError means the backend could not be reached.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return msgTransport }
func (e *TransportError) Unwrap() error { return e.Err }

// classify turns an api error into the user-facing error kind, preferring the
// backend's own message over fallback.
func classify(err error, fallback string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, api.ErrUnavailable):
		return &TransportError{Err: err}
	}
	if msg := api.Message(err); msg != "" {
		return &AuthError{Message: msg, Err: err}
	}
	return &AuthError{Message: fallback, Err: err}
}
