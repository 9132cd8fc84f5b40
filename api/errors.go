package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"transferadmin/form"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	// ErrIncompleteLogin means the backend accepted the credentials but did not
	// return both a token and a user.
	ErrIncompleteLogin = errors.New("login response is missing token or user")
)

const genericMessage = "Something went wrong. Please try again."

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// TransportError wraps a request that never produced a usable response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Message turns any error from this package or from form validation into a
// message fit for an alert or inline panel.
func Message(err error) string {
	var (
		statusErr    *StatusError
		transportErr *TransportError
		validation   *form.ValidationError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &validation):
		return "Please fill in: " + strings.Join(validation.Missing, ", ")
	case errors.Is(err, form.ErrImageTooLarge):
		return "The image is too large."
	case errors.Is(err, form.ErrImageType):
		return "The image must be a JPEG, PNG, WebP or GIF file."
	case errors.Is(err, ErrIncompleteLogin):
		return "Login failed: the server response was incomplete."
	case errors.As(err, &statusErr):
		if statusErr.Message != "" {
			return statusErr.Message
		}
		return genericMessage
	case errors.As(err, &transportErr):
		return "Could not reach the server. Check your connection and try again."
	default:
		return genericMessage
	}
}
