package neptunesign

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// Request extraction errors
	ErrMissingRequestField = errors.New("missing required request field")
	ErrMissingHost         = errors.New("unable to resolve host for signing")
	ErrBodyTooLarge        = errors.New("request body exceeds the configured signing limit")

	// Signing errors
	ErrSigningFailed = errors.New("request signing failed")
)

// NewMissingFieldError reports a native request that lacks a field the
// signing pipeline cannot proceed without.
func NewMissingFieldError(field string) error {
	return fmt.Errorf("%w: %s must not be empty", ErrMissingRequestField, field)
}

// NewMissingHostError reports a request whose host could not be resolved
// from its headers, its URI authority, or a bound target host.
func NewMissingHostError(uri string) error {
	return fmt.Errorf("%w: no host header, URI authority, or bound target host in %q", ErrMissingHost, uri)
}

func newSigningError(cause error) error {
	return fmt.Errorf("%w: %w", ErrSigningFailed, cause)
}

// IsConfigurationError returns true if the error represents a problem
// with how the signer was constructed rather than with a request.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}

// IsSigningError returns true if the error was produced by a failed
// SignRequest call.
func IsSigningError(err error) bool {
	return errors.Is(err, ErrSigningFailed)
}

// IsRequestError returns true if the error stems from the native request
// itself, meaning a retry without fixing the request cannot succeed.
func IsRequestError(err error) bool {
	return errors.Is(err, ErrMissingRequestField) ||
		errors.Is(err, ErrMissingHost) ||
		errors.Is(err, ErrBodyTooLarge)
}
