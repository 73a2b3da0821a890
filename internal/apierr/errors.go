// Package apierr classifies failures of the external transcription and
// label-generation providers. Provider adapters map HTTP status codes onto
// the sentinels below; callers check them with errors.Is.
package apierr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrRateLimit indicates the provider throttled the request (retryable).
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrTimeout indicates the request timed out (retryable).
	ErrTimeout = errors.New("request timeout")

	// ErrServer indicates a 5xx response (retryable).
	ErrServer = errors.New("provider server error")

	// ErrAuthFailed indicates the credential was rejected.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrBadRequest indicates any other 4xx response.
	ErrBadRequest = errors.New("bad request")

	// ErrMalformedResponse indicates the provider answered with data that
	// could not be interpreted.
	ErrMalformedResponse = errors.New("malformed provider response")
)

// CollaboratorError wraps a failure of one of the two external calls.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// Wrap tags err as a CollaboratorError for op. Context deadlines are
// classified as ErrTimeout. Already wrapped errors are returned as is.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	var ce *CollaboratorError
	if errors.As(err, &ce) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, ErrTimeout) {
		err = fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	return &CollaboratorError{Op: op, Err: err}
}

// FromStatus attaches the sentinel matching an HTTP status code to err.
// Unknown or non-error codes leave err unchanged.
func FromStatus(status int, err error) error {
	if err == nil {
		return nil
	}

	var sentinel error
	switch {
	case status == http.StatusTooManyRequests:
		sentinel = ErrRateLimit
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		sentinel = ErrAuthFailed
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		sentinel = ErrTimeout
	case status >= 500:
		sentinel = ErrServer
	case status >= 400:
		sentinel = ErrBadRequest
	default:
		return err
	}

	return fmt.Errorf("%w: %w", sentinel, err)
}

// Malformed wraps a parse failure of provider output.
func Malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}

// IsRetryable reports whether err is a transient provider failure.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimit) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrServer)
}
