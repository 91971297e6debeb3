package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotConfigured means a required credential is absent or still a placeholder.
	ErrNotConfigured = errors.New("service not configured")
	// ErrUpstream covers timeouts and non-2xx answers from the LLM or job API.
	ErrUpstream = errors.New("upstream service error")
	// ErrMalformedResponse is returned when an upstream body cannot be decoded,
	// even after brace extraction.
	ErrMalformedResponse = errors.New("malformed upstream response")

	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// HTTPError wraps an HTTP status code so retry logic can inspect it.
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}
