package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors returned by the reference client.
var (
	// ErrNotFound indicates the upstream resource does not exist.
	ErrNotFound = errors.New("not found upstream")

	// ErrRateLimited indicates the upstream rate limit has been exceeded.
	ErrRateLimited = errors.New("upstream rate limit exceeded")

	// ErrAPIError indicates a general upstream error.
	ErrAPIError = errors.New("upstream API error")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with upstream")

	// ErrInvalidResponse indicates an unexpected upstream response body.
	ErrInvalidResponse = errors.New("invalid response from upstream")

	// ErrCircuitOpen indicates calls to an endpoint are being short-circuited
	// after repeated failures.
	ErrCircuitOpen = errors.New("upstream temporarily unavailable")

	// ErrNoRequest is returned by Do when given a nil request.
	ErrNoRequest = errors.New("no request to send")
)

// APIError represents a non-success HTTP status from an upstream endpoint.
type APIError struct {
	StatusCode int
	Endpoint   Endpoint
	URL        string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s (url: %s)", e.Endpoint, e.StatusCode, e.Message, e.URL)
}

// Unwrap lets errors.Is match the sentinel for the status class.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return ErrAPIError
	}
}

// IsNotFound returns true if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsUnavailable returns true for failures that say nothing about the request
// itself: network errors, 5xx responses and an open circuit.
func IsUnavailable(err error) bool {
	if errors.Is(err, ErrNetworkError) || errors.Is(err, ErrCircuitOpen) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return false
}
