package crossref

import (
	"errors"
	"fmt"
)

// Common errors returned by the citation client.
var (
	// ErrNotFound indicates the DOI is not registered.
	ErrNotFound = errors.New("DOI not found")

	// ErrRateLimited indicates the registry rate limit has been exceeded.
	ErrRateLimited = errors.New("DOI registry rate limit exceeded")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with DOI registry")

	// ErrInvalidResponse indicates an unexpected registry response.
	ErrInvalidResponse = errors.New("invalid response from DOI registry")
)

// APIError represents an error response from the registry.
type APIError struct {
	StatusCode int
	Message    string
	DOI        string
}

func (e *APIError) Error() string {
	if e.DOI != "" {
		return fmt.Sprintf("DOI registry error (status %d): %s (doi: %s)", e.StatusCode, e.Message, e.DOI)
	}
	return fmt.Sprintf("DOI registry error (status %d): %s", e.StatusCode, e.Message)
}

// IsNotFound returns true if the error indicates an unregistered DOI.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}
