package summary

import (
	"context"
	"errors"
	"fmt"
)

// Common errors returned by summarizers
var (
	// ErrUnavailable is returned when the summarizer could not be reached in
	// time: the deadline expired, the call was cancelled, or the transport failed.
	ErrUnavailable = errors.New("summarizer unavailable")

	// ErrBadResponse is returned when the summarizer answered with a
	// non-success status or with no usable text.
	ErrBadResponse = errors.New("invalid response from summarizer")

	// ErrInvalidConfig is returned when a summarizer cannot be constructed
	// from the supplied configuration.
	ErrInvalidConfig = errors.New("invalid summarizer configuration")

	// ErrEmptyText is returned when there is nothing to summarize.
	ErrEmptyText = errors.New("text to summarize cannot be empty")
)

// ProviderError records which provider failed and the HTTP status it
// returned, if any. It unwraps to one of the sentinels above.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s summarizer failed with status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s summarizer failed: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Unavailable wraps cause as an ErrUnavailable failure of provider.
func Unavailable(provider string, cause error) error {
	return &ProviderError{Provider: provider, Err: fmt.Errorf("%w: %v", ErrUnavailable, cause)}
}

// BadResponse wraps a non-success status or unusable output of provider.
func BadResponse(provider string, status int, detail string) error {
	return &ProviderError{Provider: provider, StatusCode: status, Err: fmt.Errorf("%w: %s", ErrBadResponse, detail)}
}

// IsContextError reports whether err stems from a cancelled or expired context.
func IsContextError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
