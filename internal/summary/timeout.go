package summary

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultTimeout bounds a summarizer call when no timeout is configured.
const DefaultTimeout = 10 * time.Second

type timeoutSummarizer struct {
	next    Summarizer
	timeout time.Duration
}

// WithTimeout bounds every call to next by timeout. When the deadline passes
// the call is abandoned and ErrUnavailable is returned, even if next does not
// honour context cancellation. A non-positive timeout uses DefaultTimeout.
func WithTimeout(next Summarizer, timeout time.Duration) Summarizer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &timeoutSummarizer{next: next, timeout: timeout}
}

type result struct {
	summary string
	err     error
}

func (t *timeoutSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	// Buffered so an abandoned call can still deliver and exit.
	done := make(chan result, 1)
	go func() {
		s, err := t.next.Summarize(ctx, text)
		done <- result{summary: s, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil && !isClassified(r.err) && (IsContextError(r.err) || ctx.Err() != nil) {
			return "", fmt.Errorf("%w: %v", ErrUnavailable, r.err)
		}
		return r.summary, r.err
	case <-ctx.Done():
		return "", fmt.Errorf("%w: no response within %s: %v", ErrUnavailable, t.timeout, ctx.Err())
	}
}

// isClassified reports whether err already carries one of the package sentinels.
func isClassified(err error) bool {
	for _, sentinel := range []error{ErrUnavailable, ErrBadResponse, ErrInvalidConfig, ErrEmptyText} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
