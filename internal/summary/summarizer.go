package summary

import "context"

// Summarizer converts a task description into a short summary.
// Implementations make exactly one attempt per call.
type Summarizer interface {
	// Summarize returns a summary of text. Errors match one of the
	// sentinels in errors.go under errors.Is.
	Summarize(ctx context.Context, text string) (string, error)
}

// Func adapts an ordinary function to the Summarizer interface.
type Func func(ctx context.Context, text string) (string, error)

// Summarize calls f(ctx, text).
func (f Func) Summarize(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}
