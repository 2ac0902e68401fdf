package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/tasksum-api/internal/summary"
)

// MockSummarizer implements summary.Summarizer for testing
type MockSummarizer struct {
	// SummarizeFn allows test cases to mock the Summarize behavior
	SummarizeFn func(ctx context.Context, text string) (string, error)

	// Default response values
	Summary string
	Err     error

	mu    sync.Mutex
	texts []string
}

var _ summary.Summarizer = (*MockSummarizer)(nil)

// NewMockSummarizerWithSummary creates a MockSummarizer that always returns s.
func NewMockSummarizerWithSummary(s string) *MockSummarizer {
	return &MockSummarizer{Summary: s}
}

// NewMockSummarizerWithError creates a MockSummarizer that always fails with err.
func NewMockSummarizerWithError(err error) *MockSummarizer {
	return &MockSummarizer{Err: err}
}

// Summarize implements the summary.Summarizer interface
func (m *MockSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	m.texts = append(m.texts, text)
	m.mu.Unlock()

	if m.SummarizeFn != nil {
		return m.SummarizeFn(ctx, text)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Summary, nil
}

// CallCount returns how many times Summarize was called.
func (m *MockSummarizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.texts)
}

// Texts returns the inputs of every Summarize call in order.
func (m *MockSummarizer) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.texts...)
}
