package summary

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		raw      string
		maxChars int
		want     string
	}{
		{name: "plain", raw: "Buy milk at store", maxChars: 280, want: "Buy milk at store"},
		{name: "collapses whitespace", raw: "  Buy\n milk \t at   store\n", maxChars: 280, want: "Buy milk at store"},
		{name: "strips double quotes", raw: `"Buy milk at store"`, maxChars: 280, want: "Buy milk at store"},
		{name: "strips nested quotes", raw: "\"'Buy milk'\"", maxChars: 280, want: "Buy milk"},
		{name: "strips typographic quotes", raw: "“Buy milk”", maxChars: 280, want: "Buy milk"},
		{name: "keeps inner quotes", raw: `Buy "oat" milk`, maxChars: 280, want: `Buy "oat" milk`},
		{name: "truncates", raw: "abcdefghij", maxChars: 5, want: "abcde"},
		{name: "truncates without trailing space", raw: "abcd efgh", maxChars: 5, want: "abcd"},
		{name: "truncates on rune boundary", raw: "日本語のテキスト", maxChars: 3, want: "日本語"},
		{name: "no limit", raw: strings.Repeat("a", 500), maxChars: 0, want: strings.Repeat("a", 500)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Normalize(tc.raw, tc.maxChars)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}

	for _, raw := range []string{"", "   \n\t", `""`, "` `"} {
		_, err := Normalize(raw, 280)
		assert.ErrorIs(t, err, ErrBadResponse, "raw %q", raw)
	}
}

func TestPrompt(t *testing.T) {
	t.Parallel()

	t.Run("default template", func(t *testing.T) {
		t.Parallel()
		p, err := NewPrompt("", 0)
		require.NoError(t, err)
		assert.Equal(t, DefaultMaxChars, p.MaxChars())

		out, err := p.Render("  Go to store and buy milk  ")
		require.NoError(t, err)
		assert.Contains(t, out, "Go to store and buy milk")
		assert.Contains(t, out, "280")
	})

	t.Run("empty text", func(t *testing.T) {
		t.Parallel()
		p, err := NewPrompt("", 100)
		require.NoError(t, err)
		_, err = p.Render("   ")
		assert.ErrorIs(t, err, ErrEmptyText)
	})

	t.Run("template from file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "prompt.tmpl")
		require.NoError(t, os.WriteFile(path, []byte("TL;DR ({{.MaxChars}}): {{.Text}}"), 0o600))

		p, err := NewPrompt(path, 50)
		require.NoError(t, err)
		out, err := p.Render("walk the dog")
		require.NoError(t, err)
		assert.Equal(t, "TL;DR (50): walk the dog", out)

		normalized, err := p.Normalize(strings.Repeat("x", 80))
		require.NoError(t, err)
		assert.Len(t, normalized, 50)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := NewPrompt(filepath.Join(t.TempDir(), "missing.tmpl"), 100)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("unparseable template", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bad.tmpl")
		require.NoError(t, os.WriteFile(path, []byte("{{.Text"), 0o600))
		_, err := NewPrompt(path, 100)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestWithTimeout(t *testing.T) {
	t.Parallel()

	t.Run("passes through result", func(t *testing.T) {
		t.Parallel()
		s := WithTimeout(Func(func(ctx context.Context, text string) (string, error) {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return "summary of " + text, nil
		}), time.Second)

		got, err := s.Summarize(context.Background(), "text")
		require.NoError(t, err)
		assert.Equal(t, "summary of text", got)
	})

	t.Run("passes through classified errors", func(t *testing.T) {
		t.Parallel()
		bad := BadResponse("test", 500, "boom")
		s := WithTimeout(Func(func(ctx context.Context, text string) (string, error) {
			return "", bad
		}), time.Second)

		_, err := s.Summarize(context.Background(), "text")
		assert.Same(t, bad, err)
		assert.ErrorIs(t, err, ErrBadResponse)
	})

	t.Run("abandons a call that ignores cancellation", func(t *testing.T) {
		t.Parallel()
		release := make(chan struct{})
		t.Cleanup(func() { close(release) })

		s := WithTimeout(Func(func(ctx context.Context, text string) (string, error) {
			<-release
			return "too late", nil
		}), 20*time.Millisecond)

		start := time.Now()
		_, err := s.Summarize(context.Background(), "text")

		assert.ErrorIs(t, err, ErrUnavailable)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("context error from provider is unavailable", func(t *testing.T) {
		t.Parallel()
		s := WithTimeout(Func(func(ctx context.Context, text string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		}), 10*time.Millisecond)

		_, err := s.Summarize(context.Background(), "text")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("caller cancellation", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		s := WithTimeout(Func(func(ctx context.Context, text string) (string, error) {
			<-ctx.Done()
			return "", errors.New("cancelled upstream")
		}), time.Minute)

		_, err := s.Summarize(ctx, "text")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("non-positive timeout uses default", func(t *testing.T) {
		t.Parallel()
		s := WithTimeout(Func(func(ctx context.Context, text string) (string, error) {
			deadline, ok := ctx.Deadline()
			require.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(DefaultTimeout), deadline, time.Second)
			return "ok", nil
		}), 0)

		_, err := s.Summarize(context.Background(), "text")
		assert.NoError(t, err)
	})
}

func TestProviderError(t *testing.T) {
	t.Parallel()

	err := BadResponse("gemini", 429, "quota exceeded")
	assert.ErrorIs(t, err, ErrBadResponse)
	assert.Equal(t, "gemini summarizer failed with status 429: invalid response from summarizer: quota exceeded", err.Error())

	var pErr *ProviderError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, 429, pErr.StatusCode)

	unavailable := Unavailable("openai", context.DeadlineExceeded)
	assert.ErrorIs(t, unavailable, ErrUnavailable)
	assert.NotErrorIs(t, unavailable, ErrBadResponse)
	assert.Contains(t, unavailable.Error(), "openai summarizer failed")
}
