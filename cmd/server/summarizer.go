package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/tasksum-api/internal/config"
	"github.com/phrazzld/tasksum-api/internal/platform/gemini"
	"github.com/phrazzld/tasksum-api/internal/platform/openai"
	"github.com/phrazzld/tasksum-api/internal/summary"
)

// newSummarizer builds the configured provider behind the call timeout.
func newSummarizer(ctx context.Context, cfg config.SummarizerConfig, logger *slog.Logger) (summary.Summarizer, error) {
	prompt, err := summary.NewPrompt(cfg.PromptTemplatePath, cfg.MaxSummaryChars)
	if err != nil {
		return nil, err
	}

	var provider summary.Summarizer
	switch cfg.Provider {
	case gemini.ProviderName:
		provider, err = gemini.NewSummarizer(ctx, cfg, prompt, nil, logger)
	case openai.ProviderName:
		provider, err = openai.NewSummarizer(cfg, prompt, nil, logger)
	default:
		return nil, fmt.Errorf("%w: unknown summarizer provider %q", summary.ErrInvalidConfig, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	logger.Info("Summarizer initialized",
		"provider", cfg.Provider,
		"model", cfg.ModelName,
		"timeout", timeout.String())
	return summary.WithTimeout(provider, timeout), nil
}
