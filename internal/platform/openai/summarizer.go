package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/phrazzld/tasksum-api/internal/config"
	"github.com/phrazzld/tasksum-api/internal/platform/logger"
	"github.com/phrazzld/tasksum-api/internal/summary"
)

// ProviderName identifies this summarizer in errors and logs.
const ProviderName = "openai"

const temperature float32 = 0.2

// Summarizer implements summary.Summarizer using the chat completions API.
type Summarizer struct {
	client *goopenai.Client
	model  string
	prompt *summary.Prompt
	logger *slog.Logger
}

// Ensure Summarizer implements summary.Summarizer
var _ summary.Summarizer = (*Summarizer)(nil)

// NewSummarizer creates an OpenAI summarizer from cfg. httpClient may be nil
// to use the library default.
func NewSummarizer(
	cfg config.SummarizerConfig,
	prompt *summary.Prompt,
	httpClient *http.Client,
	log *slog.Logger,
) (*Summarizer, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if prompt == nil {
		return nil, fmt.Errorf("%w: prompt cannot be nil", summary.ErrInvalidConfig)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", summary.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", summary.ErrInvalidConfig)
	}

	clientConfig := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	if httpClient != nil {
		clientConfig.HTTPClient = httpClient
	}

	return &Summarizer{
		client: goopenai.NewClientWithConfig(clientConfig),
		model:  cfg.ModelName,
		prompt: prompt,
		logger: log.With(slog.String("component", "openai_summarizer")),
	}, nil
}

// Summarize makes a single chat completion call and normalizes the reply.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	prompt, err := s.prompt.Render(text)
	if err != nil {
		return "", err
	}

	log.DebugContext(ctx, "calling chat completion",
		slog.String("model", s.model),
		slog.Int("prompt_length", len(prompt)))

	resp, err := s.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: s.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
	})
	if err != nil {
		mapped := mapError(ctx, err)
		log.WarnContext(ctx, "chat completion failed", slog.String("error", mapped.Error()))
		return "", mapped
	}

	if len(resp.Choices) == 0 {
		return "", summary.BadResponse(ProviderName, http.StatusOK, "no choices in response")
	}
	choice := resp.Choices[0]
	if choice.FinishReason == goopenai.FinishReasonContentFilter {
		return "", summary.BadResponse(ProviderName, http.StatusOK, "content blocked by content filter")
	}

	out, err := s.prompt.Normalize(choice.Message.Content)
	if err != nil {
		return "", summary.BadResponse(ProviderName, http.StatusOK, err.Error())
	}

	log.DebugContext(ctx, "chat completion succeeded", slog.Int("summary_length", len(out)))
	return out, nil
}

// mapError classifies a go-openai error into the summary failure taxonomy.
func mapError(ctx context.Context, err error) error {
	if summary.IsContextError(err) || ctx.Err() != nil {
		return summary.Unavailable(ProviderName, err)
	}

	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return summary.BadResponse(ProviderName, apiErr.HTTPStatusCode, apiErr.Message)
	}

	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return summary.BadResponse(ProviderName, reqErr.HTTPStatusCode, "request rejected")
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return summary.BadResponse(ProviderName, 0, "undecodable response body")
	}

	return summary.Unavailable(ProviderName, err)
}
