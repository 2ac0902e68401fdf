package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/tasksum-api/internal/config"
	"github.com/phrazzld/tasksum-api/internal/platform/logger"
	"github.com/phrazzld/tasksum-api/internal/summary"
	"google.golang.org/genai"
)

// ProviderName identifies this summarizer in errors and logs.
const ProviderName = "gemini"

// temperature keeps summaries close to the source text.
const temperature float32 = 0.2

// Summarizer implements summary.Summarizer using the Gemini API.
type Summarizer struct {
	client *genai.Client
	model  string
	prompt *summary.Prompt
	logger *slog.Logger
}

// Ensure Summarizer implements summary.Summarizer
var _ summary.Summarizer = (*Summarizer)(nil)

// NewSummarizer creates a Gemini summarizer from cfg. httpClient may be nil
// to use the SDK default; cfg.BaseURL overrides the API endpoint.
func NewSummarizer(
	ctx context.Context,
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
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", summary.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", summary.ErrInvalidConfig)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: withTrailingSlash(cfg.BaseURL)}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", summary.ErrInvalidConfig, err)
	}

	return &Summarizer{
		client: client,
		model:  cfg.ModelName,
		prompt: prompt,
		logger: log.With(slog.String("component", "gemini_summarizer")),
	}, nil
}

// Summarize makes a single GenerateContent call and normalizes the reply.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	prompt, err := s.prompt.Render(text)
	if err != nil {
		return "", err
	}

	log.DebugContext(ctx, "calling Gemini API",
		slog.String("model", s.model),
		slog.Int("prompt_length", len(prompt)))

	temp := temperature
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt),
		&genai.GenerateContentConfig{Temperature: &temp})
	if err != nil {
		mapped := mapError(ctx, err)
		log.WarnContext(ctx, "Gemini API call failed", slog.String("error", mapped.Error()))
		return "", mapped
	}

	raw, err := extractText(resp)
	if err != nil {
		log.WarnContext(ctx, "Gemini API returned no usable text", slog.String("error", err.Error()))
		return "", err
	}

	out, err := s.prompt.Normalize(raw)
	if err != nil {
		return "", summary.BadResponse(ProviderName, http.StatusOK, err.Error())
	}

	log.DebugContext(ctx, "Gemini API call succeeded", slog.Int("summary_length", len(out)))
	return out, nil
}

// extractText returns the text of the first candidate, or an ErrBadResponse
// when the reply is empty or was blocked.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", summary.BadResponse(ProviderName, http.StatusOK, "nil response")
	}
	if len(resp.Candidates) == 0 {
		reason := "no candidates"
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			reason = "prompt blocked: " + string(resp.PromptFeedback.BlockReason)
		}
		return "", summary.BadResponse(ProviderName, http.StatusOK, reason)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", summary.BadResponse(ProviderName, http.StatusOK, "content blocked by safety filters")
	}
	if candidate.Content == nil {
		return "", summary.BadResponse(ProviderName, http.StatusOK, "empty content in response")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}

// mapError classifies an SDK error into the summary failure taxonomy.
func mapError(ctx context.Context, err error) error {
	if summary.IsContextError(err) || ctx.Err() != nil {
		return summary.Unavailable(ProviderName, err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return summary.BadResponse(ProviderName, apiErr.Code, apiErr.Message)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return summary.BadResponse(ProviderName, apiErrPtr.Code, apiErrPtr.Message)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return summary.BadResponse(ProviderName, 0, "undecodable response body")
	}

	return summary.Unavailable(ProviderName, err)
}

func withTrailingSlash(u string) string {
	if strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}
