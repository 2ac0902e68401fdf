package summary

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"
)

//go:embed prompt.tmpl
var defaultPromptTemplate string

// DefaultMaxChars is the summary length limit used when none is configured.
const DefaultMaxChars = 280

// Prompt renders the instruction sent to the summarization model.
type Prompt struct {
	tmpl     *template.Template
	maxChars int
}

type promptData struct {
	Text     string
	MaxChars int
}

// NewPrompt parses the prompt template at path, or the embedded default
// when path is empty. maxChars is made available to the template and
// bounds the normalized output.
func NewPrompt(path string, maxChars int) (*Prompt, error) {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	source := defaultPromptTemplate
	name := "default"
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
				ErrInvalidConfig, path, err)
		}
		source = string(content)
		name = path
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", ErrInvalidConfig, err)
	}

	return &Prompt{tmpl: tmpl, maxChars: maxChars}, nil
}

// MaxChars returns the configured summary length limit.
func (p *Prompt) MaxChars() int {
	return p.maxChars
}

// Render returns the prompt for text.
func (p *Prompt) Render(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, promptData{Text: text, MaxChars: p.maxChars}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// Normalize turns raw model output into a stored summary using the
// prompt's length limit.
func (p *Prompt) Normalize(raw string) (string, error) {
	return Normalize(raw, p.maxChars)
}
