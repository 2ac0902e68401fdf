// Package openai implements summary.Summarizer with a chat completion
// against the OpenAI API or any OpenAI-compatible endpoint set through the
// summarizer base URL.
package openai
