// Package gemini implements summary.Summarizer on top of the Google Gen AI
// SDK (google.golang.org/genai) using the Gemini API backend.
package gemini
