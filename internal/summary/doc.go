// Package summary defines the boundary between the application and the
// external text-summarization service. It holds the Summarizer contract,
// the failure taxonomy callers map onto HTTP statuses, the timeout bound
// applied to every call, and the prompt and output handling shared by the
// provider implementations in internal/platform.
package summary
