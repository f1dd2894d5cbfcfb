// Package models contains shared data models used across the jobtrail codebase.
package models

import "context"

// ExtractionProvider is the interface every language-model integration implements.
// Never call a specific provider directly; inject this interface.
type ExtractionProvider interface {
	// Complete sends one structured-output request and returns the raw model text.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	// Name returns the provider identifier (e.g., "openai", "gemini").
	Name() string
	// Model returns the model the provider sends requests to.
	Model() string
}

// CompletionRequest is the input to a single structured-output call.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	MaxTokens    int

	// SchemaName and Schema describe the JSON object the model must return.
	// Providers with native structured outputs pass Schema through as a
	// generation-time constraint; others embed it in the prompt.
	SchemaName string
	Schema     map[string]any
}
