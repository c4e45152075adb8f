package greeting

import "context"

// Provider defines the interface for greeting-text generators.
// Implementations include the DeepSeek API and local Ollama models.
type Provider interface {
	// Generate produces greeting text for the requested occasion. A
	// non-nil error is a retryable collaborator failure, distinguishable
	// from an in-flight call (tracked by the caller) and from success.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name returns the provider name (e.g., "deepseek", "ollama").
	Name() string

	// Close releases any resources held by the provider.
	Close() error
}
