package greeting

import (
	"fmt"

	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/config"
)

// NewProvider creates a Provider based on the configuration.
func NewProvider(cfg *config.ProviderConfig) (Provider, error) {
	model := ModelSettings{
		Name:        cfg.Model.Name,
		MaxTokens:   cfg.Model.MaxTokens,
		Temperature: cfg.Model.Temperature,
	}

	switch cfg.Type {
	case config.ProviderDeepSeek:
		return NewDeepSeekProvider(cfg.DeepSeek, model)

	case config.ProviderOllama:
		return NewOllamaProvider(cfg.Ollama, model)

	default:
		return nil, fmt.Errorf("unknown provider type: %s (supported: %s, %s)",
			cfg.Type, config.ProviderDeepSeek, config.ProviderOllama)
	}
}
