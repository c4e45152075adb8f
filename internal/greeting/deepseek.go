package greeting

import (
	"context"
	"fmt"

	"github.com/go-deepseek/deepseek"
	"github.com/go-deepseek/deepseek/request"

	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/config"
)

// DeepSeekProvider implements Provider for the DeepSeek API.
type DeepSeekProvider struct {
	client deepseek.Client
	model  ModelSettings
}

// ModelSettings mirrors config.ModelSettings without importing it in every
// call site signature.
type ModelSettings struct {
	Name        string
	MaxTokens   int
	Temperature float64
}

// NewDeepSeekProvider creates a DeepSeek-backed greeting generator.
func NewDeepSeekProvider(cfg config.DeepSeekConfig, model ModelSettings) (*DeepSeekProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("DeepSeek API key is required")
	}

	client, err := deepseek.NewClient(cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create DeepSeek client: %w", err)
	}

	return &DeepSeekProvider{client: client, model: model}, nil
}

// Generate asks DeepSeek for the greeting text.
func (p *DeepSeekProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	messages := []*request.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildPrompt(req)},
	}

	var temp *float32
	if p.model.Temperature > 0 {
		t := float32(p.model.Temperature)
		temp = &t
	}

	chatReq := &request.ChatCompletionsRequest{
		Model:       p.model.Name,
		Messages:    messages,
		MaxTokens:   p.model.MaxTokens,
		Temperature: temp,
		Stream:      false,
	}

	resp, err := p.client.CallChatCompletionsChat(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("DeepSeek API request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("DeepSeek returned no choices")
	}

	return &Response{
		Text: resp.Choices[0].Message.Content,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}

// Name returns the provider name.
func (p *DeepSeekProvider) Name() string {
	return "deepseek"
}

// Close releases resources (no-op for the DeepSeek client).
func (p *DeepSeekProvider) Close() error {
	return nil
}
