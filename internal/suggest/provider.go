package suggest

import (
	"context"
	"fmt"
	"strings"
)

// NewBackend picks a backend by provider name. An empty API key disables AI
// features and returns a nil backend.
func NewBackend(ctx context.Context, provider, apiKey, model, baseURL string) (Backend, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, nil
	}
	switch strings.ToLower(provider) {
	case "", "gemini":
		g, err := NewGeminiBackend(ctx, apiKey, model)
		if err != nil {
			return nil, err
		}
		return g, nil
	case "openai":
		return NewOpenAIBackend(apiKey, model, baseURL), nil
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", provider)
	}
}
