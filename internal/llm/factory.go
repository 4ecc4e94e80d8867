package llm

import (
	"context"
	"fmt"
)

// NewProvider builds the configured provider wrapped with retry and,
// when recorder is non-nil, call recording. Decorator order is
// caller, retry, recording, backend, so each retry attempt is recorded
// individually.
func NewProvider(ctx context.Context, cfg Config, recorder CallRecorder) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if recorder != nil {
		base = WithRecording(base, recorder)
	}
	return WithRetry(base, cfg.Retry), nil
}
