package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/VictorTPhan/ella-app/internal/store"
)

// NewProvider builds the configured backend and wraps it:
// caller → retry (only if MaxAttempts > 1) → logging → backend.
// The "mock" provider is the caller's to supply (see content.DemoProvider);
// here it yields an empty MockProvider.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error
	switch cfg.Provider {
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return Wrap(base, cfg, eventRepo, log), nil
}

// Wrap applies the logging and (optional) retry middleware to base.
func Wrap(base Provider, cfg Config, eventRepo store.EventRepo, log *zap.Logger) Provider {
	p := WithLogging(base, cfg.Provider, eventRepo, log)
	if cfg.Retry.MaxAttempts > 1 {
		p = WithRetry(p, cfg.Retry)
	}
	return p
}
