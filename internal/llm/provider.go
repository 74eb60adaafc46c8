package llm

import (
	"context"
	"fmt"

	"menu-planner/internal/config"
)

// NewTextGenerator builds the generator selected by cfg.LLM.Provider. The
// returned close function must be called when done.
func NewTextGenerator(ctx context.Context, cfg *config.Config) (TextGenerator, func() error, error) {
	if err := cfg.ValidateLLM(); err != nil {
		return nil, nil, fmt.Errorf("llm config: %w", err)
	}
	switch cfg.LLM.Provider {
	case config.ProviderGroq:
		return NewGroqClient(cfg), func() error { return nil }, nil
	default:
		gemini, err := NewGeminiClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return gemini, gemini.Close, nil
	}
}
