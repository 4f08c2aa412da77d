package summarize

import (
	"context"
	"fmt"

	"daily-digest/config"
)

// NewGenerator returns the client for cfg.Provider.
func NewGenerator(ctx context.Context, cfg *config.Config) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model, "")
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.APIKey, cfg.Model, ""), nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", config.ErrInvalid, cfg.Provider)
	}
}
