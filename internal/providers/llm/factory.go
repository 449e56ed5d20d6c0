package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/companion/internal/config"
	"github.com/sandevgo/companion/internal/core"
	"github.com/sandevgo/companion/pkg/log"
)

// NewProvider creates the appropriate AIProvider based on configuration.
func NewProvider(ctx context.Context, cfg *config.AppConfig) (core.AIProvider, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.LLMProvider).
		Str("model", cfg.Model).
		Msg("starting llm provider")

	switch cfg.LLMProvider {
	case "openai":
		return NewOpenAI(config.NewOpenAIConfig(ctx).APIKey, cfg.Model), nil
	case "openrouter":
		return NewOpenRouter(config.NewOpenRouterConfig(ctx).APIKey, cfg.Model), nil
	case "custom":
		c := config.NewCustomConfig(ctx)
		return NewCustomOpenAI(c.BaseURL, c.APIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMProvider)
	}
}
