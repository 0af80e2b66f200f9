package llm

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"induk-agents/internal/config"
)

var ErrEmptyResponse = errors.New("llm empty response")

// NewClient elige el proveedor segun LLM_PROVIDER.
func NewClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (LLMClient, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMBaseURL, cfg.LLMTimeout, logger)
	case config.ProviderOpenAI:
		return NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout, logger), nil
	case config.ProviderAnthropic:
		return NewAnthropicClient(cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMBaseURL, cfg.LLMTimeout, logger), nil
	default:
		return nil, fmt.Errorf("llm provider %q: %w", cfg.LLMProvider, config.ErrUnsupportedProvider)
	}
}
