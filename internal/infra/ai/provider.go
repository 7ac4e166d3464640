// Package ai proxies chat requests to hosted completion backends and keeps a
// bounded per-user conversation history in memory.
package ai

import (
	"log/slog"
	"net/http"
	"time"

	"inkwell/config"
	"inkwell/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultRequestTimeout = 60 * time.Second

// ProviderParams holds dependencies for the AIProvider, injected by Fx
type ProviderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewProvider selects the configured AI backend.
func NewProvider(params ProviderParams) (service.AIProvider, error) {
	cfg := params.Config.AI
	if cfg == nil {
		return nil, errors.New("ai configuration is required")
	}

	client := &http.Client{Timeout: defaultRequestTimeout}

	switch cfg.Provider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, errors.New("gemini api key is required")
		}

		return NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiModel, client, params.Logger), nil

	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, errors.New("openai api key is required")
		}

		return NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel, client, params.Logger), nil

	default:
		return nil, errors.Errorf("unknown ai provider: %s", cfg.Provider)
	}
}
