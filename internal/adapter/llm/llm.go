// Package llm adapts chat-completion providers to a single Complete call.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/subvocab-backend/internal/config"
)

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("llm: empty response")

// Request is a single-turn chat: a system instruction and one user message.
type Request struct {
	System string
	Prompt string
}

// Client sends one chat request and returns the raw reply text.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Default models used when the configured model is the openai-provider default.
const (
	defaultAnthropicModel = "claude-haiku-4-5"
	defaultGeminiModel    = "gemini-2.5-flash"
)

// New builds the client selected by cfg.Provider. It returns nil, nil when no
// API key is configured.
func New(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (Client, error) {
	if !cfg.Configured() {
		logger.Warn("llm api key is not set, text analysis is disabled")
		return nil, nil
	}

	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		return NewOpenAI(cfg, logger), nil
	case config.ProviderAnthropic:
		return NewAnthropic(cfg, logger), nil
	case config.ProviderGemini:
		c, err := NewGemini(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}

// providerModel returns cfg.Model unless it is the openai-provider default.
func providerModel(cfg config.LLMConfig, fallback string) string {
	if cfg.Model == "" || cfg.Model == config.DefaultLLMModel {
		return fallback
	}
	return cfg.Model
}

// providerBaseURL returns cfg.BaseURL unless it is the openai-provider default.
func providerBaseURL(cfg config.LLMConfig) string {
	if cfg.BaseURL == config.DefaultLLMBaseURL {
		return ""
	}
	return cfg.BaseURL
}
