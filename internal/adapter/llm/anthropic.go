package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/subvocab-backend/internal/config"
)

// Anthropic talks to the Anthropic Messages API.
type Anthropic struct {
	client      anthropic.Client
	model       string
	temperature float64
	maxTokens   int64
	log         *slog.Logger
}

// NewAnthropic creates a Messages API client.
func NewAnthropic(cfg config.LLMConfig, logger *slog.Logger) *Anthropic {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		option.WithMaxRetries(0),
	}
	if base := providerBaseURL(cfg); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}

	return &Anthropic{
		client:      anthropic.NewClient(opts...),
		model:       providerModel(cfg, defaultAnthropicModel),
		temperature: float64(cfg.Temperature),
		maxTokens:   int64(cfg.MaxTokens),
		log:         logger.With("adapter", "anthropic"),
	}
}

// Complete sends req with the system instruction as the system prompt.
func (c *Anthropic) Complete(ctx context.Context, req Request) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   c.maxTokens,
		Temperature: anthropic.Float(c.temperature),
		System:      []anthropic.TextBlockParam{{Text: req.System}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		c.log.ErrorContext(ctx, "messages api call failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("anthropic: messages: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		sb.WriteString(block.Text)
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
