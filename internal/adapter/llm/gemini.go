package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/heartmarshall/subvocab-backend/internal/config"
)

// Gemini talks to the Gemini API.
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
	log         *slog.Logger
}

// NewGemini creates a Gemini API client.
func NewGemini(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (*Gemini, error) {
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
	if base := providerBaseURL(cfg); base != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: base}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &Gemini{
		client:      client,
		model:       providerModel(cfg, defaultGeminiModel),
		temperature: cfg.Temperature,
		maxTokens:   int32(cfg.MaxTokens),
		log:         logger.With("adapter", "gemini"),
	}, nil
}

// Complete sends req with the system instruction as SystemInstruction.
func (c *Gemini) Complete(ctx context.Context, req Request) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		Temperature:       genai.Ptr(c.temperature),
		MaxOutputTokens:   c.maxTokens,
	})
	if err != nil {
		c.log.ErrorContext(ctx, "generate content failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
