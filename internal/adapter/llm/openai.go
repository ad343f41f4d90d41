package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/heartmarshall/subvocab-backend/internal/config"
)

const defaultChatPath = "/chat/completions"

// OpenAI talks to any OpenAI-compatible chat completions endpoint.
type OpenAI struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	log         *slog.Logger
}

// NewOpenAI creates an OpenAI-compatible client. A non-default cfg.Endpoint
// replaces the /chat/completions path on every request.
func NewOpenAI(cfg config.LLMConfig, logger *slog.Logger) *OpenAI {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	var transport http.RoundTripper = http.DefaultTransport
	if ep := normalizeEndpoint(cfg.Endpoint); ep != defaultChatPath {
		transport = &endpointTransport{base: transport, endpoint: ep}
	}
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout, Transport: transport}

	model := cfg.Model
	if model == "" {
		model = config.DefaultLLMModel
	}

	return &OpenAI{
		client:      openai.NewClientWithConfig(oc),
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		log:         logger.With("adapter", "openai"),
	}
}

// Complete sends req as a system + user message pair.
func (c *OpenAI) Complete(ctx context.Context, req Request) (string, error) {
	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		c.log.ErrorContext(ctx, "chat completion failed",
			slog.Duration("duration", time.Since(start)), slog.String("error", err.Error()))
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}

	c.log.DebugContext(ctx, "chat completion done",
		slog.Duration("duration", time.Since(start)),
		slog.Int("total_tokens", resp.Usage.TotalTokens))
	return resp.Choices[0].Message.Content, nil
}

// endpointTransport rewrites the chat completions path for providers that
// serve it elsewhere.
type endpointTransport struct {
	base     http.RoundTripper
	endpoint string
}

func (t *endpointTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if strings.HasSuffix(r.URL.Path, defaultChatPath) {
		r = r.Clone(r.Context())
		r.URL.Path = strings.TrimSuffix(r.URL.Path, defaultChatPath) + t.endpoint
		r.URL.RawPath = ""
	}
	return t.base.RoundTrip(r)
}

func normalizeEndpoint(ep string) string {
	ep = strings.TrimSpace(ep)
	if ep == "" {
		return defaultChatPath
	}
	if !strings.HasPrefix(ep, "/") {
		ep = "/" + ep
	}
	return ep
}
