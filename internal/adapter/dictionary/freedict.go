// Package dictionary looks up pronunciations in the FreeDictionary API.
package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/subvocab-backend/internal/config"
)

const retryDelay = 500 * time.Millisecond

// Client fetches entries from the FreeDictionary API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a Client from cfg.
func New(cfg config.DictionaryConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "freedict"),
	}
}

type apiEntry struct {
	Word      string        `json:"word"`
	Phonetic  string        `json:"phonetic"`
	Phonetics []apiPhonetic `json:"phonetics"`
}

type apiPhonetic struct {
	Text  string `json:"text"`
	Audio string `json:"audio"`
}

// Phonetic returns the first IPA transcription listed for word. It returns
// "", nil when the word is unknown (HTTP 404) or has no transcription.
func (c *Client) Phonetic(ctx context.Context, word string) (string, error) {
	reqURL := c.baseURL + "/" + url.PathEscape(strings.ToLower(strings.TrimSpace(word)))

	resp, err := c.doWithRetry(ctx, reqURL, word)
	if err != nil {
		return "", fmt.Errorf("freedict: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("freedict: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("freedict: read body: %w", err)
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return "", fmt.Errorf("freedict: decode json: %w", err)
	}

	return firstPhonetic(entries), nil
}

func firstPhonetic(entries []apiEntry) string {
	for _, e := range entries {
		if t := strings.TrimSpace(e.Phonetic); t != "" {
			return t
		}
		for _, p := range e.Phonetics {
			if t := strings.TrimSpace(p.Text); t != "" {
				return t
			}
		}
	}
	return ""
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (c *Client) doWithRetry(ctx context.Context, reqURL, word string) (*http.Response, error) {
	resp, err := c.do(ctx, reqURL)

	shouldRetry := err != nil || resp.StatusCode >= 500
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
		resp.Body.Close()
	}
	c.log.WarnContext(ctx, "freedict retry", slog.String("word", word), slog.String("reason", reason))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(retryDelay):
	}

	return c.do(ctx, reqURL)
}

func (c *Client) do(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.httpClient.Do(req)
}
