package config

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/subvocab-backend/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}

	if c.Analysis.Pacing < 0 {
		return fmt.Errorf("analysis.pacing must be >= 0 (got %v)", c.Analysis.Pacing)
	}

	if err := c.Vocabulary.validate(); err != nil {
		return fmt.Errorf("vocabulary: %w", err)
	}

	if c.WordAnalysis.MinLength < 0 {
		return fmt.Errorf("word_analysis.min_length must be >= 0 (got %d)", c.WordAnalysis.MinLength)
	}

	if err := c.Subtitles.validate(); err != nil {
		return fmt.Errorf("subtitles: %w", err)
	}

	if c.Dictionary.Enabled {
		if strings.TrimSpace(c.Dictionary.BaseURL) == "" {
			return fmt.Errorf("dictionary.base_url must not be empty when enabled")
		}
		if c.Dictionary.Timeout <= 0 || c.Dictionary.Concurrency <= 0 {
			return fmt.Errorf("dictionary.timeout and dictionary.concurrency must be > 0")
		}
	}

	if c.RateLimit.PerMinute < 0 {
		return fmt.Errorf("rate_limit.per_minute must be >= 0 (got %d)", c.RateLimit.PerMinute)
	}
	if c.RateLimit.PerMinute > 0 && c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval must be > 0 (got %v)", c.RateLimit.CleanupInterval)
	}

	return nil
}

func (l *LLMConfig) validate() error {
	l.Provider = strings.ToLower(strings.TrimSpace(l.Provider))
	switch l.Provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini:
	default:
		return fmt.Errorf("provider must be one of openai, anthropic, gemini (got %q)", l.Provider)
	}
	if l.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", l.Timeout)
	}
	if l.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", l.MaxTokens)
	}
	if l.Temperature < 0 || l.Temperature > 2 {
		return fmt.Errorf("temperature must be in 0..2 (got %v)", l.Temperature)
	}
	return nil
}

func (v *VocabularyConfig) validate() error {
	if v.UserLevelMin < 1 || v.UserLevelMax > 6 || v.UserLevelMin > v.UserLevelMax {
		return fmt.Errorf("user level range must satisfy 1 <= min <= max <= 6 (got %d..%d)", v.UserLevelMin, v.UserLevelMax)
	}

	buckets := map[string][]string{"easy": v.Easy, "medium": v.Medium, "hard": v.Hard}
	for name, levels := range buckets {
		if len(levels) == 0 {
			return fmt.Errorf("%s must list at least one CEFR level", name)
		}
		for _, lvl := range levels {
			if !domain.IsCEFRLevel(lvl) {
				return fmt.Errorf("%s: unknown CEFR level %q", name, lvl)
			}
		}
	}
	return nil
}

func (s *SubtitlesConfig) validate() error {
	if strings.TrimSpace(s.Binary) == "" {
		return fmt.Errorf("binary must not be empty")
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", s.Timeout)
	}
	if s.MaxOutput <= 0 {
		return fmt.Errorf("max_output must be > 0 (got %d)", s.MaxOutput)
	}
	if s.MaxFileSize <= 0 {
		return fmt.Errorf("max_file_size must be > 0 (got %d)", s.MaxFileSize)
	}
	for _, f := range s.SupportedFormats {
		if !strings.HasPrefix(strings.TrimSpace(f), ".") {
			return fmt.Errorf("supported_formats: %q must start with a dot", f)
		}
	}
	return nil
}

// Bands returns the configured CEFR buckets.
func (v VocabularyConfig) Bands() domain.DifficultyBands {
	return domain.DifficultyBands{Easy: v.Easy, Medium: v.Medium, Hard: v.Hard}
}
