package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Log          LogConfig          `yaml:"log"`
	CORS         CORSConfig         `yaml:"cors"`
	RateLimit    RateLimitConfig    `yaml:"rate_limit"`
	LLM          LLMConfig          `yaml:"llm"`
	Analysis     AnalysisConfig     `yaml:"analysis"`
	Vocabulary   VocabularyConfig   `yaml:"vocabulary"`
	WordAnalysis WordAnalysisConfig `yaml:"word_analysis"`
	Subtitles    SubtitlesConfig    `yaml:"subtitles"`
	Dictionary   DictionaryConfig   `yaml:"dictionary"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings. WriteTimeout must cover a full
// analysis run of fifty paced model calls.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30m"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP request limits for the API routes.
type RateLimitConfig struct {
	PerMinute       int           `yaml:"per_minute"       env:"RATE_LIMIT_PER_MINUTE"       env-default:"60"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"1m"`
}

// LLM providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Defaults of LLMConfig that only make sense for the openai provider.
const (
	DefaultLLMBaseURL = "https://api.deepseek.com/v1"
	DefaultLLMModel   = "deepseek-chat"
)

// LLMConfig holds chat model settings. Provider "openai" covers every
// OpenAI-compatible endpoint, DeepSeek included.
type LLMConfig struct {
	Provider    string        `yaml:"provider"    env:"LLM_PROVIDER"    env-default:"openai"`
	BaseURL     string        `yaml:"base_url"    env:"API_BASE_URL"    env-default:"https://api.deepseek.com/v1"`
	APIKey      string        `yaml:"api_key"     env:"API_KEY"`
	Model       string        `yaml:"model"       env:"API_MODEL"       env-default:"deepseek-chat"`
	Endpoint    string        `yaml:"endpoint"    env:"API_ENDPOINT"    env-default:"/chat/completions"`
	Temperature float32       `yaml:"temperature" env:"LLM_TEMPERATURE" env-default:"0.1"`
	MaxTokens   int           `yaml:"max_tokens"  env:"LLM_MAX_TOKENS"  env-default:"1000"`
	Timeout     time.Duration `yaml:"timeout"     env:"LLM_TIMEOUT"     env-default:"60s"`
}

// Configured reports whether a model can be called at all.
func (c LLMConfig) Configured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// AnalysisConfig holds text analysis pipeline settings.
type AnalysisConfig struct {
	Pacing time.Duration `yaml:"pacing" env:"ANALYSIS_PACING" env-default:"200ms"`
}

// VocabularyConfig describes the learner: CEFR buckets and the difficulty
// range (1..6) the model should target.
type VocabularyConfig struct {
	Easy         []string `yaml:"easy"           env:"DIFFICULTY_EASY"   env-default:"A1,A2,B1" env-separator:","`
	Medium       []string `yaml:"medium"         env:"DIFFICULTY_MEDIUM" env-default:"B2,C1"    env-separator:","`
	Hard         []string `yaml:"hard"           env:"DIFFICULTY_HARD"   env-default:"C2"       env-separator:","`
	UserLevelMin int      `yaml:"user_level_min" env:"USER_LEVEL_MIN"    env-default:"3"`
	UserLevelMax int      `yaml:"user_level_max" env:"USER_LEVEL_MAX"    env-default:"4"`
}

// WordAnalysisConfig holds the post-filter applied to annotated words.
type WordAnalysisConfig struct {
	MinLength           int      `yaml:"min_length"           env:"WORD_MIN_LENGTH"      env-default:"3"`
	DifficultyThreshold int      `yaml:"difficulty_threshold" env:"DIFFICULTY_THRESHOLD" env-default:"3"`
	IgnoredWords        []string `yaml:"ignored_words"        env:"IGNORED_WORDS"        env-default:"the,and,that,this,with,from,they,have,will" env-separator:","`
}

// DictionaryConfig controls the optional pronunciation backfill for words the
// model returned without a transcription.
type DictionaryConfig struct {
	Enabled     bool          `yaml:"enabled"     env:"DICTIONARY_ENABLED"     env-default:"false"`
	BaseURL     string        `yaml:"base_url"    env:"DICTIONARY_BASE_URL"    env-default:"https://api.dictionaryapi.dev/api/v2/entries/en"`
	Timeout     time.Duration `yaml:"timeout"     env:"DICTIONARY_TIMEOUT"     env-default:"10s"`
	Concurrency int           `yaml:"concurrency" env:"DICTIONARY_CONCURRENCY" env-default:"4"`
}

// SubtitlesConfig holds yt-dlp and upload settings.
type SubtitlesConfig struct {
	Binary             string        `yaml:"binary"               env:"YTDLP_BINARY"               env-default:"yt-dlp"`
	TempDir            string        `yaml:"temp_dir"             env:"SUBTITLES_TEMP_DIR"`
	Timeout            time.Duration `yaml:"timeout"              env:"YTDLP_TIMEOUT"              env-default:"60s"`
	MaxOutput          int           `yaml:"max_output"           env:"YTDLP_MAX_OUTPUT"           env-default:"2097152"`
	CookiesFromBrowser string        `yaml:"cookies_from_browser" env:"YTDLP_COOKIES_FROM_BROWSER"`
	SupportedFormats   []string      `yaml:"supported_formats"    env:"SUPPORTED_FORMATS"          env-default:".srt,.vtt,.txt" env-separator:","`
	MaxFileSize        int64         `yaml:"max_file_size"        env:"MAX_FILE_SIZE"              env-default:"5242880"`
}

// ScratchRoot returns the directory per-request scratch folders live under.
func (c SubtitlesConfig) ScratchRoot() string {
	if c.TempDir != "" {
		return c.TempDir
	}
	return filepath.Join(os.TempDir(), "subvocab")
}

// IsSupportedFormat reports whether the file name has an accepted extension.
func (c SubtitlesConfig) IsSupportedFormat(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext != "" && slices.ContainsFunc(c.SupportedFormats, func(f string) bool {
		return strings.EqualFold(strings.TrimSpace(f), ext)
	})
}
