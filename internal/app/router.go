package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/subvocab-backend/internal/config"
	"github.com/heartmarshall/subvocab-backend/internal/transport/middleware"
	"github.com/heartmarshall/subvocab-backend/internal/transport/rest"
)

func newRateLimiter(cfg config.RateLimitConfig) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.CleanupInterval)
}

// NewRouter registers every route behind the middleware chain. Rate and body
// limits apply to /api routes only.
func NewRouter(cfg *config.Config, c *Components, limiter *middleware.RateLimiter, logger *slog.Logger) http.Handler {
	subtitles := rest.NewSubtitleHandler(c.Subtitles, c.Analysis, cfg.Subtitles, logger)
	tool := rest.NewToolHandler(c.Tool, logger)
	health := rest.NewHealthHandler(c.Tool, c.Analysis, BuildVersion())

	api := middleware.Chain(
		limiter.Limit(cfg.RateLimit.PerMinute),
	)
	jsonAPI := middleware.Chain(api, middleware.MaxBody(cfg.Subtitles.MaxFileSize))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	mux.Handle("POST /api/subtitles/download", jsonAPI(http.HandlerFunc(subtitles.Download)))
	mux.Handle("POST /api/subtitles/analyze", jsonAPI(http.HandlerFunc(subtitles.Analyze)))
	mux.Handle("POST /api/subtitles/analyze/file", api(http.HandlerFunc(subtitles.AnalyzeFile)))
	mux.Handle("GET /api/subtitles/tool", api(http.HandlerFunc(tool.Status)))
	mux.Handle("POST /api/subtitles/tool/refresh", api(http.HandlerFunc(tool.Refresh)))

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(mux)
}
