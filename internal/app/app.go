package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/heartmarshall/subvocab-backend/internal/adapter/dictionary"
	"github.com/heartmarshall/subvocab-backend/internal/adapter/llm"
	"github.com/heartmarshall/subvocab-backend/internal/adapter/ytdlp"
	"github.com/heartmarshall/subvocab-backend/internal/config"
	"github.com/heartmarshall/subvocab-backend/internal/service/analysis"
	"github.com/heartmarshall/subvocab-backend/internal/service/subtitle"
	"github.com/heartmarshall/subvocab-backend/pkg/executor"
)

// Components are the wired services shared by the HTTP server and the CLI.
type Components struct {
	Tool      *ytdlp.Tool
	Subtitles *subtitle.Service
	Analysis  *analysis.Service
}

// Build wires the yt-dlp adapter, the model client and both services. A
// missing API key leaves Analysis without a model; it reports
// domain.ErrModelUnavailable on use.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	tool := ytdlp.NewTool(executor.New(), cfg.Subtitles, logger)

	client, err := llm.New(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("app: llm client: %w", err)
	}

	pacing := analysis.WithPacing(cfg.Analysis.Pacing)
	analysisSvc := analysis.NewService(logger, nil, pacing)
	if client != nil {
		annotator := analysis.NewAnnotator(logger, client,
			analysis.Level{Min: cfg.Vocabulary.UserLevelMin, Max: cfg.Vocabulary.UserLevelMax},
			analysis.NewWordFilter(cfg.WordAnalysis.MinLength, cfg.WordAnalysis.DifficultyThreshold, cfg.WordAnalysis.IgnoredWords),
			cfg.Vocabulary.Bands(),
		)
		if cfg.Dictionary.Enabled {
			annotator.WithPhonetics(dictionary.New(cfg.Dictionary, logger), cfg.Dictionary.Concurrency)
		}
		analysisSvc = analysis.NewService(logger, annotator, pacing)
	}

	return &Components{
		Tool:      tool,
		Subtitles: subtitle.NewService(logger, tool, cfg.Subtitles.ScratchRoot()),
		Analysis:  analysisSvc,
	}, nil
}

// Run is the application entry point. It loads configuration, wires the
// services and serves HTTP until ctx is cancelled or SIGINT/SIGTERM arrives.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("llm_provider", cfg.LLM.Provider),
		slog.Bool("llm_configured", cfg.LLM.Configured()),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := Build(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if version, ok := c.Tool.Version(ctx); ok {
		logger.Info("yt-dlp found", slog.String("version", version))
	} else {
		logger.Warn("yt-dlp is not installed, subtitle downloads will fail", slog.String("binary", cfg.Subtitles.Binary))
	}

	limiter := newRateLimiter(cfg.RateLimit)
	defer limiter.Stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      NewRouter(cfg, c, limiter, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("app: http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
