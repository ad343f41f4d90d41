// Package subtitle downloads YouTube captions through yt-dlp into a
// per-request scratch directory.
package subtitle

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/subvocab-backend/internal/adapter/ytdlp"
	"github.com/heartmarshall/subvocab-backend/internal/domain"
	"github.com/heartmarshall/subvocab-backend/pkg/ctxutil"
)

type subtitleTool interface {
	IsAvailable(ctx context.Context) bool
	Download(ctx context.Context, dir string, req ytdlp.Request) error
}

// Service orchestrates one subtitle download per call.
type Service struct {
	log         *slog.Logger
	tool        subtitleTool
	scratchRoot string
}

// NewService creates a subtitle service that keeps scratch directories
// under scratchRoot.
func NewService(log *slog.Logger, tool subtitleTool, scratchRoot string) *Service {
	return &Service{
		log:         log.With("service", "subtitle"),
		tool:        tool,
		scratchRoot: scratchRoot,
	}
}

// Fetch downloads the subtitles of in.URL and returns the first .srt file
// produced. The scratch directory is removed before Fetch returns.
func (s *Service) Fetch(ctx context.Context, in FetchInput) (*domain.Subtitle, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in.URL = strings.TrimSpace(in.URL)

	if !s.tool.IsAvailable(ctx) {
		return nil, domain.ErrToolMissing
	}

	jobID := uuid.New()
	ctx = ctxutil.WithJobID(ctx, jobID)
	dir := filepath.Join(s.scratchRoot, jobID.String())

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("subtitle: create scratch dir: %w", err)
	}
	defer s.cleanup(ctx, dir)

	s.log.InfoContext(ctx, "subtitle download started", append(ctxutil.LogAttrs(ctx),
		slog.String("url", in.URL),
		slog.String("language", in.Language),
		slog.Bool("auto_translate", in.AutoTranslate))...)

	err := s.tool.Download(ctx, dir, ytdlp.Request{
		URL:           in.URL,
		Language:      in.Language,
		AutoTranslate: in.AutoTranslate,
	})
	if err != nil {
		return nil, fmt.Errorf("subtitle: download: %w", err)
	}

	name, err := firstSRT(dir)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("subtitle: read %s: %w", name, err)
	}

	language := in.Language
	if language == "" {
		language = domain.LanguageAuto
	}

	s.log.InfoContext(ctx, "subtitle downloaded", append(ctxutil.LogAttrs(ctx),
		slog.String("file", name), slog.Int("bytes", len(content)))...)

	return &domain.Subtitle{
		Content:  string(content),
		Title:    strings.TrimSuffix(name, ".srt"),
		Language: language,
		Format:   domain.SubtitleFormat,
	}, nil
}

// firstSRT returns the name of the first .srt file in dir in name order.
func firstSRT(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("subtitle: read scratch dir: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".srt") {
			return e.Name(), nil
		}
	}
	return "", fmt.Errorf("subtitle: no .srt file produced: %w", domain.ErrNotFound)
}

func (s *Service) cleanup(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		s.log.ErrorContext(ctx, "scratch dir cleanup failed", append(ctxutil.LogAttrs(ctx),
			slog.String("dir", dir), slog.String("error", err.Error()))...)
	}
}
