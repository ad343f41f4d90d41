package ytdlp

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/subvocab-backend/internal/config"
	"github.com/heartmarshall/subvocab-backend/pkg/ctxutil"
	"github.com/heartmarshall/subvocab-backend/pkg/executor"
)

const probeTimeout = 10 * time.Second

// Tool wraps the yt-dlp binary. The availability probe runs once and its
// result, positive or negative, is cached until Invalidate is called.
type Tool struct {
	exec      executor.Executor
	binary    string
	timeout   time.Duration
	maxOutput int
	cookies   string
	log       *slog.Logger

	group singleflight.Group

	mu        sync.RWMutex
	probed    bool
	available bool
	version   string
}

type probeResult struct {
	available bool
	version   string
}

// NewTool creates a Tool from the subtitles configuration.
func NewTool(exec executor.Executor, cfg config.SubtitlesConfig, logger *slog.Logger) *Tool {
	return &Tool{
		exec:      exec,
		binary:    cfg.Binary,
		timeout:   cfg.Timeout,
		maxOutput: cfg.MaxOutput,
		cookies:   cfg.CookiesFromBrowser,
		log:       logger.With("adapter", "ytdlp"),
	}
}

// IsAvailable reports whether the binary could be executed.
func (t *Tool) IsAvailable(ctx context.Context) bool {
	return t.status(ctx).available
}

// Version returns the trimmed `--version` output and whether the tool is
// available.
func (t *Tool) Version(ctx context.Context) (string, bool) {
	r := t.status(ctx)
	return r.version, r.available
}

// Invalidate drops the cached probe result; the next call probes again.
func (t *Tool) Invalidate() {
	t.mu.Lock()
	t.probed = false
	t.available = false
	t.version = ""
	t.mu.Unlock()
	t.group.Forget("probe")
}

func (t *Tool) status(ctx context.Context) probeResult {
	t.mu.RLock()
	if t.probed {
		r := probeResult{available: t.available, version: t.version}
		t.mu.RUnlock()
		return r
	}
	t.mu.RUnlock()

	v, _, _ := t.group.Do("probe", func() (any, error) {
		t.mu.RLock()
		if t.probed {
			r := probeResult{available: t.available, version: t.version}
			t.mu.RUnlock()
			return r, nil
		}
		t.mu.RUnlock()

		r := t.probe(context.WithoutCancel(ctx))

		t.mu.Lock()
		t.probed = true
		t.available = r.available
		t.version = r.version
		t.mu.Unlock()
		return r, nil
	})
	return v.(probeResult)
}

func (t *Tool) probe(ctx context.Context) probeResult {
	res, err := t.exec.Run(ctx, executor.Command{
		Name:      t.binary,
		Args:      []string{"--version"},
		Timeout:   probeTimeout,
		MaxOutput: 64 << 10,
	})
	if err != nil {
		t.log.ErrorContext(ctx, "yt-dlp is not installed or not in PATH",
			slog.String("binary", t.binary), slog.String("error", err.Error()))
		return probeResult{}
	}

	version := strings.TrimSpace(res.Stdout)
	t.log.InfoContext(ctx, "found yt-dlp", slog.String("version", version))
	return probeResult{available: true, version: version}
}

// Download runs yt-dlp for req, writing subtitle files into dir. A failed run
// is returned as a *domain.ToolError classified by ClassifyFailure.
func (t *Tool) Download(ctx context.Context, dir string, req Request) error {
	req.CookiesFromBrowser = t.cookies
	args := BuildArgs(dir, req)

	t.log.InfoContext(ctx, "executing yt-dlp", append(ctxutil.LogAttrs(ctx), slog.Any("args", args))...)

	res, err := t.exec.Run(ctx, executor.Command{
		Name:      t.binary,
		Args:      args,
		Timeout:   t.timeout,
		MaxOutput: t.maxOutput,
	})
	if err != nil {
		t.log.ErrorContext(ctx, "yt-dlp failed", append(ctxutil.LogAttrs(ctx),
			slog.String("error", err.Error()),
			slog.String("stdout", res.Stdout),
			slog.String("stderr", res.Stderr))...)
		return ClassifyFailure(res.Stderr, err)
	}
	return nil
}
