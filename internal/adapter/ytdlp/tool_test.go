package ytdlp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/heartmarshall/subvocab-backend/internal/config"
	"github.com/heartmarshall/subvocab-backend/internal/domain"
	"github.com/heartmarshall/subvocab-backend/pkg/executor"
)

type mockExecutor struct {
	calls atomic.Int32
	runFn func(ctx context.Context, cmd executor.Command) (executor.Result, error)
}

func (m *mockExecutor) Run(ctx context.Context, cmd executor.Command) (executor.Result, error) {
	m.calls.Add(1)
	return m.runFn(ctx, cmd)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() config.SubtitlesConfig {
	return config.SubtitlesConfig{Binary: "yt-dlp", Timeout: time.Minute, MaxOutput: 2 << 20}
}

func versionExec(version string) *mockExecutor {
	return &mockExecutor{runFn: func(_ context.Context, cmd executor.Command) (executor.Result, error) {
		return executor.Result{Stdout: version}, nil
	}}
}

func TestTool_IsAvailable_ProbesOnce(t *testing.T) {
	t.Parallel()

	exec := versionExec("2024.08.06\n")
	tool := NewTool(exec, testConfig(), testLogger())

	if !tool.IsAvailable(context.Background()) {
		t.Fatal("expected available")
	}
	if !tool.IsAvailable(context.Background()) {
		t.Fatal("expected available on second call")
	}
	if got := exec.calls.Load(); got != 1 {
		t.Fatalf("expected 1 subprocess call, got %d", got)
	}
}

func TestTool_Version_Trimmed(t *testing.T) {
	t.Parallel()

	var gotCmd executor.Command
	exec := &mockExecutor{runFn: func(_ context.Context, cmd executor.Command) (executor.Result, error) {
		gotCmd = cmd
		return executor.Result{Stdout: "  2024.08.06 \n"}, nil
	}}
	tool := NewTool(exec, testConfig(), testLogger())

	version, ok := tool.Version(context.Background())
	if !ok || version != "2024.08.06" {
		t.Fatalf("Version() = (%q, %v)", version, ok)
	}
	if gotCmd.Name != "yt-dlp" || len(gotCmd.Args) != 1 || gotCmd.Args[0] != "--version" {
		t.Errorf("unexpected probe command: %+v", gotCmd)
	}
}

func TestTool_MissingIsCachedPermanently(t *testing.T) {
	t.Parallel()

	exec := &mockExecutor{runFn: func(context.Context, executor.Command) (executor.Result, error) {
		return executor.Result{ExitCode: -1}, errors.New(`exec: "yt-dlp": executable file not found in $PATH`)
	}}
	tool := NewTool(exec, testConfig(), testLogger())

	for range 3 {
		if tool.IsAvailable(context.Background()) {
			t.Fatal("expected unavailable")
		}
	}
	if _, ok := tool.Version(context.Background()); ok {
		t.Fatal("Version should report unavailable")
	}
	if got := exec.calls.Load(); got != 1 {
		t.Fatalf("expected 1 subprocess call, got %d", got)
	}
}

func TestTool_ConcurrentFirstCallsShareProbe(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	exec := &mockExecutor{runFn: func(context.Context, executor.Command) (executor.Result, error) {
		<-release
		return executor.Result{Stdout: "2024.08.06"}, nil
	}}
	tool := NewTool(exec, testConfig(), testLogger())

	var wg sync.WaitGroup
	results := make([]bool, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = tool.IsAvailable(context.Background())
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, ok := range results {
		if !ok {
			t.Errorf("caller %d saw unavailable", i)
		}
	}
	if got := exec.calls.Load(); got != 1 {
		t.Fatalf("expected 1 subprocess call, got %d", got)
	}
}

func TestTool_InvalidateReprobes(t *testing.T) {
	t.Parallel()

	var installed atomic.Bool
	exec := &mockExecutor{runFn: func(context.Context, executor.Command) (executor.Result, error) {
		if !installed.Load() {
			return executor.Result{}, errors.New("not found")
		}
		return executor.Result{Stdout: "2024.08.06"}, nil
	}}
	tool := NewTool(exec, testConfig(), testLogger())

	if tool.IsAvailable(context.Background()) {
		t.Fatal("expected unavailable before install")
	}
	installed.Store(true)
	if tool.IsAvailable(context.Background()) {
		t.Fatal("cached negative result should persist until Invalidate")
	}

	tool.Invalidate()
	if !tool.IsAvailable(context.Background()) {
		t.Fatal("expected available after Invalidate")
	}
	if got := exec.calls.Load(); got != 2 {
		t.Fatalf("expected 2 subprocess calls, got %d", got)
	}
}

func TestTool_Download_PassesLimitsAndCookies(t *testing.T) {
	t.Parallel()

	var gotCmd executor.Command
	exec := &mockExecutor{runFn: func(_ context.Context, cmd executor.Command) (executor.Result, error) {
		gotCmd = cmd
		return executor.Result{}, nil
	}}
	cfg := testConfig()
	cfg.CookiesFromBrowser = "chrome"
	tool := NewTool(exec, cfg, testLogger())

	err := tool.Download(context.Background(), "/tmp/job", Request{URL: "https://youtu.be/abc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotCmd.Timeout != time.Minute || gotCmd.MaxOutput != 2<<20 {
		t.Errorf("limits not applied: %+v", gotCmd)
	}
	if gotCmd.Args[0] != "--cookies-from-browser" || gotCmd.Args[1] != "chrome" {
		t.Errorf("cookies flag missing: %v", gotCmd.Args)
	}
}

func TestTool_Download_ClassifiesFailure(t *testing.T) {
	t.Parallel()

	exec := &mockExecutor{runFn: func(context.Context, executor.Command) (executor.Result, error) {
		return executor.Result{Stderr: "ERROR: Unable to download webpage: timed out", ExitCode: 1}, errors.New("exit status 1")
	}}
	tool := NewTool(exec, testConfig(), testLogger())

	err := tool.Download(context.Background(), "/tmp/job", Request{URL: "https://youtu.be/abc"})
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if domain.DiagnosticOf(err) == "" {
		t.Error("expected diagnostic to be carried")
	}
}

func TestTool_Download_OutputLimitIsToolFailure(t *testing.T) {
	t.Parallel()

	exec := &mockExecutor{runFn: func(context.Context, executor.Command) (executor.Result, error) {
		return executor.Result{}, executor.ErrOutputLimit
	}}
	tool := NewTool(exec, testConfig(), testLogger())

	err := tool.Download(context.Background(), "/tmp/job", Request{URL: "https://youtu.be/abc"})
	if !errors.Is(err, domain.ErrToolFailed) || !errors.Is(err, executor.ErrOutputLimit) {
		t.Fatalf("expected tool failure wrapping output limit, got %v", err)
	}
}
