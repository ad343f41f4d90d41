package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/heartmarshall/subvocab-backend/internal/app"
)

func TestVersionCommand(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != app.BuildVersion() {
		t.Errorf("version output = %q, want %q", got, app.BuildVersion())
	}
}

func TestFetchCommand_RequiresURL(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"fetch"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an argument error")
	}
}

func TestAnalyzeCommand_RejectsUnsupportedFormat(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("SUPPORTED_FORMATS", ".srt")

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"analyze", "movie.mp4"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "unsupported file format") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}

func TestRootCommand_ListsSubcommands(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"serve", "fetch", "analyze", "version"} {
		if sub, _, err := cmd.Find([]string{name}); err != nil || sub.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
