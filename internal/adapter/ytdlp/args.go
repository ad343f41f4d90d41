// Package ytdlp drives the yt-dlp command-line tool.
package ytdlp

import (
	"path/filepath"

	"github.com/heartmarshall/subvocab-backend/internal/domain"
)

// OutputTemplate names downloaded files after the video title.
const OutputTemplate = "%(title)s"

// Request selects which subtitle track to download.
type Request struct {
	URL                string
	Language           string
	AutoTranslate      bool
	CookiesFromBrowser string
}

// BuildArgs returns the yt-dlp arguments for req with output under dir.
// Each value is its own argument; nothing passes through a shell.
func BuildArgs(dir string, req Request) []string {
	args := make([]string, 0, 16)
	if req.CookiesFromBrowser != "" {
		args = append(args, "--cookies-from-browser", req.CookiesFromBrowser)
	}
	args = append(args, "--write-subs", "--skip-download", "--no-check-certificate")

	switch {
	case req.Language != "" && req.Language != domain.LanguageAuto:
		args = append(args, "--sub-langs", req.Language)
	case req.AutoTranslate:
		args = append(args, "--sub-langs", "en")
	}

	if req.AutoTranslate {
		args = append(args, "--write-auto-subs")
	}

	args = append(args,
		"--sub-format", domain.SubtitleFormat,
		"--convert-subs", domain.SubtitleFormat,
		"-o", filepath.Join(dir, OutputTemplate),
		req.URL,
	)
	return args
}
