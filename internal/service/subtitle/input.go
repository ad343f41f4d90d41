package subtitle

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/subvocab-backend/internal/domain"
)

var youtubeURL = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)/.+$`)

// FetchInput selects a video and subtitle track.
type FetchInput struct {
	URL           string
	Language      string
	AutoTranslate bool
}

// Validate checks the URL before any process is spawned.
func (in FetchInput) Validate() error {
	url := strings.TrimSpace(in.URL)
	if url == "" {
		return domain.NewValidationError("youtubeUrl", "YouTube URL is required")
	}
	if !youtubeURL.MatchString(url) {
		return domain.NewValidationError("youtubeUrl", "Invalid YouTube URL format")
	}
	if strings.ContainsAny(in.Language, " \t\r\n") {
		return domain.NewValidationError("language", "must not contain whitespace")
	}
	return nil
}

// IsYouTubeURL reports whether s looks like a YouTube watch or short link.
func IsYouTubeURL(s string) bool {
	return youtubeURL.MatchString(strings.TrimSpace(s))
}
