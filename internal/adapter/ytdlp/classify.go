package ytdlp

import (
	"strings"

	"github.com/heartmarshall/subvocab-backend/internal/domain"
)

var notFoundMarkers = []string{
	"No subtitles found",
	"There are no subtitles",
}

const networkMarker = "Unable to download webpage"

// ClassifyFailure maps the stderr of a failed run to a *domain.ToolError.
func ClassifyFailure(stderr string, cause error) error {
	kind := domain.ErrToolFailed
	switch {
	case strings.Contains(stderr, networkMarker):
		kind = domain.ErrNetwork
	case containsAny(stderr, notFoundMarkers):
		kind = domain.ErrNotFound
	}
	return &domain.ToolError{Kind: kind, Diagnostic: stderr, Cause: cause}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
