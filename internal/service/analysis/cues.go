package analysis

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	reCueIndex = regexp.MustCompile(`^\d+$`)
	reCueTime  = regexp.MustCompile(`^(\d{2}:)?\d{2}:\d{2}[.,]\d{3}\s+-->`)
	reTag      = regexp.MustCompile(`<[^>]*>|\{\\[^}]*\}`)
)

var vttHeaderPrefixes = []string{"WEBVTT", "NOTE", "STYLE", "REGION", "Kind:", "Language:"}

// CueText extracts the spoken text of an SRT or WebVTT document: cue
// numbers, timing lines, headers and markup are removed, consecutive
// duplicate lines (common in auto-generated captions) are collapsed, and the
// remaining lines are joined with single spaces.
func CueText(content string) string {
	content = strings.TrimPrefix(content, "\uFEFF")
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || reCueIndex.MatchString(line) || reCueTime.MatchString(line) || isVTTHeader(line) {
			continue
		}
		line = strings.Join(strings.Fields(reTag.ReplaceAllString(line, "")), " ")
		if line == "" {
			continue
		}
		if n := len(kept); n > 0 && kept[n-1] == line {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, " ")
}

// TextFromFile returns the analyzable text of an uploaded subtitle file.
// Files other than .srt and .vtt are treated as plain text.
func TextFromFile(name, content string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".srt", ".vtt":
		return CueText(content)
	default:
		return content
	}
}

func isVTTHeader(line string) bool {
	for _, p := range vttHeaderPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}
