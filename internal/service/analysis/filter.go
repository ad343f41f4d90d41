package analysis

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/subvocab-backend/internal/domain"
)

// WordFilter drops annotated words a learner does not need explained.
type WordFilter struct {
	MinLength           int
	DifficultyThreshold int
	ignored             map[string]struct{}
}

// NewWordFilter builds a filter. Ignored words are matched case-insensitively.
func NewWordFilter(minLength, difficultyThreshold int, ignored []string) WordFilter {
	set := make(map[string]struct{}, len(ignored))
	for _, w := range ignored {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			set[w] = struct{}{}
		}
	}
	return WordFilter{MinLength: minLength, DifficultyThreshold: difficultyThreshold, ignored: set}
}

// Keep reports whether w survives the filter. A difficulty of 0 means the
// model did not rate the word and never drops it.
func (f WordFilter) Keep(w domain.WordAnnotation) bool {
	word := strings.ToLower(strings.TrimSpace(w.Word))
	if word == "" || utf8.RuneCountInString(word) < f.MinLength {
		return false
	}
	if _, ok := f.ignored[word]; ok {
		return false
	}
	if w.Difficulty > 0 && w.Difficulty < f.DifficultyThreshold {
		return false
	}
	return true
}

// Apply returns the words that survive the filter, preserving order.
func (f WordFilter) Apply(words []domain.WordAnnotation) []domain.WordAnnotation {
	kept := make([]domain.WordAnnotation, 0, len(words))
	for _, w := range words {
		if f.Keep(w) {
			kept = append(kept, w)
		}
	}
	return kept
}
