package domain

import (
	"slices"
	"strings"
)

// CEFR levels in ascending order. Difficulty 1 maps to A1, 6 to C2.
var CEFRLevels = []string{"A1", "A2", "B1", "B2", "C1", "C2"}

// Band is a coarse difficulty bucket.
type Band string

const (
	BandEasy   Band = "easy"
	BandMedium Band = "medium"
	BandHard   Band = "hard"
)

func (b Band) String() string { return string(b) }

func (b Band) IsValid() bool {
	switch b {
	case BandEasy, BandMedium, BandHard:
		return true
	}
	return false
}

// IsCEFRLevel reports whether s is one of A1..C2 (case-insensitive).
func IsCEFRLevel(s string) bool {
	return slices.Contains(CEFRLevels, strings.ToUpper(strings.TrimSpace(s)))
}

// CEFRForDifficulty returns the CEFR level for a 1..6 difficulty, or "" if
// the difficulty is out of range.
func CEFRForDifficulty(difficulty int) string {
	if difficulty < 1 || difficulty > len(CEFRLevels) {
		return ""
	}
	return CEFRLevels[difficulty-1]
}

// DifficultyBands assigns CEFR levels to easy/medium/hard buckets.
type DifficultyBands struct {
	Easy   []string
	Medium []string
	Hard   []string
}

// BandFor returns the bucket containing level, or "" when none does.
func (d DifficultyBands) BandFor(level string) Band {
	level = strings.ToUpper(strings.TrimSpace(level))
	if level == "" {
		return ""
	}
	switch {
	case containsFold(d.Easy, level):
		return BandEasy
	case containsFold(d.Medium, level):
		return BandMedium
	case containsFold(d.Hard, level):
		return BandHard
	}
	return ""
}

// Label fills the derived CEFR and Band fields of w from its difficulty.
func (d DifficultyBands) Label(w *WordAnnotation) {
	w.CEFR = CEFRForDifficulty(w.Difficulty)
	w.Band = d.BandFor(w.CEFR)
}

// LevelRange renders a difficulty range as a CEFR band, e.g. "B1-B2".
func LevelRange(lo, hi int) string {
	from, to := CEFRForDifficulty(lo), CEFRForDifficulty(hi)
	if from == "" || to == "" {
		return ""
	}
	if from == to {
		return from
	}
	return from + "-" + to
}

func containsFold(list []string, level string) bool {
	for _, s := range list {
		if strings.EqualFold(strings.TrimSpace(s), level) {
			return true
		}
	}
	return false
}
