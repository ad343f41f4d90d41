package analysis

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxSentences caps how many sentences of one text are analyzed.
const MaxSentences = 50

// SplitSentences cuts text at every whitespace run that directly follows
// '.', '?' or '!'. Terminal punctuation stays with its sentence and the
// whitespace run is dropped. Whitespace-only fragments are discarded and at
// most MaxSentences are returned. Abbreviations such as "Mr." split too.
func SplitSentences(text string) []string {
	sentences := make([]string, 0)
	start := 0
	prevTerminal := false

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if prevTerminal && unicode.IsSpace(r) {
			end := i
			for i < len(text) {
				r, size = utf8.DecodeRuneInString(text[i:])
				if !unicode.IsSpace(r) {
					break
				}
				i += size
			}
			if sentences = appendSentence(sentences, text[start:end]); len(sentences) == MaxSentences {
				return sentences
			}
			start = i
			prevTerminal = false
			continue
		}
		prevTerminal = r == '.' || r == '?' || r == '!'
		i += size
	}

	return appendSentence(sentences, text[start:])
}

func appendSentence(sentences []string, s string) []string {
	if strings.TrimSpace(s) == "" || len(sentences) >= MaxSentences {
		return sentences
	}
	return append(sentences, s)
}
