package analysis

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/subvocab-backend/internal/domain"
)

type phoneticSource interface {
	Phonetic(ctx context.Context, word string) (string, error)
}

// WithPhonetics makes the annotator fill empty transcriptions from src, with
// at most concurrency lookups in flight per sentence.
func (a *Annotator) WithPhonetics(src phoneticSource, concurrency int) *Annotator {
	a.phonetics = src
	a.lookups = max(concurrency, 1)
	return a
}

// backfillPhonetics sets Phonetic on words that lack one. A failed lookup
// leaves the word unchanged.
func (a *Annotator) backfillPhonetics(ctx context.Context, words []domain.WordAnnotation) {
	if a.phonetics == nil {
		return
	}

	var g errgroup.Group
	g.SetLimit(a.lookups)
	for i := range words {
		if strings.TrimSpace(words[i].Phonetic) != "" {
			continue
		}
		w := &words[i]
		g.Go(func() error {
			p, err := a.phonetics.Phonetic(ctx, w.Word)
			if err != nil {
				a.log.WarnContext(ctx, "phonetic lookup failed",
					slog.String("word", w.Word), slog.String("error", err.Error()))
				return nil
			}
			w.Phonetic = p
			return nil
		})
	}
	_ = g.Wait()
}
