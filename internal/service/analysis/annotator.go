package analysis

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/heartmarshall/subvocab-backend/internal/adapter/llm"
	"github.com/heartmarshall/subvocab-backend/internal/domain"
)

// ParseFailure marks a sentence whose model reply was not valid JSON.
const ParseFailure = "failed to parse model response"

type chatModel interface {
	Complete(ctx context.Context, req llm.Request) (string, error)
}

// Annotator enriches one sentence through a chat model.
type Annotator struct {
	model  chatModel
	level  Level
	filter WordFilter
	bands  domain.DifficultyBands
	log    *slog.Logger

	phonetics phoneticSource
	lookups   int
}

// NewAnnotator creates an Annotator for a learner at level.
func NewAnnotator(log *slog.Logger, model chatModel, level Level, filter WordFilter, bands domain.DifficultyBands) *Annotator {
	return &Annotator{
		model:  model,
		level:  level,
		filter: filter,
		bands:  bands,
		log:    log.With("service", "annotator"),
	}
}

// Annotate never fails: transport and parse errors are folded into a
// degraded analysis that carries only the sentence and an error marker.
func (a *Annotator) Annotate(ctx context.Context, sentence string) domain.SentenceAnalysis {
	if strings.TrimSpace(sentence) == "" {
		return domain.EmptyAnalysis(sentence)
	}

	reply, err := a.model.Complete(ctx, llm.Request{
		System: systemPrompt(a.level),
		Prompt: userPrompt(a.level, sentence),
	})
	if err != nil {
		a.log.ErrorContext(ctx, "model call failed", slog.String("error", err.Error()))
		return domain.DegradedAnalysis(sentence, err.Error())
	}

	var result domain.SentenceAnalysis
	if err := json.Unmarshal([]byte(strings.TrimSpace(reply)), &result); err != nil {
		a.log.WarnContext(ctx, "model reply is not valid JSON",
			slog.String("error", err.Error()), slog.String("reply", reply))
		return domain.DegradedAnalysis(sentence, ParseFailure)
	}

	result.Error = ""
	if result.Text == "" {
		result.Text = sentence
	}
	result.Words = a.filter.Apply(result.Words)
	for i := range result.Words {
		a.bands.Label(&result.Words[i])
	}
	a.backfillPhonetics(ctx, result.Words)
	result.Normalize()
	return result
}
