// Package analysis splits subtitle text into sentences and enriches each one
// with vocabulary and idiom annotations from a chat model.
package analysis

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/subvocab-backend/internal/domain"
)

// DefaultPacing is the pause after every model call.
const DefaultPacing = 200 * time.Millisecond

type sentenceAnnotator interface {
	Annotate(ctx context.Context, sentence string) domain.SentenceAnalysis
}

// Service runs the sentence-batched analysis pipeline.
type Service struct {
	log       *slog.Logger
	annotator sentenceAnnotator
	pacing    time.Duration
	sleeper   func(time.Duration)
}

// Option configures a Service.
type Option func(*Service)

// WithPacing overrides the pause between model calls.
func WithPacing(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.pacing = d
		}
	}
}

// WithSleeper overrides how pacing sleeps are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(s *Service) {
		s.sleeper = sleeper
	}
}

// NewService creates an analysis service. A nil annotator means no model is
// configured and every Analyze call fails with domain.ErrModelUnavailable.
func NewService(log *slog.Logger, annotator sentenceAnnotator, opts ...Option) *Service {
	s := &Service{
		log:       log.With("service", "analysis"),
		annotator: annotator,
		pacing:    DefaultPacing,
		sleeper:   time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Available reports whether a model is configured.
func (s *Service) Available() bool {
	return s.annotator != nil
}

// Analyze annotates up to MaxSentences sentences of text, one model call at a
// time, and returns them in text order. A sentence that cannot be annotated
// is returned degraded; it never fails the whole call.
func (s *Service) Analyze(ctx context.Context, text string) ([]domain.SentenceAnalysis, error) {
	if s.annotator == nil {
		return nil, domain.ErrModelUnavailable
	}

	sentences := SplitSentences(text)
	results := make([]domain.SentenceAnalysis, 0, len(sentences))

	s.log.InfoContext(ctx, "analysis started", slog.Int("sentences", len(sentences)))
	start := time.Now()
	degraded := 0

	for i, sentence := range sentences {
		r := s.annotator.Annotate(ctx, sentence)
		if r.Degraded() {
			degraded++
			s.log.WarnContext(ctx, "sentence degraded", slog.Int("index", i), slog.String("reason", r.Error))
		}
		results = append(results, r)
		s.sleeper(s.pacing)
	}

	s.log.InfoContext(ctx, "analysis finished",
		slog.Int("sentences", len(results)),
		slog.Int("degraded", degraded),
		slog.Duration("duration", time.Since(start)))
	return results, nil
}

// AnalyzeFile extracts the spoken text of an uploaded subtitle file and
// analyzes it.
func (s *Service) AnalyzeFile(ctx context.Context, name, content string) ([]domain.SentenceAnalysis, error) {
	return s.Analyze(ctx, TextFromFile(name, content))
}
