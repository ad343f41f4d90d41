package analysis

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/heartmarshall/subvocab-backend/internal/adapter/llm"
)

type mockPhonetics struct {
	mu     sync.Mutex
	asked  []string
	lookup map[string]string
}

func (m *mockPhonetics) Phonetic(_ context.Context, word string) (string, error) {
	m.mu.Lock()
	m.asked = append(m.asked, word)
	m.mu.Unlock()
	p, ok := m.lookup[word]
	if !ok {
		return "", errors.New("freedict: unexpected status 500")
	}
	return p, nil
}

func TestAnnotate_BackfillsMissingPhonetics(t *testing.T) {
	t.Parallel()

	model := &mockChatModel{completeFn: func(context.Context, llm.Request) (string, error) {
		return `{"text":"x","words":[
			{"word":"ubiquitous","phonetic":"","difficulty":6},
			{"word":"ephemeral","phonetic":"/ɪˈfem(ə)rəl/","difficulty":6},
			{"word":"quixotic","difficulty":6}
		],"nativeExpressions":[]}`, nil
	}}
	src := &mockPhonetics{lookup: map[string]string{"ubiquitous": "/juːˈbɪkwɪtəs/"}}

	got := newTestAnnotator(model).WithPhonetics(src, 2).Annotate(context.Background(), "x")

	if len(got.Words) != 3 {
		t.Fatalf("unexpected words: %+v", got.Words)
	}
	if got.Words[0].Phonetic != "/juːˈbɪkwɪtəs/" {
		t.Errorf("backfilled phonetic = %q", got.Words[0].Phonetic)
	}
	if got.Words[1].Phonetic != "/ɪˈfem(ə)rəl/" {
		t.Errorf("model phonetic overwritten: %q", got.Words[1].Phonetic)
	}
	if got.Words[2].Phonetic != "" {
		t.Errorf("failed lookup should leave phonetic empty, got %q", got.Words[2].Phonetic)
	}
	if len(src.asked) != 2 {
		t.Errorf("expected 2 lookups, got %v", src.asked)
	}
}

func TestAnnotate_NoBackfillOnDegraded(t *testing.T) {
	t.Parallel()

	model := &mockChatModel{completeFn: func(context.Context, llm.Request) (string, error) {
		return "not json", nil
	}}
	src := &mockPhonetics{}

	got := newTestAnnotator(model).WithPhonetics(src, 1).Annotate(context.Background(), "x")

	if got.Error != ParseFailure || len(src.asked) != 0 {
		t.Fatalf("unexpected lookups %v for degraded result", src.asked)
	}
}
