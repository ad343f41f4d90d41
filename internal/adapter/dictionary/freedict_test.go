package dictionary

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/heartmarshall/subvocab-backend/internal/config"
)

func newTestClient(url string) *Client {
	return New(config.DictionaryConfig{BaseURL: url, Timeout: 5 * time.Second},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPhonetic_Success(t *testing.T) {
	t.Parallel()

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[{"word":"serendipity","phonetics":[{"text":""},{"text":"/ˌsɛɹənˈdɪpɪti/","audio":""}]}]`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL + "/").Phonetic(context.Background(), " Serendipity ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/ˌsɛɹənˈdɪpɪti/" {
		t.Errorf("phonetic = %q", got)
	}
	if gotPath != "/serendipity" {
		t.Errorf("path = %q, want /serendipity", gotPath)
	}
}

func TestPhonetic_TopLevelFieldWins(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"word":"gist","phonetic":"/dʒɪst/","phonetics":[{"text":"/other/"}]}]`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).Phonetic(context.Background(), "gist")
	if err != nil || got != "/dʒɪst/" {
		t.Fatalf("got (%q, %v)", got, err)
	}
}

func TestPhonetic_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).Phonetic(context.Background(), "qwzx")
	if err != nil || got != "" {
		t.Fatalf("got (%q, %v), want empty and nil", got, err)
	}
}

func TestPhonetic_RetriesOnce(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[{"word":"abate","phonetic":"/əˈbeɪt/"}]`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).Phonetic(context.Background(), "abate")
	if err != nil || got != "/əˈbeɪt/" {
		t.Fatalf("got (%q, %v)", got, err)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", calls.Load())
	}
}

func TestPhonetic_ServerErrorAfterRetry(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).Phonetic(context.Background(), "abate"); err == nil {
		t.Fatal("expected an error")
	}
}
