package grammar_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storyreel/internal/grammar"
	"storyreel/internal/logging"
)

func TestCorrectAppliesReplacements(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.Form.Get("language") != "en-US" {
			t.Errorf("unexpected language %q", r.Form.Get("language"))
		}
		// "i was their" -> "I was there"
		_, _ = w.Write([]byte(`{"matches": [
			{"offset": 0, "length": 1, "replacements": [{"value": "I"}]},
			{"offset": 6, "length": 5, "replacements": [{"value": "there"}]}
		]}`))
	}))
	defer server.Close()

	client := grammar.New(server.URL, "en-US", time.Second, logging.NewNop())
	got := client.Correct(context.Background(), "i was their")
	if got != "I was there" {
		t.Fatalf("Correct = %q, want %q", got, "I was there")
	}
}

func TestCorrectFallsBackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	client := grammar.New(server.URL, "en-US", time.Second, logging.NewNop())
	original := "teh original text"
	if got := client.Correct(context.Background(), original); got != original {
		t.Fatalf("expected identity fallback, got %q", got)
	}
}

func TestCorrectFallsBackOnTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := grammar.New(server.URL, "en-US", 50*time.Millisecond, logging.NewNop())
	original := "slow service text"
	start := time.Now()
	if got := client.Correct(context.Background(), original); got != original {
		t.Fatalf("expected identity fallback, got %q", got)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatal("timeout not enforced")
	}
}

func TestCorrectIgnoresOutOfRangeMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"matches": [
			{"offset": 900, "length": 5, "replacements": [{"value": "nope"}]}
		]}`))
	}))
	defer server.Close()

	client := grammar.New(server.URL, "en-US", time.Second, logging.NewNop())
	original := "short"
	if got := client.Correct(context.Background(), original); got != original {
		t.Fatalf("out-of-range match must be ignored, got %q", got)
	}
}
