package logging_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"storyreel/internal/logging"
	"storyreel/internal/services"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := t.TempDir() + "/logs/run.log"
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("pipeline started", logging.String("subreddit", "AITAH"))
	data := readFile(t, path)
	if !strings.Contains(data, "pipeline started") || !strings.Contains(data, "subreddit=AITAH") {
		t.Fatalf("unexpected log output: %q", data)
	}
}

func TestWithContextAddsFields(t *testing.T) {
	path := t.TempDir() + "/run.log"
	logger, err := logging.New(logging.Options{Format: "console", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := services.WithRunID(context.Background(), "run-1")
	ctx = services.WithStage(ctx, "synthesize")
	ctx = services.WithStoryID(ctx, "abc123")

	logging.WithContext(ctx, logger).Info("chunk rendered")
	data := readFile(t, path)
	for _, want := range []string{"run_id=run-1", "stage=synthesize", "story_id=abc123"} {
		if !strings.Contains(data, want) {
			t.Errorf("log line missing %q: %q", want, data)
		}
	}
}

func TestNopLoggerIsSilent(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("should not panic", logging.Error(nil))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(data)
}
