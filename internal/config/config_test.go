package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"storyreel/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if cfg.Feed.Subreddit != "AITAH" {
		t.Fatalf("unexpected default subreddit: %q", cfg.Feed.Subreddit)
	}
	if cfg.TTS.ChunkChars != 250 || cfg.Filter.MinChars != 1000 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[feed]
subreddit = "r/stories"
base_url = "https://example.test/"

[tts]
chunk_chars = 120
workers = -1
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatal("expected config file to be found")
	}
	if cfg.Feed.Subreddit != "stories" {
		t.Fatalf("subreddit prefix not stripped: %q", cfg.Feed.Subreddit)
	}
	if cfg.Feed.BaseURL != "https://example.test" {
		t.Fatalf("base url not trimmed: %q", cfg.Feed.BaseURL)
	}
	if cfg.TTS.ChunkChars != 120 {
		t.Fatalf("chunk_chars not applied: %d", cfg.TTS.ChunkChars)
	}
	if cfg.TTS.Workers <= 0 {
		t.Fatalf("workers not defaulted: %d", cfg.TTS.Workers)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[tts]
chunk_chars = 0
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for chunk_chars = 0")
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	written, err := config.WriteSample(path)
	if err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}
	data, err := os.ReadFile(written)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[feed]") {
		t.Fatalf("sample config missing feed section")
	}
	if _, err := config.WriteSample(path); err == nil {
		t.Fatal("expected error overwriting existing config")
	}
}

func TestUsedStoriesPath(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.DataDir = "/tmp/storyreel-data"
	if got := cfg.UsedStoriesPath(); got != "/tmp/storyreel-data/used_stories.db" {
		t.Fatalf("unexpected path: %q", got)
	}
}
