package main

import (
	"testing"

	"storyreel/internal/testsupport"
)

func TestApplyGenerateFlagsOverridesConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cmd := newGenerateCommand(newCommandContext(nil))
	for flag, value := range map[string]string{
		"subreddit":   "stories",
		"out":         "/tmp/custom.mp4",
		"piper-model": "/voices/other.onnx",
		"try-posts":   "7",
		"chunk-chars": "120",
		"min-chars":   "0",
	} {
		if err := cmd.Flags().Set(flag, value); err != nil {
			t.Fatalf("set %s: %v", flag, err)
		}
	}

	applyGenerateFlags(cmd, cfg, generateFlags{
		subreddit:  "stories",
		outPath:    "/tmp/custom.mp4",
		piperModel: "/voices/other.onnx",
		tryPosts:   7,
		chunkChars: 120,
		minChars:   0,
	})

	if cfg.Feed.Subreddit != "stories" {
		t.Errorf("subreddit not overridden: %q", cfg.Feed.Subreddit)
	}
	if cfg.Assembly.OutputPath != "/tmp/custom.mp4" {
		t.Errorf("output path not overridden: %q", cfg.Assembly.OutputPath)
	}
	if cfg.TTS.ModelPath != "/voices/other.onnx" {
		t.Errorf("model path not overridden: %q", cfg.TTS.ModelPath)
	}
	if cfg.Feed.AttemptBudget != 7 {
		t.Errorf("attempt budget not overridden: %d", cfg.Feed.AttemptBudget)
	}
	if cfg.TTS.ChunkChars != 120 {
		t.Errorf("chunk chars not overridden: %d", cfg.TTS.ChunkChars)
	}
	if cfg.Filter.MinChars != 0 {
		t.Errorf("min chars not overridden: %d", cfg.Filter.MinChars)
	}
}

func TestApplyGenerateFlagsLeavesConfigWhenUnset(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSubreddit("AITAH"))
	before := *cfg
	cmd := newGenerateCommand(newCommandContext(nil))

	applyGenerateFlags(cmd, cfg, generateFlags{})

	if cfg.Feed.Subreddit != before.Feed.Subreddit {
		t.Errorf("subreddit changed without a flag: %q", cfg.Feed.Subreddit)
	}
	if cfg.TTS.ChunkChars != before.TTS.ChunkChars {
		t.Errorf("chunk chars changed without a flag: %d", cfg.TTS.ChunkChars)
	}
}
