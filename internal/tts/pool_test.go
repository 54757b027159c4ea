package tts_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"storyreel/internal/logging"
	"storyreel/internal/textchunk"
	"storyreel/internal/tts"
)

type fakeClient struct {
	delays map[string]time.Duration
	failOn string
	calls  atomic.Int32
}

func (f *fakeClient) Synthesize(ctx context.Context, text, outPath string) (float64, error) {
	f.calls.Add(1)
	if delay, ok := f.delays[text]; ok {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	if f.failOn != "" && text == f.failOn {
		return 0, errors.New("synthesis blew up")
	}
	return float64(len(text)), nil
}

func chunksOf(texts ...string) []textchunk.Chunk {
	chunks := make([]textchunk.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = textchunk.Chunk{Index: i, Text: text, WordCount: len(strings.Fields(text))}
	}
	return chunks
}

func TestSynthesizeAllPreservesChunkOrder(t *testing.T) {
	// The first chunk finishes last; order must still be by index.
	client := &fakeClient{delays: map[string]time.Duration{"alpha": 50 * time.Millisecond}}
	chunks := chunksOf("alpha", "beta", "gamma")

	renders, err := tts.SynthesizeAll(context.Background(), client, chunks, t.TempDir(), 3, logging.NewNop())
	if err != nil {
		t.Fatalf("SynthesizeAll failed: %v", err)
	}
	if len(renders) != 3 {
		t.Fatalf("expected 3 renders, got %d", len(renders))
	}
	for i, render := range renders {
		if render.ChunkIndex != i {
			t.Fatalf("render %d has chunk index %d", i, render.ChunkIndex)
		}
	}
	if renders[0].Duration != float64(len("alpha")) {
		t.Fatalf("render 0 carries wrong duration: %v", renders[0].Duration)
	}
	if !strings.HasSuffix(renders[2].Path, "part_002.wav") {
		t.Fatalf("unexpected render path: %q", renders[2].Path)
	}
}

func TestSynthesizeAllFailsFast(t *testing.T) {
	client := &fakeClient{failOn: "beta"}
	chunks := chunksOf("alpha", "beta", "gamma")

	_, err := tts.SynthesizeAll(context.Background(), client, chunks, t.TempDir(), 1, logging.NewNop())
	if err == nil {
		t.Fatal("expected error when a chunk fails")
	}
	if !strings.Contains(err.Error(), "chunk 1") {
		t.Fatalf("error should name the failed chunk: %v", err)
	}
}

func TestSynthesizeAllRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := &fakeClient{delays: map[string]time.Duration{"alpha": time.Second}}

	_, err := tts.SynthesizeAll(ctx, client, chunksOf("alpha"), t.TempDir(), 1, logging.NewNop())
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
