package assembly_test

import (
	"errors"
	"math"
	"testing"

	"storyreel/internal/assembly"
	"storyreel/internal/services"
	"storyreel/internal/timeline"
)

func validRequest() assembly.Request {
	return assembly.Request{
		BackgroundPath: "/media/bg.mp4",
		AudioPath:      "/tmp/run/narration.wav",
		SubtitlePath:   "/tmp/run/subs.srt",
		OutputPath:     "/out/video.mp4",
		Timeline: timeline.Timeline{
			Cues:          []timeline.Cue{{Start: 0, End: 1, Text: "hello"}},
			TotalDuration: 1,
		},
	}
}

func TestRequestValidate(t *testing.T) {
	if err := validRequest().Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	broken := validRequest()
	broken.AudioPath = ""
	err := broken.Validate()
	if err == nil {
		t.Fatal("expected validation error for missing audio path")
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	empty := validRequest()
	empty.Timeline = timeline.Timeline{}
	if err := empty.Validate(); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty timeline, got %v", err)
	}
}

func TestFrameAlign(t *testing.T) {
	cases := []struct {
		seconds float64
		want    float64
	}{
		{0, 0},
		{1.0, 1.0},
		{0.012, 1.0 / 60.0}, // 0.72 frames rounds up to frame 1
		{0.007, 0},          // 0.42 frames rounds down to zero
		{2.5, 2.5},          // frame 150 exactly
	}
	for _, tc := range cases {
		got := assembly.FrameAlign(tc.seconds, assembly.FrameRate)
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("FrameAlign(%v) = %v, want %v", tc.seconds, got, tc.want)
		}
	}
}

func TestAlignCuesPreservesOrder(t *testing.T) {
	cues := []timeline.Cue{
		{Start: 0, End: 0.337, Text: "a"},
		{Start: 0.337, End: 0.841, Text: "b"},
		{Start: 0.841, End: 1.999, Text: "c"},
	}
	aligned := assembly.AlignCues(cues, assembly.FrameRate)
	if len(aligned) != len(cues) {
		t.Fatalf("cue count changed: %d != %d", len(aligned), len(cues))
	}
	for i, cue := range aligned {
		frames := cue.Start * assembly.FrameRate
		if math.Abs(frames-math.Round(frames)) > 1e-9 {
			t.Errorf("cue %d start %v is not on a frame boundary", i, cue.Start)
		}
		if i > 0 && aligned[i-1].End != cue.Start {
			t.Errorf("alignment broke contiguity between cue %d and %d", i-1, i)
		}
	}
	// Shared boundaries round identically, so the originals stay shared.
	if aligned[0].End != aligned[1].Start {
		t.Fatal("shared boundary diverged after alignment")
	}
}
