package assembly

import (
	"math"
	"strings"

	"storyreel/internal/services"
	"storyreel/internal/timeline"
)

// Fixed output parameters. These are constants of the system, not computed.
const (
	OutputWidth  = 1080
	OutputHeight = 1920
	FrameRate    = 60
	VideoCodec   = "libx264"
	AudioCodec   = "aac"
)

// Request packages everything the encoder needs for the final render.
type Request struct {
	BackgroundPath string
	AudioPath      string
	SubtitlePath   string
	OutputPath     string
	Timeline       timeline.Timeline
}

// Validate checks the contract. A missing field is a programming error, not
// a runtime condition, and is reported as a validation failure.
func (r Request) Validate() error {
	for _, field := range []struct {
		name  string
		value string
	}{
		{"background path", r.BackgroundPath},
		{"audio path", r.AudioPath},
		{"subtitle path", r.SubtitlePath},
		{"output path", r.OutputPath},
	} {
		if strings.TrimSpace(field.value) == "" {
			return services.Wrap(services.ErrValidation, "assemble", "", "missing "+field.name, nil)
		}
	}
	if len(r.Timeline.Cues) == 0 {
		return services.Wrap(services.ErrValidation, "assemble", "", "timeline has no cues", nil)
	}
	return nil
}

// FrameAlign snaps a timestamp to the nearest representable frame boundary
// so no cue boundary falls mid-frame.
func FrameAlign(seconds float64, frameRate int) float64 {
	return math.Round(seconds*float64(frameRate)) / float64(frameRate)
}

// AlignCues returns a copy of cues with every boundary frame-aligned.
// Rounding a non-decreasing sequence against a fixed grid preserves order,
// so contiguity survives within one frame of tolerance.
func AlignCues(cues []timeline.Cue, frameRate int) []timeline.Cue {
	aligned := make([]timeline.Cue, len(cues))
	for i, cue := range cues {
		aligned[i] = timeline.Cue{
			Start: FrameAlign(cue.Start, frameRate),
			End:   FrameAlign(cue.End, frameRate),
			Text:  cue.Text,
		}
	}
	return aligned
}
