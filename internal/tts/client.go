package tts

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"storyreel/internal/audio"
)

var commandContext = exec.CommandContext

var probeDuration = audio.Duration

// Render is the synthesized audio for one chunk. Duration is authoritative:
// it is measured from the rendered file, not derived from the text.
type Render struct {
	ChunkIndex int
	Path       string
	Duration   float64
}

// Client defines speech synthesis behaviour.
type Client interface {
	Synthesize(ctx context.Context, text, outPath string) (float64, error)
}

// Option configures the piper client.
type Option func(*PiperCLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *PiperCLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// PiperCLI wraps the piper text-to-speech command.
type PiperCLI struct {
	binary string
	model  string
}

// NewPiperCLI constructs a piper client for the given voice model.
func NewPiperCLI(model string, opts ...Option) *PiperCLI {
	cli := &PiperCLI{binary: "piper", model: model}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Synthesize renders text to outPath and returns the audio duration in
// seconds. Any failure is fatal to the run: a skipped chunk would
// desynchronize subtitles from narration.
func (c *PiperCLI) Synthesize(ctx context.Context, text, outPath string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, errors.New("empty chunk text")
	}
	if outPath == "" {
		return 0, errors.New("output path required")
	}

	cmd := commandContext(ctx, c.binary, "--model", c.model, "--output_file", outPath) //nolint:gosec
	cmd.Stdin = strings.NewReader(text)
	if output, err := cmd.CombinedOutput(); err != nil {
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			return 0, fmt.Errorf("piper failed: %w: %s", err, detail)
		}
		return 0, fmt.Errorf("piper failed: %w", err)
	}

	duration, err := probeDuration(outPath)
	if err != nil {
		return 0, fmt.Errorf("probe rendered audio: %w", err)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("rendered audio has no duration: %s", outPath)
	}
	return duration, nil
}

var _ Client = (*PiperCLI)(nil)
