package assembly

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"storyreel/internal/logging"
	"storyreel/internal/services"
)

var commandContext = exec.CommandContext

// Burn-in style for the subtitles filter. The outline colour is BGR hex, so
// this reads as a warm orange on screen.
const subtitleStyle = "Fontsize=28,OutlineColour=&H00C4903C&,Outline=3,Shadow=0,Alignment=10"

// Encoder defines the final video rendering behaviour.
type Encoder interface {
	ConcatAudio(ctx context.Context, parts []string, outPath string) error
	Render(ctx context.Context, req Request) error
}

// Option configures the ffmpeg client.
type Option func(*FFmpegCLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *FFmpegCLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// FFmpegCLI wraps the ffmpeg command for audio concatenation and the final
// merge.
type FFmpegCLI struct {
	binary string
	logger *slog.Logger
}

// NewFFmpegCLI constructs an ffmpeg client.
func NewFFmpegCLI(logger *slog.Logger, opts ...Option) *FFmpegCLI {
	if logger == nil {
		logger = logging.NewNop()
	}
	cli := &FFmpegCLI{
		binary: "ffmpeg",
		logger: logging.NewComponentLogger(logger, "assembly"),
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// ConcatAudio joins the chunk recordings into one narration track. Stream
// copy is attempted first; if the parts disagree on format ffmpeg refuses
// the copy, so a PCM re-encode runs as the fallback.
func (c *FFmpegCLI) ConcatAudio(ctx context.Context, parts []string, outPath string) error {
	if len(parts) == 0 {
		return services.Wrap(services.ErrValidation, "assemble", "concat", "no audio parts", nil)
	}
	listPath, err := writeConcatList(parts, outPath)
	if err != nil {
		return services.Wrap(nil, "assemble", "concat", "write list file", err)
	}
	defer os.Remove(listPath)

	copyArgs := []string{"-y", "-f", "concat", "-safe", "0", "-i", listPath, "-c", "copy", outPath}
	if err := c.run(ctx, copyArgs); err != nil {
		c.logger.Warn("stream copy concat failed, re-encoding", logging.Error(err))
		encodeArgs := []string{"-y", "-f", "concat", "-safe", "0", "-i", listPath, "-c:a", "pcm_s16le", outPath}
		if err := c.run(ctx, encodeArgs); err != nil {
			return services.Wrap(services.ErrExternalTool, "assemble", "concat", "join narration audio", err)
		}
	}
	return nil
}

// Render merges the background video, narration, and burned-in subtitles
// into the final vertical video. Output parameters are fixed; callers do not
// choose resolution or codecs.
func (c *FFmpegCLI) Render(ctx context.Context, req Request) error {
	if err := req.Validate(); err != nil {
		return err
	}

	filter := fmt.Sprintf(
		"scale=%d:%d,subtitles=%s:force_style='%s'",
		OutputWidth, OutputHeight, filterEscape(req.SubtitlePath), subtitleStyle,
	)
	args := []string{
		"-y",
		"-i", req.BackgroundPath,
		"-i", req.AudioPath,
		"-vf", filter,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c:v", VideoCodec,
		"-c:a", AudioCodec,
		"-r", fmt.Sprintf("%d", FrameRate),
		"-shortest",
		req.OutputPath,
	}
	c.logger.Info("rendering final video",
		slog.String("output", req.OutputPath),
		slog.Float64("narration_seconds", req.Timeline.TotalDuration))
	if err := c.run(ctx, args); err != nil {
		return services.Wrap(services.ErrExternalTool, "assemble", "render", "merge video", err)
	}
	return nil
}

func (c *FFmpegCLI) run(ctx context.Context, args []string) error {
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := tailLines(string(output), 5)
		if detail != "" {
			return fmt.Errorf("%s failed: %w: %s", c.binary, err, detail)
		}
		return fmt.Errorf("%s failed: %w", c.binary, err)
	}
	return nil
}

// writeConcatList emits the ffmpeg concat demuxer list next to the output
// file so relative paths resolve the same way for both.
func writeConcatList(parts []string, outPath string) (string, error) {
	var sb strings.Builder
	for _, part := range parts {
		abs, err := filepath.Abs(part)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "file '%s'\n", strings.ReplaceAll(abs, "'", `'\''`))
	}
	listPath := filepath.Join(filepath.Dir(outPath), "concat_list.txt")
	if err := os.WriteFile(listPath, []byte(sb.String()), 0o644); err != nil {
		return "", err
	}
	return listPath, nil
}

// filterEscape protects characters the subtitles filter parser treats
// specially. Windows drive colons are out of scope; this covers POSIX paths.
func filterEscape(path string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`:`, `\:`,
		`'`, `\'`,
		`[`, `\[`,
		`]`, `\]`,
	)
	return replacer.Replace(path)
}

func tailLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, " "))
}

var _ Encoder = (*FFmpegCLI)(nil)
