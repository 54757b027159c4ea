package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"storyreel/internal/assembly"
	"storyreel/internal/audio"
	"storyreel/internal/config"
	"storyreel/internal/dedup"
	"storyreel/internal/feed"
	"storyreel/internal/logging"
	"storyreel/internal/selector"
	"storyreel/internal/services"
	"storyreel/internal/textchunk"
	"storyreel/internal/timeline"
	"storyreel/internal/tts"
)

var probeLeadingSilence = audio.LeadingSilence

// Silence detection parameters for piper output (22.05 kHz 16-bit PCM).
// A tenth of a second below the amplitude floor counts as silence.
const (
	silenceThreshold int16 = 512
	silenceMinRun          = 2205
)

// Corrector is the optional grammar correction hook.
type Corrector interface {
	Correct(ctx context.Context, text string) string
}

// Result summarizes one successful run.
type Result struct {
	RunID      string
	StoryID    string
	Title      string
	Chunks     int
	Duration   float64
	OutputPath string
}

// Option overrides a pipeline dependency, primarily for tests.
type Option func(*Pipeline)

// WithSource overrides the story feed.
func WithSource(source feed.Source) Option {
	return func(p *Pipeline) { p.source = source }
}

// WithHistory overrides the used-story store.
func WithHistory(history selector.History) Option {
	return func(p *Pipeline) { p.history = history }
}

// WithCorrector overrides the grammar correction client.
func WithCorrector(corrector Corrector) Option {
	return func(p *Pipeline) { p.corrector = corrector }
}

// WithSynthesizer overrides the speech synthesis client.
func WithSynthesizer(client tts.Client) Option {
	return func(p *Pipeline) { p.synth = client }
}

// WithEncoder overrides the video encoder.
func WithEncoder(encoder assembly.Encoder) Option {
	return func(p *Pipeline) { p.encoder = encoder }
}

// Pipeline runs the whole story-to-video workflow: select, sanitize, chunk,
// synthesize, time, and assemble.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger

	source    feed.Source
	history   selector.History
	corrector Corrector
	synth     tts.Client
	encoder   assembly.Encoder
}

// New constructs a pipeline from configuration. Dependencies not overridden
// by options are built from the config on first use.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	p := &Pipeline{cfg: cfg, logger: logger}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one end-to-end generation. The output file appears only on
// success: all intermediates live in a per-run staging directory that is
// removed on every exit path, and the rendered video moves to its final
// location as the last step.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := p.logger.With(logging.String(logging.FieldRunID, runID))

	if err := p.cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "run", "", "prepare directories", err)
	}

	lock := flock.New(filepath.Join(p.cfg.Paths.DataDir, "storyreel.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(nil, "run", "", "acquire run lock", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrTransient, "run", "", "another run is in progress", nil)
	}
	defer func() { _ = lock.Unlock() }()

	history := p.history
	if history == nil {
		store, err := dedup.Open(p.cfg.UsedStoriesPath(), logger)
		if err != nil {
			return nil, services.Wrap(nil, "run", "", "open used-story store", err)
		}
		defer store.Close()
		history = store
	}

	staging, err := os.MkdirTemp(p.cfg.Paths.StagingDir, "run-")
	if err != nil {
		return nil, services.Wrap(nil, "run", "", "create staging directory", err)
	}
	defer func() {
		if err := os.RemoveAll(staging); err != nil {
			logger.Warn("staging cleanup failed", logging.String("dir", staging), logging.Error(err))
		}
	}()

	started := time.Now()
	logger.Info("run started",
		logging.String("subreddit", p.cfg.Feed.Subreddit),
		logging.String("staging", staging))

	story, err := p.selectStory(ctx, history, logger)
	if err != nil {
		return nil, err
	}
	ctx = services.WithStoryID(ctx, story.ID)
	logger = logger.With(logging.String(logging.FieldStoryID, story.ID))

	narration := Narration(story.Title, story.Body)
	if narration == "" {
		return nil, services.Wrap(services.ErrNoContent, "sanitize", "", "story reduced to nothing", nil)
	}

	if p.corrector != nil {
		narration = p.corrector.Correct(services.WithStage(ctx, "grammar"), narration)
	} else if p.cfg.Grammar.Enabled {
		logger.Debug("grammar correction not wired, skipping")
	}

	chunks := textchunk.Split(narration, p.cfg.TTS.ChunkChars)
	if len(chunks) == 0 {
		return nil, services.Wrap(services.ErrNoContent, "chunk", "", "no chunks produced", nil)
	}
	logger.Info("narration prepared",
		logging.Int("chars", len(narration)),
		logging.Int("chunks", len(chunks)))

	synth := p.synth
	if synth == nil {
		synth = tts.NewPiperCLI(p.cfg.TTS.ModelPath, tts.WithBinary(p.cfg.TTS.Binary))
	}
	renders, err := tts.SynthesizeAll(services.WithStage(ctx, "synthesize"), synth, chunks, staging, p.cfg.TTS.Workers, logger)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "synthesize", "", "render narration", err)
	}

	encoder := p.encoder
	if encoder == nil {
		encoder = assembly.NewFFmpegCLI(logger, assembly.WithBinary(p.cfg.Assembly.FFmpegBinary))
	}

	parts := make([]string, len(renders))
	for i, render := range renders {
		parts[i] = render.Path
	}
	narrationPath := filepath.Join(staging, "narration.wav")
	if err := encoder.ConcatAudio(services.WithStage(ctx, "assemble"), parts, narrationPath); err != nil {
		return nil, err
	}

	tl, err := p.buildTimeline(chunks, renders, logger)
	if err != nil {
		return nil, err
	}

	srtPath := filepath.Join(staging, "subtitles.srt")
	if err := timeline.WriteSRTFile(srtPath, tl.Cues); err != nil {
		return nil, services.Wrap(nil, "subtitle", "", "write srt", err)
	}

	stagedVideo := filepath.Join(staging, "video.mp4")
	req := assembly.Request{
		BackgroundPath: p.cfg.Assembly.BackgroundPath,
		AudioPath:      narrationPath,
		SubtitlePath:   srtPath,
		OutputPath:     stagedVideo,
		Timeline:       tl,
	}
	if err := encoder.Render(services.WithStage(ctx, "assemble"), req); err != nil {
		return nil, err
	}

	outputPath := p.cfg.Assembly.OutputPath
	if err := moveFile(stagedVideo, outputPath); err != nil {
		return nil, services.Wrap(nil, "assemble", "", "publish output", err)
	}

	logger.Info("run finished",
		logging.String("output", outputPath),
		logging.Float64("narration_seconds", tl.TotalDuration),
		logging.Duration("elapsed", time.Since(started)))

	return &Result{
		RunID:      runID,
		StoryID:    story.ID,
		Title:      story.Title,
		Chunks:     len(chunks),
		Duration:   tl.TotalDuration,
		OutputPath: outputPath,
	}, nil
}

func (p *Pipeline) selectStory(ctx context.Context, history selector.History, logger *slog.Logger) (*feed.Story, error) {
	words, err := selector.LoadForbiddenWords(p.cfg.Filter.ForbiddenWordsPath)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "select", "", "load forbidden words", err)
	}
	filter, err := selector.NewFilter(words, p.cfg.Filter.MinChars, p.cfg.Filter.MaxWords)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "select", "", "build content filter", err)
	}

	source := p.source
	if source == nil {
		source = feed.NewRedditSource(
			p.cfg.Feed.BaseURL,
			p.cfg.Feed.Subreddit,
			p.cfg.Feed.UserAgent,
			time.Duration(p.cfg.Feed.RequestTimeout)*time.Second,
			feed.WithListingLimit(p.cfg.Feed.ListingLimit),
		)
	}

	sel := selector.New(source, history, filter, p.cfg.Feed.AttemptBudget, logger)
	return sel.Select(services.WithStage(ctx, "select"))
}

// buildTimeline probes each rendered chunk for leading silence, builds the
// word-level timeline, groups words into display captions, and frame-aligns
// every boundary.
func (p *Pipeline) buildTimeline(chunks []textchunk.Chunk, renders []tts.Render, logger *slog.Logger) (timeline.Timeline, error) {
	segments := make([]timeline.Segment, len(renders))
	for i, render := range renders {
		silence, err := probeLeadingSilence(render.Path, silenceThreshold, silenceMinRun)
		if err != nil {
			logger.Warn("silence probe failed",
				logging.Int("chunk", render.ChunkIndex),
				logging.Error(err))
			silence = 0
		}
		segments[i] = timeline.Segment{
			Text:           chunks[i].Text,
			Duration:       render.Duration,
			LeadingSilence: silence,
		}
	}

	opts := timeline.Options{
		CommaPause:    float64(p.cfg.Timeline.CommaPauseMs) / 1000,
		SentencePause: float64(p.cfg.Timeline.SentencePauseMs) / 1000,
		GroupWords:    p.cfg.Timeline.GroupWords,
	}
	tl, err := timeline.Build(segments, opts)
	if err != nil {
		return timeline.Timeline{}, services.Wrap(nil, "timeline", "", "build cues", err)
	}

	grouped := tl.Grouped(opts.GroupWords)
	aligned := assembly.AlignCues(grouped.Cues, assembly.FrameRate)
	return timeline.Timeline{Cues: aligned, TotalDuration: tl.TotalDuration}, nil
}

// moveFile renames src to dst, copying when rename crosses filesystems.
func moveFile(src, dst string) error {
	if dir := filepath.Dir(dst); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open staged output: %w", err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("copy output: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return os.Remove(src)
}
