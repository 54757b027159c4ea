package tts

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"storyreel/internal/logging"
	"storyreel/internal/textchunk"
)

// SynthesizeAll renders every chunk concurrently with at most workers piper
// processes in flight. Results come back ordered by chunk index regardless of
// completion order; the first failure cancels the remaining work.
func SynthesizeAll(ctx context.Context, client Client, chunks []textchunk.Chunk, dir string, workers int, logger *slog.Logger) ([]Render, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "tts")
	if workers < 1 {
		workers = 1
	}

	renders := make([]Render, len(chunks))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for _, chunk := range chunks {
		chunk := chunk
		group.Go(func() error {
			outPath := filepath.Join(dir, fmt.Sprintf("part_%03d.wav", chunk.Index))
			duration, err := client.Synthesize(groupCtx, chunk.Text, outPath)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", chunk.Index, err)
			}
			renders[chunk.Index] = Render{ChunkIndex: chunk.Index, Path: outPath, Duration: duration}
			logger.Debug("chunk rendered",
				logging.Int("chunk", chunk.Index),
				logging.Float64("duration_s", duration))
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return renders, nil
}
