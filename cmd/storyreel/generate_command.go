package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"storyreel/internal/config"
	"storyreel/internal/grammar"
	"storyreel/internal/logging"
	"storyreel/internal/pipeline"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var (
		subreddit  string
		background string
		outPath    string
		piperModel string
		tryPosts   int
		chunkChars int
		minChars   int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one narrated video from a fresh story",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			applyGenerateFlags(cmd, cfg, generateFlags{
				subreddit:  subreddit,
				background: background,
				outPath:    outPath,
				piperModel: piperModel,
				tryPosts:   tryPosts,
				chunkChars: chunkChars,
				minChars:   minChars,
			})

			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
			})
			if err != nil {
				return err
			}

			var opts []pipeline.Option
			if cfg.Grammar.Enabled {
				corrector := grammar.New(
					cfg.Grammar.BaseURL,
					cfg.Grammar.Language,
					time.Duration(cfg.Grammar.TimeoutSeconds)*time.Second,
					logger,
				)
				opts = append(opts, pipeline.WithCorrector(corrector))
			}

			result, err := pipeline.New(cfg, logger, opts...).Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Story: %s (%s)\n", result.Title, result.StoryID)
			fmt.Fprintf(out, "Narration: %.1fs across %d chunks\n", result.Duration, result.Chunks)
			fmt.Fprintf(out, "Wrote %s\n", result.OutputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&subreddit, "subreddit", "", "Subreddit to pull stories from")
	cmd.Flags().StringVar(&background, "background", "", "Background video path")
	cmd.Flags().StringVar(&outPath, "out", "", "Output video path")
	cmd.Flags().StringVar(&piperModel, "piper-model", "", "Piper voice model path")
	cmd.Flags().IntVar(&tryPosts, "try-posts", -1, "Maximum candidate stories to consider (0 for unlimited)")
	cmd.Flags().IntVar(&chunkChars, "chunk-chars", 0, "Maximum characters per synthesizer chunk")
	cmd.Flags().IntVar(&minChars, "min-chars", -1, "Minimum story body length in characters")

	return cmd
}

type generateFlags struct {
	subreddit  string
	background string
	outPath    string
	piperModel string
	tryPosts   int
	chunkChars int
	minChars   int
}

// applyGenerateFlags layers explicitly set flags over the loaded config.
func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config, flags generateFlags) {
	if cmd.Flags().Changed("subreddit") {
		cfg.Feed.Subreddit = flags.subreddit
	}
	if cmd.Flags().Changed("background") {
		cfg.Assembly.BackgroundPath = flags.background
	}
	if cmd.Flags().Changed("out") {
		cfg.Assembly.OutputPath = flags.outPath
	}
	if cmd.Flags().Changed("piper-model") {
		cfg.TTS.ModelPath = flags.piperModel
	}
	if cmd.Flags().Changed("try-posts") {
		cfg.Feed.AttemptBudget = flags.tryPosts
	}
	if cmd.Flags().Changed("chunk-chars") {
		cfg.TTS.ChunkChars = flags.chunkChars
	}
	if cmd.Flags().Changed("min-chars") {
		cfg.Filter.MinChars = flags.minChars
	}
}
