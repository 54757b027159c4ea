package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"storyreel/internal/dedup"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously used stories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := dedup.Open(cfg.UsedStoriesPath(), nil)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No stories used yet")
				return nil
			}
			printHistory(out, records)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most this many entries (0 for all)")
	return cmd
}

func printHistory(out io.Writer, records []dedup.Record) {
	if isTerminal(out) {
		headers := []string{"Story", "Subreddit", "Title", "Used"}
		rows := make([][]string, 0, len(records))
		for _, rec := range records {
			rows = append(rows, []string{
				rec.StoryID,
				rec.Subreddit,
				truncate(rec.Title, 60),
				formatUsedAt(rec.UsedAt),
			})
		}
		fmt.Fprintln(out, renderTable(headers, rows))
		return
	}
	// Plain tab-separated output for pipes and scripts.
	for _, rec := range records {
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\n",
			rec.StoryID, rec.Subreddit, rec.Title, formatUsedAt(rec.UsedAt))
	}
}

func formatUsedAt(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("2006-01-02 15:04")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
