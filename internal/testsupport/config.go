package testsupport

import (
	"path/filepath"
	"testing"

	"storyreel/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// Grammar correction is disabled so tests never reach the network.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StagingDir = filepath.Join(base, "staging")
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Filter.ForbiddenWordsPath = filepath.Join(base, "forbidden_words.txt")
	cfg.Grammar.Enabled = false
	cfg.Assembly.BackgroundPath = filepath.Join(base, "bg.mp4")
	cfg.Assembly.OutputPath = filepath.Join(base, "out.mp4")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithSubreddit overrides the feed subreddit on the test config.
func WithSubreddit(name string) ConfigOption {
	return func(c *config.Config) {
		c.Feed.Subreddit = name
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StagingDir)
}
