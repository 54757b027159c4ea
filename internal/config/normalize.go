package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeFeed()
	c.normalizeGrammar()
	c.normalizeTTS()
	c.normalizeAssembly()
	c.normalizeLogging()

	var err error
	if c.Filter.ForbiddenWordsPath, err = expandPath(c.Filter.ForbiddenWordsPath); err != nil {
		return fmt.Errorf("filter.forbidden_words_path: %w", err)
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeFeed() {
	c.Feed.Subreddit = strings.TrimPrefix(strings.TrimSpace(c.Feed.Subreddit), "r/")
	c.Feed.BaseURL = strings.TrimRight(strings.TrimSpace(c.Feed.BaseURL), "/")
	if c.Feed.BaseURL == "" {
		c.Feed.BaseURL = defaultFeedBaseURL
	}
	c.Feed.UserAgent = strings.TrimSpace(c.Feed.UserAgent)
	if c.Feed.UserAgent == "" {
		c.Feed.UserAgent = defaultFeedUserAgent
	}
	if c.Feed.ListingLimit <= 0 {
		c.Feed.ListingLimit = defaultListingLimit
	}
	if c.Feed.RequestTimeout <= 0 {
		c.Feed.RequestTimeout = defaultFeedTimeoutSeconds
	}
	if c.Feed.AttemptBudget < 0 {
		c.Feed.AttemptBudget = 0
	}
}

func (c *Config) normalizeGrammar() {
	c.Grammar.BaseURL = strings.TrimSpace(c.Grammar.BaseURL)
	if c.Grammar.BaseURL == "" {
		c.Grammar.BaseURL = defaultGrammarBaseURL
	}
	c.Grammar.Language = strings.TrimSpace(c.Grammar.Language)
	if c.Grammar.Language == "" {
		c.Grammar.Language = defaultGrammarLanguage
	}
	if c.Grammar.TimeoutSeconds <= 0 {
		c.Grammar.TimeoutSeconds = defaultGrammarTimeout
	}
}

func (c *Config) normalizeTTS() {
	c.TTS.Binary = strings.TrimSpace(c.TTS.Binary)
	if c.TTS.Binary == "" {
		c.TTS.Binary = defaultTTSBinary
	}
	if c.TTS.Workers <= 0 {
		c.TTS.Workers = defaultTTSWorkers
	}
}

func (c *Config) normalizeAssembly() {
	c.Assembly.FFmpegBinary = strings.TrimSpace(c.Assembly.FFmpegBinary)
	if c.Assembly.FFmpegBinary == "" {
		c.Assembly.FFmpegBinary = defaultFFmpegBinary
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
