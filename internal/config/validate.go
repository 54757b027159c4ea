package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFeed(); err != nil {
		return err
	}
	if err := c.validateFilter(); err != nil {
		return err
	}
	if err := c.validateTTS(); err != nil {
		return err
	}
	if err := c.validateTimeline(); err != nil {
		return err
	}
	if err := c.validateAssembly(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateFeed() error {
	if c.Feed.Subreddit == "" {
		return errors.New("feed.subreddit must be set")
	}
	return nil
}

func (c *Config) validateFilter() error {
	if c.Filter.MinChars < 0 {
		return errors.New("filter.min_chars must not be negative")
	}
	if c.Filter.MaxWords < 0 {
		return errors.New("filter.max_words must not be negative")
	}
	return nil
}

func (c *Config) validateTTS() error {
	if c.TTS.ChunkChars < 1 {
		return errors.New("tts.chunk_chars must be at least 1")
	}
	if c.TTS.ModelPath == "" {
		return errors.New("tts.model_path must be set")
	}
	return nil
}

func (c *Config) validateTimeline() error {
	if c.Timeline.CommaPauseMs < 0 || c.Timeline.SentencePauseMs < 0 {
		return errors.New("timeline pause values must not be negative")
	}
	if c.Timeline.GroupWords < 1 {
		return errors.New("timeline.group_words must be at least 1")
	}
	return nil
}

func (c *Config) validateAssembly() error {
	if c.Assembly.BackgroundPath == "" {
		return errors.New("assembly.background_path must be set")
	}
	if c.Assembly.OutputPath == "" {
		return errors.New("assembly.output_path must be set")
	}
	return nil
}
