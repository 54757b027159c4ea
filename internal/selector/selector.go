package selector

import (
	"context"
	"errors"
	"log/slog"

	"storyreel/internal/dedup"
	"storyreel/internal/feed"
	"storyreel/internal/logging"
	"storyreel/internal/services"
)

// History is the slice of the dedup store the selector needs.
type History interface {
	Contains(ctx context.Context, storyID string) (bool, error)
	MarkUsed(ctx context.Context, rec dedup.Record) error
}

// Selector drives fetch, dedup check, and filtering in a bounded retry loop
// until one acceptable story is found or the attempt budget is exhausted.
type Selector struct {
	source  feed.Source
	history History
	filter  *Filter
	budget  int // 0 means unlimited
	logger  *slog.Logger
}

// New constructs a selector. A budget of zero keeps trying until the source
// drains.
func New(source feed.Source, history History, filter *Filter, budget int, logger *slog.Logger) *Selector {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Selector{
		source:  source,
		history: history,
		filter:  filter,
		budget:  budget,
		logger:  logging.NewComponentLogger(logger, "selector"),
	}
}

// Select returns the first acceptable story and durably marks it used before
// returning. Exhaustion surfaces as services.ErrNoContent, distinct from a
// pipeline fault.
func (s *Selector) Select(ctx context.Context) (*feed.Story, error) {
	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if s.budget > 0 && attempts >= s.budget {
			return nil, services.Wrap(services.ErrNoContent, "select", "", "attempt budget exhausted", nil)
		}
		attempts++

		story, err := s.source.Next(ctx)
		if err != nil {
			if errors.Is(err, feed.ErrDrained) {
				return nil, services.Wrap(services.ErrNoContent, "select", "", "feed drained", nil)
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// Fetch failures are recoverable; they just burn an attempt.
			s.logger.Warn("fetch failed", logging.Int("attempt", attempts), logging.Error(err))
			continue
		}

		used, err := s.history.Contains(ctx, story.ID)
		if err != nil {
			return nil, services.Wrap(nil, "select", "dedup check", story.ID, err)
		}
		if used {
			s.logger.Debug("skipping story", logging.String("story_id", story.ID), logging.String("reason", "already used"))
			continue
		}

		if ok, reason := s.filter.Accept(story); !ok {
			s.logger.Debug("skipping story", logging.String("story_id", story.ID), logging.String("reason", reason))
			continue
		}

		if err := s.history.MarkUsed(ctx, dedup.Record{
			StoryID:   story.ID,
			Subreddit: story.Subreddit,
			Title:     story.Title,
		}); err != nil {
			return nil, services.Wrap(nil, "select", "mark used", story.ID, err)
		}

		s.logger.Info("story selected",
			logging.String("story_id", story.ID),
			logging.String("title", story.Title),
			logging.Int("attempts", attempts))
		return story, nil
	}
}
