package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrDrained signals that the feed has no further candidates to offer.
var ErrDrained = errors.New("feed drained")

// Source yields zero-or-one candidate story per call. A transient error does
// not invalidate the source; callers may keep calling Next until ErrDrained.
type Source interface {
	Next(ctx context.Context) (*Story, error)
}

// HTTPDoer describes the HTTP client used by the Reddit source.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures the Reddit source.
type Option func(*RedditSource)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(s *RedditSource) {
		if client != nil {
			s.client = client
		}
	}
}

// WithListingLimit overrides how many posts one listing request asks for.
func WithListingLimit(limit int) Option {
	return func(s *RedditSource) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// RedditSource pulls candidate stories from a subreddit's hot listing. The
// listing is fetched lazily on the first Next call and then handed out one
// story at a time.
type RedditSource struct {
	baseURL   string
	subreddit string
	userAgent string
	limit     int
	client    HTTPDoer

	fetched bool
	pending []Story
}

// NewRedditSource constructs a source for the given subreddit.
func NewRedditSource(baseURL, subreddit, userAgent string, timeout time.Duration, opts ...Option) *RedditSource {
	src := &RedditSource{
		baseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		subreddit: strings.TrimPrefix(strings.TrimSpace(subreddit), "r/"),
		userAgent: strings.TrimSpace(userAgent),
		limit:     50,
		client:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(src)
	}
	return src
}

// Next returns the next candidate story. It returns ErrDrained once the
// listing is exhausted and a transient error when the listing fetch fails.
func (s *RedditSource) Next(ctx context.Context) (*Story, error) {
	if !s.fetched {
		if err := s.fetchListing(ctx); err != nil {
			return nil, err
		}
		s.fetched = true
	}
	if len(s.pending) == 0 {
		return nil, ErrDrained
	}
	story := s.pending[0]
	s.pending = s.pending[1:]
	return &story, nil
}

type listing struct {
	Data struct {
		Children []struct {
			Data struct {
				ID       string `json:"id"`
				Title    string `json:"title"`
				Selftext string `json:"selftext"`
				IsSelf   bool   `json:"is_self"`
				Over18   bool   `json:"over_18"`
				Score    int    `json:"score"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (s *RedditSource) fetchListing(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", s.baseURL, url.PathEscape(s.subreddit), s.limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build listing request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch listing: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return fmt.Errorf("read listing: %w", err)
	}

	var parsed listing
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("decode listing: %w", err)
	}

	stories := make([]Story, 0, len(parsed.Data.Children))
	for _, child := range parsed.Data.Children {
		post := child.Data
		body := ""
		if post.IsSelf {
			body = strings.TrimSpace(post.Selftext)
		}
		stories = append(stories, Story{
			ID:        post.ID,
			Subreddit: s.subreddit,
			Title:     strings.TrimSpace(post.Title),
			Body:      body,
			NSFW:      post.Over18,
			Score:     post.Score,
		})
	}
	s.pending = stories
	return nil
}

var _ Source = (*RedditSource)(nil)
