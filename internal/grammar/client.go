package grammar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storyreel/internal/logging"
)

// HTTPDoer describes the HTTP client used by the grammar service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls a LanguageTool-compatible checking endpoint. Correction is an
// optional enrichment: every failure path yields the original text.
type Client struct {
	baseURL  string
	language string
	timeout  time.Duration
	client   HTTPDoer
	logger   *slog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// New constructs a grammar client.
func New(baseURL, language string, timeout time.Duration, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = logging.NewNop()
	}
	c := &Client{
		baseURL:  strings.TrimSpace(baseURL),
		language: language,
		timeout:  timeout,
		client:   &http.Client{Timeout: timeout},
		logger:   logging.NewComponentLogger(logger, "grammar"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type checkResponse struct {
	Matches []struct {
		Offset       int `json:"offset"`
		Length       int `json:"length"`
		Replacements []struct {
			Value string `json:"value"`
		} `json:"replacements"`
	} `json:"matches"`
}

// Correct returns the text with the service's first-choice replacements
// applied. On timeout or any error the original text comes back unchanged;
// the degraded path is logged, never propagated.
func (c *Client) Correct(ctx context.Context, text string) string {
	corrected, err := c.correct(ctx, text)
	if err != nil {
		c.logger.Warn("grammar correction skipped", logging.Error(err))
		return text
	}
	return corrected
}

func (c *Client) correct(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	form := url.Values{}
	form.Set("language", c.language)
	form.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build check request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call grammar service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("grammar service returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return "", fmt.Errorf("read grammar response: %w", err)
	}

	var parsed checkResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode grammar response: %w", err)
	}

	// Apply replacements back-to-front so earlier offsets stay valid.
	corrected := text
	for i := len(parsed.Matches) - 1; i >= 0; i-- {
		match := parsed.Matches[i]
		if len(match.Replacements) == 0 {
			continue
		}
		if match.Offset < 0 || match.Length < 0 || match.Offset+match.Length > len(corrected) {
			continue
		}
		corrected = corrected[:match.Offset] + match.Replacements[0].Value + corrected[match.Offset+match.Length:]
	}
	return corrected, nil
}
