package feed_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storyreel/internal/feed"
)

const sampleListing = `{
  "data": {
    "children": [
      {"data": {"id": "a1", "title": "First story", "selftext": "Body one.", "is_self": true, "over_18": false, "score": 120}},
      {"data": {"id": "b2", "title": "Link post", "selftext": "", "is_self": false, "over_18": false, "score": 5}},
      {"data": {"id": "c3", "title": "Spicy", "selftext": "Body three.", "is_self": true, "over_18": true, "score": 77}}
    ]
  }
}`

func TestNextWalksListing(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Path != "/r/AITAH/hot.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(sampleListing))
	}))
	defer server.Close()

	src := feed.NewRedditSource(server.URL, "AITAH", "storyreel-test/1", time.Second)
	ctx := context.Background()

	first, err := src.Next(ctx)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if first.ID != "a1" || first.Body != "Body one." || first.NSFW || first.Score != 120 {
		t.Fatalf("unexpected first story: %+v", first)
	}
	if gotUA != "storyreel-test/1" {
		t.Fatalf("user agent not sent: %q", gotUA)
	}

	second, err := src.Next(ctx)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if second.ID != "b2" || second.Body != "" {
		t.Fatalf("link post should carry empty body: %+v", second)
	}

	third, err := src.Next(ctx)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if !third.NSFW {
		t.Fatalf("expected NSFW flag on third story: %+v", third)
	}

	if _, err := src.Next(ctx); !errors.Is(err, feed.ErrDrained) {
		t.Fatalf("expected ErrDrained, got %v", err)
	}
}

func TestNextReportsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	src := feed.NewRedditSource(server.URL, "AITAH", "storyreel-test/1", time.Second)
	if _, err := src.Next(context.Background()); err == nil {
		t.Fatal("expected error for non-200 listing response")
	}
}
