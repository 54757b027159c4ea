package selector_test

import (
	"strings"
	"testing"

	"storyreel/internal/feed"
	"storyreel/internal/selector"
)

func story(body string) *feed.Story {
	return &feed.Story{ID: "s1", Title: "A title", Body: body}
}

func TestAcceptRejectsNSFW(t *testing.T) {
	f, err := selector.NewFilter(nil, 0, 0)
	if err != nil {
		t.Fatalf("NewFilter failed: %v", err)
	}
	s := story("plenty of text")
	s.NSFW = true
	if ok, reason := f.Accept(s); ok || reason != "nsfw" {
		t.Fatalf("expected nsfw rejection, got ok=%v reason=%q", ok, reason)
	}
}

func TestAcceptWholeWordMatchingOnly(t *testing.T) {
	f, err := selector.NewFilter([]string{"class"}, 0, 0)
	if err != nil {
		t.Fatalf("NewFilter failed: %v", err)
	}

	if ok, _ := f.Accept(story("a classic tale of classics")); !ok {
		t.Fatal("substring match must not reject: 'classic' is not 'class'")
	}
	if ok, _ := f.Accept(story("my CLASS was cancelled")); ok {
		t.Fatal("whole-word match should reject regardless of case")
	}
	if ok, _ := f.Accept(&feed.Story{Title: "the class reunion", Body: "fine body"}); ok {
		t.Fatal("forbidden word in title should reject")
	}
}

func TestAcceptMinChars(t *testing.T) {
	f, err := selector.NewFilter(nil, 100, 0)
	if err != nil {
		t.Fatalf("NewFilter failed: %v", err)
	}
	if ok, _ := f.Accept(story("short")); ok {
		t.Fatal("expected short body to be rejected")
	}
	if ok, reason := f.Accept(story(strings.Repeat("x", 100))); !ok {
		t.Fatalf("expected long body to pass, got %q", reason)
	}
}

func TestAcceptMaxWords(t *testing.T) {
	f, err := selector.NewFilter(nil, 0, 5)
	if err != nil {
		t.Fatalf("NewFilter failed: %v", err)
	}
	if ok, _ := f.Accept(story("one two three four five six")); ok {
		t.Fatal("expected word cap rejection")
	}
}

func TestAcceptIsDeterministic(t *testing.T) {
	f, err := selector.NewFilter([]string{"bad"}, 10, 0)
	if err != nil {
		t.Fatalf("NewFilter failed: %v", err)
	}
	s := story("a perfectly acceptable body of text")
	first, _ := f.Accept(s)
	for i := 0; i < 10; i++ {
		if got, _ := f.Accept(s); got != first {
			t.Fatal("same story and word list must always yield the same decision")
		}
	}
}
