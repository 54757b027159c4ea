package selector

import (
	"fmt"
	"regexp"
	"strings"

	"storyreel/internal/feed"
)

// Filter is the pure accept/reject predicate over candidate stories. It has
// no side effects and is deterministic for a given story and word list.
type Filter struct {
	minChars int
	maxWords int
	words    []forbiddenWord
}

type forbiddenWord struct {
	word    string
	pattern *regexp.Regexp
}

// NewFilter builds a filter from a forbidden word list and length bounds.
// maxWords of zero disables the word-count cap.
func NewFilter(words []string, minChars, maxWords int) (*Filter, error) {
	f := &Filter{minChars: minChars, maxWords: maxWords}
	for _, word := range words {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		// Whole-word only: "class" must not reject "classic".
		pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("forbidden word %q: %w", word, err)
		}
		f.words = append(f.words, forbiddenWord{word: word, pattern: pattern})
	}
	return f, nil
}

// Accept reports whether the story passes every gate. The returned reason
// names the first failed gate for diagnostics and is empty on acceptance.
func (f *Filter) Accept(story *feed.Story) (bool, string) {
	if story == nil {
		return false, "no story"
	}
	if story.NSFW {
		return false, "nsfw"
	}
	for _, fw := range f.words {
		if fw.pattern.MatchString(story.Title) || fw.pattern.MatchString(story.Body) {
			return false, fmt.Sprintf("forbidden word %q", fw.word)
		}
	}
	if len(story.Body) < f.minChars {
		return false, fmt.Sprintf("too short (%d < %d chars)", len(story.Body), f.minChars)
	}
	if f.maxWords > 0 {
		if words := len(strings.Fields(story.Title)) + len(strings.Fields(story.Body)); words > f.maxWords {
			return false, fmt.Sprintf("too long (%d > %d words)", words, f.maxWords)
		}
	}
	return true, ""
}
