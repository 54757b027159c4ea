package timeline

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Cue is a timed subtitle interval. An empty Text marks a silent interval
// (leading silence before a chunk's first word).
type Cue struct {
	Start float64
	End   float64
	Text  string
}

// Timeline is the ordered, contiguous sequence of cues covering the whole
// narration. TotalDuration equals the sum of all segment durations exactly.
type Timeline struct {
	Cues          []Cue
	TotalDuration float64
}

// Segment pairs one chunk's text with its measured audio duration. Duration
// is authoritative; LeadingSilence is the probed quiet interval before the
// first spoken word.
type Segment struct {
	Text           string
	Duration       float64
	LeadingSilence float64
}

// Options tunes cue allocation.
type Options struct {
	// CommaPause is the fixed allowance folded into a word ending with a
	// comma or semicolon.
	CommaPause float64
	// SentencePause is the fixed allowance folded into a word ending with
	// sentence-final punctuation.
	SentencePause float64
	// GroupWords caps how many word cues merge into one display caption.
	GroupWords int
}

// DefaultOptions returns the standard pause and grouping values.
func DefaultOptions() Options {
	return Options{CommaPause: 0.2, SentencePause: 0.4, GroupWords: 5}
}

// Build converts (chunk text, chunk duration) pairs into per-word cues.
//
// Within each segment the speech window (duration minus leading silence and
// pause allowances) is split across words proportionally to rune length, so a
// word twice as long holds the screen twice as long. Pause allowances ride
// inside the cue of the word that carries the punctuation. Cue boundaries
// accumulate monotonically and the final cue's end equals the accumulated
// total duration exactly: each segment's last word absorbs the floating-point
// remainder.
func Build(segments []Segment, opts Options) (Timeline, error) {
	if opts.CommaPause < 0 || opts.SentencePause < 0 {
		return Timeline{}, fmt.Errorf("pause allowances must not be negative")
	}

	var cues []Cue
	cumulative := 0.0
	for i, seg := range segments {
		if seg.Duration <= 0 {
			return Timeline{}, fmt.Errorf("segment %d: duration must be positive, got %v", i, seg.Duration)
		}
		start := cumulative
		end := cumulative + seg.Duration
		cumulative = end

		silence := seg.LeadingSilence
		if silence < 0 || silence >= seg.Duration {
			silence = 0
		}

		words := strings.Fields(seg.Text)
		if len(words) == 0 {
			cues = append(cues, Cue{Start: start, End: end, Text: strings.TrimSpace(seg.Text)})
			continue
		}

		if silence > 0 {
			cues = append(cues, Cue{Start: start, End: start + silence, Text: ""})
		}

		speech := seg.Duration - silence
		pauses := make([]float64, len(words))
		weights := make([]float64, len(words))
		totalPause := 0.0
		totalWeight := 0.0
		for j, word := range words {
			pauses[j] = pauseFor(word, opts)
			totalPause += pauses[j]
			weights[j] = float64(utf8.RuneCountInString(word))
			totalWeight += weights[j]
		}
		if totalPause >= speech {
			// Pauses cannot consume the whole window; words come first.
			for j := range pauses {
				pauses[j] = 0
			}
			totalPause = 0
		}

		wordTime := speech - totalPause
		cursor := start + silence
		for j, word := range words {
			cueEnd := cursor + wordTime*weights[j]/totalWeight + pauses[j]
			if j == len(words)-1 {
				cueEnd = end
			}
			cues = append(cues, Cue{Start: cursor, End: cueEnd, Text: word})
			cursor = cueEnd
		}
	}

	return Timeline{Cues: cues, TotalDuration: cumulative}, nil
}

// pauseFor returns the fixed pause allowance carried by a word, judged by its
// trailing punctuation (closing quotes and brackets are looked through).
func pauseFor(word string, opts Options) float64 {
	trimmed := strings.TrimRight(word, `"')]”’`)
	if trimmed == "" {
		return 0
	}
	switch trimmed[len(trimmed)-1] {
	case '.', '!', '?':
		return opts.SentencePause
	case ',', ';':
		return opts.CommaPause
	}
	return 0
}

// endsSentence reports whether a word cue closes a sentence.
func endsSentence(word string) bool {
	trimmed := strings.TrimRight(word, `"')]”’`)
	if trimmed == "" {
		return false
	}
	switch trimmed[len(trimmed)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}

// Grouped merges adjacent word cues into display captions of at most
// maxWords words, flushing early at sentence boundaries. Grouping only
// widens display intervals to [start(first), end(last)]; the underlying
// timing, contiguity, and total duration are untouched. Silent cues are
// never merged into a caption.
func (t Timeline) Grouped(maxWords int) Timeline {
	if maxWords <= 1 {
		return t
	}

	var out []Cue
	var pending []Cue
	flush := func() {
		if len(pending) == 0 {
			return
		}
		texts := make([]string, len(pending))
		for i, cue := range pending {
			texts[i] = cue.Text
		}
		out = append(out, Cue{
			Start: pending[0].Start,
			End:   pending[len(pending)-1].End,
			Text:  strings.Join(texts, " "),
		})
		pending = pending[:0]
	}

	for _, cue := range t.Cues {
		if cue.Text == "" {
			flush()
			out = append(out, cue)
			continue
		}
		pending = append(pending, cue)
		if len(pending) >= maxWords || endsSentence(cue.Text) {
			flush()
		}
	}
	flush()

	return Timeline{Cues: out, TotalDuration: t.TotalDuration}
}
