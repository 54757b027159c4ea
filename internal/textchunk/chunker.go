package textchunk

import "strings"

// Chunk is a bounded-length slice of narration text sized for one synthesizer
// call. Chunks are ordered and together cover the whole narration.
type Chunk struct {
	Index     int
	Text      string
	WordCount int
}

// Split breaks text into chunks of at most maxChars, accumulating whole words
// greedily. Words are never split: a single word longer than maxChars becomes
// its own oversized chunk. Appending a word reserves one character for the
// separator it displaces, so sentence tails break the way a reader expects.
//
// Joining the returned chunk texts with single spaces reconstructs the
// whitespace-normalized input exactly.
func Split(text string, maxChars int) []Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []Chunk
	var current strings.Builder
	wordCount := 0

	flush := func() {
		if current.Len() == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			Index:     len(chunks),
			Text:      current.String(),
			WordCount: wordCount,
		})
		current.Reset()
		wordCount = 0
	}

	for _, word := range words {
		if current.Len() == 0 {
			current.WriteString(word)
			wordCount = 1
			continue
		}
		if current.Len()+1+len(word) < maxChars {
			current.WriteByte(' ')
			current.WriteString(word)
			wordCount++
			continue
		}
		flush()
		current.WriteString(word)
		wordCount = 1
	}
	flush()

	return chunks
}

// Join reassembles chunk texts with single-space separators.
func Join(chunks []Chunk) string {
	parts := make([]string, len(chunks))
	for i, chunk := range chunks {
		parts[i] = chunk.Text
	}
	return strings.Join(parts, " ")
}
