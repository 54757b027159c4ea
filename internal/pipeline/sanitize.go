package pipeline

import (
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`https?://\S+`)

// Narration joins a story's title and body into one narration text. The title
// gets a closing period when it carries no terminal punctuation so the
// synthesizer pauses between title and body.
func Narration(title, body string) string {
	text := strings.TrimSpace(title)
	if text != "" && !strings.ContainsAny(text[len(text)-1:], ".!?") {
		text += "."
	}
	return Sanitize(text + " " + body)
}

// Sanitize strips URLs and non-printable or non-ASCII characters, then
// collapses all whitespace runs to single spaces. The synthesizer voice
// models are trained on plain English text; emoji and markdown link tails
// come out as garbage audio.
func Sanitize(text string) string {
	text = urlPattern.ReplaceAllString(text, " ")
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			sb.WriteByte(' ')
		case r >= 0x20 && r < 0x7f:
			sb.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
