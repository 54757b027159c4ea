package timeline

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

const srtWrapWidth = 80

// WriteSRT serializes cues in SubRip format. Silent cues render as a single
// space so players keep the caption area stable through pauses.
func WriteSRT(w io.Writer, cues []Cue) error {
	buffered := bufio.NewWriter(w)
	for i, cue := range cues {
		fmt.Fprintf(buffered, "%d\n", i+1)
		fmt.Fprintf(buffered, "%s --> %s\n", FormatTimestamp(cue.Start), FormatTimestamp(cue.End))
		text := cue.Text
		if text == "" {
			text = " "
		}
		for _, line := range wrapText(text, srtWrapWidth) {
			fmt.Fprintln(buffered, line)
		}
		fmt.Fprintln(buffered)
	}
	return buffered.Flush()
}

// WriteSRTFile writes cues to path, creating or truncating the file.
func WriteSRTFile(path string, cues []Cue) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create srt: %w", err)
	}
	if err := WriteSRT(file, cues); err != nil {
		_ = file.Close()
		return fmt.Errorf("write srt: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close srt: %w", err)
	}
	return nil
}

// FormatTimestamp renders seconds as an SRT timestamp (HH:MM:SS,mmm).
func FormatTimestamp(seconds float64) string {
	totalMs := int64(math.Round(seconds * 1000))
	if totalMs < 0 {
		totalMs = 0
	}
	ms := totalMs % 1000
	totalSec := totalMs / 1000
	s := totalSec % 60
	totalMin := totalSec / 60
	m := totalMin % 60
	h := totalMin / 60
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

func wrapText(s string, width int) []string {
	var lines []string
	var current strings.Builder
	for _, word := range strings.Fields(s) {
		if current.Len() > 0 && current.Len()+1+len(word) > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	if len(lines) == 0 {
		lines = append(lines, " ")
	}
	return lines
}
