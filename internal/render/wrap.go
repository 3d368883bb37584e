package render

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

const tabSize = 8

// wrapText fills text into lines no wider than width display cells.
// Every whitespace character counts as a space, words are never split
// (including at hyphens), a word wider than width gets a line of its own,
// and whitespace at line boundaries is dropped except before the very
// first word.
func wrapText(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	chunks := splitChunks(normalizeSpace(text))

	var lines []string
	for len(chunks) > 0 {
		var line []string
		lineWidth := 0

		if len(lines) > 0 && isBlank(chunks[0]) {
			chunks = chunks[1:]
		}
		for len(chunks) > 0 {
			w := runewidth.StringWidth(chunks[0])
			if lineWidth+w > width {
				break
			}
			line = append(line, chunks[0])
			lineWidth += w
			chunks = chunks[1:]
		}
		if len(chunks) > 0 && len(line) == 0 {
			// Overlong word: place it whole.
			line = append(line, chunks[0])
			chunks = chunks[1:]
		}
		if len(line) > 0 && isBlank(line[len(line)-1]) {
			line = line[:len(line)-1]
		}
		if len(line) > 0 {
			lines = append(lines, strings.Join(line, ""))
		}
	}
	return lines
}

// normalizeSpace expands tabs and turns every other whitespace rune into a
// single space, keeping run lengths.
func normalizeSpace(text string) string {
	var b strings.Builder
	col := 0
	for _, r := range text {
		switch {
		case r == '\t':
			n := tabSize - col%tabSize
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case r == '\n' || r == '\r':
			b.WriteByte(' ')
			col = 0
		case unicode.IsSpace(r):
			b.WriteByte(' ')
			col++
		default:
			b.WriteRune(r)
			col += runewidth.RuneWidth(r)
		}
	}
	return b.String()
}

// splitChunks splits into alternating runs of words and spaces.
func splitChunks(s string) []string {
	var chunks []string
	start := 0
	inSpace := false
	for i, r := range s {
		space := r == ' '
		if i > start && space != inSpace {
			chunks = append(chunks, s[start:i])
			start = i
		}
		inSpace = space
	}
	if start < len(s) {
		chunks = append(chunks, s[start:])
	}
	return chunks
}

func isBlank(chunk string) bool {
	return strings.TrimLeft(chunk, " ") == ""
}
