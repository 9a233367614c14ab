package parse

import (
	"strings"
	"unicode"
)

// Line is a trimmed, non-empty line and its 1-indexed position in the stream.
type Line struct {
	No   int
	Text string
}

// LineStream is the ordered line sequence every later stage works on.
type LineStream []Line

// Normalize splits decoded text into trimmed, non-empty lines.
func Normalize(text string) LineStream {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	raw := strings.Split(text, "\n")
	out := make(LineStream, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimFunc(l, unicode.IsSpace)
		if l == "" {
			continue
		}
		out = append(out, Line{No: len(out) + 1, Text: l})
	}
	return out
}

// Texts returns the line contents without positions.
func (s LineStream) Texts() []string {
	out := make([]string, len(s))
	for i, l := range s {
		out[i] = l.Text
	}
	return out
}
