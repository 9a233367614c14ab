package parse

import (
	"strings"
	"unicode/utf8"
)

// ParseSummary joins the first SummaryLines lines and truncates the result
// to SummaryMaxLength runes.
func (e *Extractor) ParseSummary(lines LineStream) string {
	n := min(len(lines), e.rules.SummaryLines)
	joined := strings.Join(lines[:n].Texts(), " ")
	if utf8.RuneCountInString(joined) <= e.rules.SummaryMaxLength {
		return joined
	}
	runes := []rune(joined)
	return strings.TrimSpace(string(runes[:e.rules.SummaryMaxLength]))
}
