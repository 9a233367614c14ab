package parse

import (
	"regexp"
	"strings"
)

const (
	monthName = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`
	dateToken = `(?:` + monthName + `\.?\s+\d{4}|\d{1,2}/\d{4}|\d{4})`
)

var (
	dateRangePattern  = regexp.MustCompile(`(?i)\b(` + dateToken + `)\s*(?:–|—|-|to)\s*(` + dateToken + `|present|current|now)\b`)
	singleDatePattern = regexp.MustCompile(`(?i)\b` + dateToken + `\b`)
)

// dateSpan is a literal date range lifted out of a line. Values are passed
// through untouched; nothing here parses calendar dates.
type dateSpan struct {
	start string
	end   string
	rest  string
}

// liftDateRange removes the first date range from line and returns both parts.
func liftDateRange(line string) (dateSpan, bool) {
	loc := dateRangePattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return dateSpan{rest: line}, false
	}
	return dateSpan{
		start: line[loc[2]:loc[3]],
		end:   line[loc[4]:loc[5]],
		rest:  strings.TrimSpace(line[:loc[0]] + " " + line[loc[1]:]),
	}, true
}

// liftSingleDate removes the first standalone date token from line.
func liftSingleDate(line string) (string, string, bool) {
	loc := singleDatePattern.FindStringIndex(line)
	if loc == nil {
		return "", line, false
	}
	return line[loc[0]:loc[1]], strings.TrimSpace(line[:loc[0]] + " " + line[loc[1]:]), true
}

// cleanFragment trims separators and bracket debris left around a lifted date.
func cleanFragment(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), ",;:|–—-()[] "))
}
