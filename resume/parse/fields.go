package parse

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailPattern    = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern    = regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedInPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[A-Za-z0-9_-]+`)
	websitePattern  = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s,|;<>()]+|\bgithub\.com/[A-Za-z0-9_.-]+`)
)

// Fields holds the singleton facts scanned from the full decoded text.
type Fields struct {
	Name     string
	Email    string
	Phone    string
	LinkedIn string
	Website  string
}

// ScanFields runs every field extractor. Each one is independent of the others.
func (e *Extractor) ScanFields(text string, lines LineStream) Fields {
	return Fields{
		Name:     e.findName(lines),
		Email:    FindEmail(text),
		Phone:    FindPhone(text),
		LinkedIn: FindLinkedIn(text),
		Website:  FindWebsite(text),
	}
}

// FindEmail returns the first email-shaped substring, or "".
func FindEmail(text string) string {
	return emailPattern.FindString(text)
}

// FindPhone returns the first NANP-style phone number, or "".
func FindPhone(text string) string {
	return strings.TrimSpace(phonePattern.FindString(text))
}

// FindLinkedIn returns the first linkedin.com/in/<handle> substring, or "".
func FindLinkedIn(text string) string {
	return linkedInPattern.FindString(text)
}

// FindWebsite returns the first personal link that is not a LinkedIn profile.
func FindWebsite(text string) string {
	for _, m := range websitePattern.FindAllString(text, -1) {
		if strings.Contains(strings.ToLower(m), "linkedin.com") {
			continue
		}
		if m = strings.TrimRight(m, ".:"); m != "" {
			return m
		}
	}
	return ""
}

// findName takes the first line when it is short and carries no email.
// Documents that open with a header or a decoder artifact yield a wrong or
// empty name; the form review step is expected to catch that.
func (e *Extractor) findName(lines LineStream) string {
	if len(lines) == 0 {
		return ""
	}
	first := lines[0].Text
	if utf8.RuneCountInString(first) >= e.rules.NameMaxLength {
		return ""
	}
	if emailPattern.MatchString(first) {
		return ""
	}
	return first
}
