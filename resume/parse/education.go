package parse

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"resume-builder/resume/model"
)

var gpaPattern = regexp.MustCompile(`(?i)\bgpa\b\s*[:\-]?\s*(\d(?:\.\d{1,2})?)(?:\s*/\s*\d(?:\.\d{1,2})?)?`)

// ParseEducation returns at most one entry: the first plausible degree line
// of the span. Lines left empty once GPA and dates are removed are skipped. Institution, dates and GPA are filled only when the span makes
// them obvious; otherwise they stay empty.
func (e *Extractor) ParseEducation(lines LineStream) []model.EducationEntry {
	degreeAt := -1
	entry := model.EducationEntry{}
	for i, l := range lines {
		if utf8.RuneCountInString(l.Text) <= e.rules.MinDegreeLength {
			continue
		}
		degreeLine := stripGPA(l.Text)
		degree, start, end := splitDates(degreeLine)
		if degree == "" {
			degree = cleanFragment(degreeLine)
		}
		if degree == "" {
			continue
		}
		degreeAt = i
		entry.Degree, entry.StartDate, entry.EndDate = degree, start, end
		break
	}
	if degreeAt < 0 {
		return []model.EducationEntry{}
	}

	if degreeAt+1 < len(lines) {
		next := lines[degreeAt+1].Text
		if e.mentionsInstitution(next) {
			inst, start, end := splitDates(stripGPA(next))
			entry.Institution = inst
			if entry.StartDate == "" && entry.EndDate == "" {
				entry.StartDate, entry.EndDate = start, end
			}
		}
	}

	for _, l := range lines {
		if m := gpaPattern.FindStringSubmatch(l.Text); m != nil {
			entry.GPA = m[1]
			break
		}
	}
	return []model.EducationEntry{entry}
}

func (e *Extractor) mentionsInstitution(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range e.rules.InstitutionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// splitDates lifts a date range, or failing that a single graduation date,
// off line. A single date is reported as the end date.
func splitDates(line string) (text, start, end string) {
	if span, ok := liftDateRange(line); ok {
		return cleanFragment(span.rest), span.start, span.end
	}
	if date, rest, ok := liftSingleDate(line); ok {
		return cleanFragment(rest), "", date
	}
	return cleanFragment(line), "", ""
}

func stripGPA(line string) string {
	return strings.TrimSpace(gpaPattern.ReplaceAllString(line, ""))
}
