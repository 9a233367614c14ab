package parse

import (
	"strings"
	"unicode/utf8"
)

// SectionKind labels a span of lines.
type SectionKind string

const (
	SectionSummary    SectionKind = "summary"
	SectionExperience SectionKind = "experience"
	SectionEducation  SectionKind = "education"
	SectionSkills     SectionKind = "skills"
	SectionUnknown    SectionKind = "unknown"
)

// Section is a header line plus the lines attributed to it. StartLine is the
// header's position; Lines never includes the header itself.
type Section struct {
	Kind      SectionKind
	StartLine int
	Lines     LineStream
}

type headerFamily struct {
	kind     SectionKind
	keywords []string
}

func buildFamilies(h HeaderRules) []headerFamily {
	return []headerFamily{
		{kind: SectionSkills, keywords: h.Skills},
		{kind: SectionExperience, keywords: h.Experience},
		{kind: SectionEducation, keywords: h.Education},
		{kind: SectionSummary, keywords: h.Summary},
		{kind: SectionUnknown, keywords: h.Unknown},
	}
}

// HeaderKind reports which family, if any, recognizes line as a section header.
// The first family in priority order wins. Unknown keywords only count on a
// line shaped like a heading, so body text mentioning "projects" stays body.
func (e *Extractor) HeaderKind(line string) (SectionKind, bool) {
	lower := strings.ToLower(line)
	for _, fam := range e.families {
		if fam.kind == SectionUnknown && !looksLikeHeading(line) {
			continue
		}
		for _, kw := range fam.keywords {
			if strings.Contains(lower, kw) {
				return fam.kind, true
			}
		}
	}
	return "", false
}

const (
	headingMaxRunes = 30
	headingMaxWords = 4
)

// looksLikeHeading reports whether line is short and does not read as a
// sentence.
func looksLikeHeading(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || utf8.RuneCountInString(trimmed) > headingMaxRunes {
		return false
	}
	if len(strings.Fields(trimmed)) > headingMaxWords {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(trimmed)
	return !strings.ContainsRune(".!?;,", last)
}

// Segment partitions lines into sections. Lines before the first header, and
// lines past MaxSectionLines within a section, belong to no section.
func (e *Extractor) Segment(lines LineStream) []Section {
	var sections []Section
	for _, line := range lines {
		if kind, ok := e.HeaderKind(line.Text); ok {
			sections = append(sections, Section{Kind: kind, StartLine: line.No})
			continue
		}
		if len(sections) == 0 {
			continue
		}
		cur := &sections[len(sections)-1]
		if len(cur.Lines) >= e.rules.MaxSectionLines {
			continue
		}
		cur.Lines = append(cur.Lines, line)
	}
	return sections
}

func sectionsOf(sections []Section, kind SectionKind) []Section {
	var out []Section
	for _, s := range sections {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}
