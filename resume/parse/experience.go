package parse

import (
	"strings"
	"unicode/utf8"

	"resume-builder/resume/model"
)

// experienceState is the accumulator folded over an experience span.
// building=false is the NoCurrentEntry state; building=true is BuildingEntry
// with current holding the partial entry.
type experienceState struct {
	building bool
	current  model.ExperienceEntry
	done     []model.ExperienceEntry
}

// ParseExperience folds the span's lines into experience entries.
func (e *Extractor) ParseExperience(lines LineStream) []model.ExperienceEntry {
	final := fold(lines, experienceState{}, e.stepExperience)
	return final.finish()
}

func (e *Extractor) stepExperience(s experienceState, line Line) experienceState {
	if e.isEntryHeader(line.Text) {
		span, hasDates := liftDateRange(line.Text)
		title, company := e.splitHeader(span.rest)

		if title == "" && company == "" && hasDates && s.building && s.current.StartDate == "" && s.current.EndDate == "" {
			s.current.StartDate = span.start
			s.current.EndDate = span.end
			return s
		}

		if s.building {
			s.done = append(s.done, s.current)
		}
		s.building = true
		s.current = model.ExperienceEntry{
			Title:     title,
			Company:   company,
			StartDate: span.start,
			EndDate:   span.end,
		}
		return s
	}

	if !s.building || utf8.RuneCountInString(line.Text) <= e.rules.MinDescriptionLength {
		return s
	}
	if s.current.Description == "" {
		s.current.Description = line.Text
	} else {
		s.current.Description += " " + line.Text
	}
	return s
}

func (s experienceState) finish() []model.ExperienceEntry {
	out := s.done
	if s.building {
		out = append(out, s.current)
	}
	if out == nil {
		out = []model.ExperienceEntry{}
	}
	return out
}

func (e *Extractor) isEntryHeader(line string) bool {
	for _, sep := range e.rules.EntrySeparators {
		if strings.Contains(line, sep) {
			return true
		}
	}
	return false
}

// splitHeader splits on any entry separator; the first two non-empty
// segments are title and company, anything after is ignored.
func (e *Extractor) splitHeader(line string) (string, string) {
	segments := []string{line}
	for _, sep := range e.rules.EntrySeparators {
		var next []string
		for _, seg := range segments {
			next = append(next, strings.Split(seg, sep)...)
		}
		segments = next
	}

	var parts []string
	for _, seg := range segments {
		if seg = cleanFragment(seg); seg != "" {
			parts = append(parts, seg)
		}
		if len(parts) == 2 {
			break
		}
	}
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], parts[1]
	}
}

func fold[T, A any](items []T, acc A, step func(A, T) A) A {
	for _, it := range items {
		acc = step(acc, it)
	}
	return acc
}
