package parse

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

func compileDelimiters(delims []string) *regexp.Regexp {
	if len(delims) == 0 {
		return nil
	}
	quoted := make([]string, len(delims))
	for i, d := range delims {
		quoted[i] = regexp.QuoteMeta(d)
	}
	return regexp.MustCompile(strings.Join(quoted, "|"))
}

// ParseSkills turns skills-span lines into at most MaxSkills tokens, in order.
func (e *Extractor) ParseSkills(lines LineStream) []string {
	joined := strings.Join(lines.Texts(), " ")
	var parts []string
	if e.skillSplit != nil {
		parts = e.skillSplit.Split(joined, -1)
	} else {
		parts = []string{joined}
	}

	skills := make([]string, 0, min(len(parts), e.rules.MaxSkills))
	for _, p := range parts {
		if len(skills) == e.rules.MaxSkills {
			break
		}
		p = strings.TrimSpace(p)
		if p == "" || utf8.RuneCountInString(p) > e.rules.SkillMaxLength {
			continue
		}
		skills = append(skills, p)
	}
	return skills
}
