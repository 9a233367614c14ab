package parse

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rules is the keyword and threshold table the extractor is built from.
// An Extractor copies its Rules on construction; changing a Rules value after
// New has no effect on extractors already built from it.
type Rules struct {
	Headers HeaderRules `yaml:"headers"`

	// NameMaxLength bounds the first line accepted as the candidate's name (runes, exclusive).
	NameMaxLength int `yaml:"name_max_length"`
	// MaxSectionLines caps how many lines a single section collects.
	MaxSectionLines int `yaml:"max_section_lines"`

	SkillDelimiters []string `yaml:"skill_delimiters"`
	SkillMaxLength  int      `yaml:"skill_max_length"`
	MaxSkills       int      `yaml:"max_skills"`

	// EntrySeparators mark an experience line as the header of a new entry and
	// split it into title and company.
	EntrySeparators      []string `yaml:"entry_separators"`
	MinDescriptionLength int      `yaml:"min_description_length"`

	MinDegreeLength     int      `yaml:"min_degree_length"`
	InstitutionKeywords []string `yaml:"institution_keywords"`

	SummaryLines     int `yaml:"summary_lines"`
	SummaryMaxLength int `yaml:"summary_max_length"`
}

// HeaderRules lists the keyword family for each section kind. A line is a
// header when it contains any keyword of a family, case-insensitively.
// Families are tried in the order Skills, Experience, Education, Summary, Unknown.
// Unknown keywords also require a short line that does not end like a sentence.
type HeaderRules struct {
	Skills     []string `yaml:"skills"`
	Experience []string `yaml:"experience"`
	Education  []string `yaml:"education"`
	Summary    []string `yaml:"summary"`
	Unknown    []string `yaml:"unknown"`
}

// DefaultRules returns the built-in English rule table.
func DefaultRules() Rules {
	return Rules{
		Headers: HeaderRules{
			Skills:     []string{"skills", "technical skills", "core competencies", "technologies"},
			Experience: []string{"experience", "employment", "work history", "professional experience"},
			Education:  []string{"education", "academic background", "qualifications"},
			Summary:    []string{"summary", "objective", "profile", "about"},
			Unknown:    []string{"projects", "certifications", "awards", "publications", "references", "interests", "volunteer"},
		},
		NameMaxLength:        50,
		MaxSectionLines:      60,
		SkillDelimiters:      []string{",", "•", "|"},
		SkillMaxLength:       50,
		MaxSkills:            20,
		EntrySeparators:      []string{"–", "-", "|"},
		MinDescriptionLength: 10,
		MinDegreeLength:      5,
		InstitutionKeywords:  []string{"university", "college", "institute", "school", "academy"},
		SummaryLines:         3,
		SummaryMaxLength:     500,
	}
}

// ParseRules decodes a YAML rule table. Keys missing from the document keep
// their DefaultRules value.
func ParseRules(data []byte) (Rules, error) {
	rules := DefaultRules()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("decode rules: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

// LoadRules reads a YAML rule table from path.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules %s: %w", path, err)
	}
	rules, err := ParseRules(data)
	if err != nil {
		return Rules{}, fmt.Errorf("rules %s: %w", path, err)
	}
	return rules, nil
}

// Validate rejects tables the extractor cannot run with.
func (r Rules) Validate() error {
	var errs []error
	positive := []struct {
		key string
		val int
	}{
		{"name_max_length", r.NameMaxLength},
		{"max_section_lines", r.MaxSectionLines},
		{"skill_max_length", r.SkillMaxLength},
		{"max_skills", r.MaxSkills},
		{"summary_lines", r.SummaryLines},
		{"summary_max_length", r.SummaryMaxLength},
	}
	for _, p := range positive {
		if p.val <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", p.key))
		}
	}
	if r.MinDescriptionLength < 0 {
		errs = append(errs, errors.New("min_description_length must not be negative"))
	}
	if r.MinDegreeLength < 0 {
		errs = append(errs, errors.New("min_degree_length must not be negative"))
	}
	for _, sep := range r.EntrySeparators {
		if sep == "" {
			errs = append(errs, errors.New("entry_separators must not contain empty strings"))
			break
		}
	}
	for _, d := range r.SkillDelimiters {
		if d == "" {
			errs = append(errs, errors.New("skill_delimiters must not contain empty strings"))
			break
		}
	}
	return errors.Join(errs...)
}

func (r Rules) clone() Rules {
	out := r
	out.Headers = HeaderRules{
		Skills:     normalizeKeywords(r.Headers.Skills),
		Experience: normalizeKeywords(r.Headers.Experience),
		Education:  normalizeKeywords(r.Headers.Education),
		Summary:    normalizeKeywords(r.Headers.Summary),
		Unknown:    normalizeKeywords(r.Headers.Unknown),
	}
	out.SkillDelimiters = append([]string(nil), r.SkillDelimiters...)
	out.EntrySeparators = append([]string(nil), r.EntrySeparators...)
	out.InstitutionKeywords = normalizeKeywords(r.InstitutionKeywords)
	return out
}

func normalizeKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	for _, kw := range in {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
