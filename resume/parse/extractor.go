// Package parse reconstructs a structured résumé from linear decoded text.
//
// The pipeline is Normalize -> (field scans | Segment -> span parsers) ->
// assemble. No stage returns an error: sparse or odd input produces a sparse
// record, and a document with no recognizable headers produces a record that
// only carries whatever the field scans found.
package parse

import (
	"regexp"
	"sync"

	"resume-builder/resume/model"
)

// Extractor is an immutable, concurrency-safe extraction pipeline.
type Extractor struct {
	rules      Rules
	families   []headerFamily
	skillSplit *regexp.Regexp
}

// Analysis is the record plus the intermediate structures it was built from.
type Analysis struct {
	Record   model.ExtractedRecord
	Lines    LineStream
	Sections []Section
}

// New builds an Extractor from rules.
func New(rules Rules) (*Extractor, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	r := rules.clone()
	return &Extractor{
		rules:      r,
		families:   buildFamilies(r.Headers),
		skillSplit: compileDelimiters(r.SkillDelimiters),
	}, nil
}

var (
	defaultOnce      sync.Once
	defaultExtractor *Extractor
)

// Default returns an Extractor built from DefaultRules.
func Default() *Extractor {
	defaultOnce.Do(func() {
		ex, err := New(DefaultRules())
		if err != nil {
			panic("parse: default rules invalid: " + err.Error())
		}
		defaultExtractor = ex
	})
	return defaultExtractor
}

// Rules returns a copy of the table the extractor runs with.
func (e *Extractor) Rules() Rules {
	return e.rules.clone()
}

// Extract reconstructs a record from decoded text. It never fails.
func (e *Extractor) Extract(text string) model.ExtractedRecord {
	return e.Analyze(text).Record
}

// Analyze runs the pipeline and keeps the line stream and sections.
func (e *Extractor) Analyze(text string) Analysis {
	lines := Normalize(text)
	fields := e.ScanFields(text, lines)
	sections := e.Segment(lines)
	return Analysis{
		Record:   e.assemble(fields, sections),
		Lines:    lines,
		Sections: sections,
	}
}

func (e *Extractor) assemble(f Fields, sections []Section) model.ExtractedRecord {
	rec := model.ExtractedRecord{
		PersonalInfo: model.PersonalInfo{
			Name:     f.Name,
			Email:    f.Email,
			Phone:    f.Phone,
			LinkedIn: f.LinkedIn,
			Website:  f.Website,
		},
	}

	if summaries := sectionsOf(sections, SectionSummary); len(summaries) > 0 {
		rec.Summary = e.ParseSummary(summaries[0].Lines)
	}

	for _, s := range sectionsOf(sections, SectionExperience) {
		rec.Experience = append(rec.Experience, e.ParseExperience(s.Lines)...)
	}

	for _, s := range sectionsOf(sections, SectionEducation) {
		if entries := e.ParseEducation(s.Lines); len(entries) > 0 {
			rec.Education = entries
			break
		}
	}

	for _, s := range sectionsOf(sections, SectionSkills) {
		rec.Skills = append(rec.Skills, e.ParseSkills(s.Lines)...)
	}
	if len(rec.Skills) > e.rules.MaxSkills {
		rec.Skills = rec.Skills[:e.rules.MaxSkills]
	}

	return rec.Normalize()
}
