package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderKindPriority(t *testing.T) {
	ex := Default()
	cases := []struct {
		line string
		kind SectionKind
		ok   bool
	}{
		{"EXPERIENCE", SectionExperience, true},
		{"Professional Experience", SectionExperience, true},
		{"Education & Skills", SectionSkills, true},
		{"Work history and education", SectionExperience, true},
		{"Career Objective", SectionSummary, true},
		{"Side Projects", SectionUnknown, true},
		{"Awards:", SectionUnknown, true},
		{"Delivered 12 projects for enterprise clients.", "", false},
		{"Volunteer work with local schools every weekend", "", false},
		{"Senior Engineer - Acme Corp", "", false},
	}
	for _, tc := range cases {
		kind, ok := ex.HeaderKind(tc.line)
		assert.Equal(t, tc.ok, ok, tc.line)
		assert.Equal(t, tc.kind, kind, tc.line)
	}
}

func TestSegmentContainment(t *testing.T) {
	ex := Default()
	lines := Normalize("Jane Doe\nintro line\nSkills\nGo, SQL\nExperience\nDev - Acme\nBuilt billing systems.\nEducation\nB.S. Physics\n")
	sections := ex.Segment(lines)
	require.Len(t, sections, 3)

	assert.Equal(t, SectionSkills, sections[0].Kind)
	assert.Equal(t, 3, sections[0].StartLine)
	assert.Equal(t, []string{"Go, SQL"}, sections[0].Lines.Texts())
	assert.Equal(t, SectionExperience, sections[1].Kind)
	assert.Equal(t, []string{"Dev - Acme", "Built billing systems."}, sections[1].Lines.Texts())
	assert.Equal(t, SectionEducation, sections[2].Kind)
	assert.Equal(t, []string{"B.S. Physics"}, sections[2].Lines.Texts())

	for i, s := range sections {
		next := len(lines) + 1
		if i+1 < len(sections) {
			next = sections[i+1].StartLine
		}
		for _, l := range s.Lines {
			assert.Greater(t, l.No, s.StartLine)
			assert.Less(t, l.No, next)
			_, isHeader := ex.HeaderKind(l.Text)
			assert.False(t, isHeader, l.Text)
		}
	}
}

func TestSegmentCapsSectionLength(t *testing.T) {
	rules := DefaultRules()
	rules.MaxSectionLines = 2
	ex, err := New(rules)
	require.NoError(t, err)

	sections := ex.Segment(Normalize("Skills\nGo\nSQL\nRust\nZig\nEducation\nB.A. Music"))
	require.Len(t, sections, 2)
	assert.Equal(t, []string{"Go", "SQL"}, sections[0].Lines.Texts())
	assert.Equal(t, []string{"B.A. Music"}, sections[1].Lines.Texts())
}

func TestSegmentUnknownHeaderClosesSpan(t *testing.T) {
	rec := Default().Extract("Skills\nGo, SQL\nProjects\nInvoice exporter, Chat bot\n")
	assert.Equal(t, []string{"Go", "SQL"}, rec.Skills)
}

func TestExperienceKeepsEntriesAfterUnknownKeywordInBody(t *testing.T) {
	rec := Default().Extract("Jane Doe\nEXPERIENCE\nSenior Engineer - Acme Corp\nDelivered 12 projects for enterprise clients.\nStaff Engineer - Globex\nOwned the ledger service and its migration.\nEDUCATION\nB.S. Physics\n")
	require.Len(t, rec.Experience, 2)
	assert.Equal(t, "Senior Engineer", rec.Experience[0].Title)
	assert.Equal(t, "Acme Corp", rec.Experience[0].Company)
	assert.Equal(t, "Delivered 12 projects for enterprise clients.", rec.Experience[0].Description)
	assert.Equal(t, "Staff Engineer", rec.Experience[1].Title)
	assert.Equal(t, "Globex", rec.Experience[1].Company)
}

func TestSegmentNoHeaders(t *testing.T) {
	assert.Empty(t, Default().Segment(Normalize("just\nsome\ntext")))
}

func TestInlineHeaderTextIsNotParsed(t *testing.T) {
	rec := Default().Extract("Skills: Go, SQL\nRust, Zig\n")
	assert.Equal(t, []string{"Rust", "Zig"}, rec.Skills)
}
