package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/resume/model"
)

func TestParseExperienceSkipsLinesBeforeFirstHeader(t *testing.T) {
	got := Default().ParseExperience(Normalize("Worked on many interesting projects\nShort"))
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseExperienceEmitsEveryEntry(t *testing.T) {
	text := `Engineer | Initech | 2018 - 2020
Maintained the TPS reporting pipeline.
ok
Refactored the printer driver layer.
Intern – Globex
Lead - Hooli - Palo Alto`
	got := Default().ParseExperience(Normalize(text))
	require.Len(t, got, 3)

	assert.Equal(t, model.ExperienceEntry{
		Title:       "Engineer",
		Company:     "Initech",
		StartDate:   "2018",
		EndDate:     "2020",
		Description: "Maintained the TPS reporting pipeline. Refactored the printer driver layer.",
	}, got[0])
	assert.Equal(t, model.ExperienceEntry{Title: "Intern", Company: "Globex"}, got[1])
	assert.Equal(t, model.ExperienceEntry{Title: "Lead", Company: "Hooli"}, got[2])
}

func TestParseExperienceDateOnlyLine(t *testing.T) {
	ex := Default()

	// No open entry: the date line starts one.
	got := ex.ParseExperience(Normalize("2016 - 2019\nShipped the first mobile app."))
	require.Len(t, got, 1)
	assert.Equal(t, "2016", got[0].StartDate)
	assert.Equal(t, "2019", got[0].EndDate)
	assert.Empty(t, got[0].Title)
	assert.Equal(t, "Shipped the first mobile app.", got[0].Description)

	// Open entry already dated: the date line starts a new one.
	got = ex.ParseExperience(Normalize("Dev - Acme - Mar 2019 to Present\n2015 - 2017"))
	require.Len(t, got, 2)
	assert.Equal(t, "Mar 2019", got[0].StartDate)
	assert.Equal(t, "Present", got[0].EndDate)
	assert.Equal(t, "2015", got[1].StartDate)
}

func TestParseExperienceHeaderOnly(t *testing.T) {
	got := Default().ParseExperience(Normalize("-"))
	require.Len(t, got, 1)
	assert.Equal(t, model.ExperienceEntry{}, got[0])
}
