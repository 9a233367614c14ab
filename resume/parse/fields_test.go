package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindPhone(t *testing.T) {
	cases := map[string]string{
		"call (415) 555-0100 today": "(415) 555-0100",
		"+1 415-555-0100":           "+1 415-555-0100",
		"415.555.0199":              "415.555.0199",
		"4155550100":                "4155550100",
		"ext 12-34":                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, FindPhone(in), in)
	}
}

func TestFindLinkedInAndWebsite(t *testing.T) {
	text := "links: https://www.linkedin.com/in/jane-doe_1, www.janedoe.io."
	assert.Equal(t, "linkedin.com/in/jane-doe_1", FindLinkedIn(text))
	assert.Equal(t, "www.janedoe.io", FindWebsite(text))

	assert.Equal(t, "github.com/janedoe", FindWebsite("code at github.com/janedoe"))
	assert.Empty(t, FindWebsite("https://linkedin.com/in/x only"))
	assert.Empty(t, FindLinkedIn("linkedin.com/company/acme"))
}

func TestFindEmailFirstWins(t *testing.T) {
	assert.Equal(t, "a@b.co", FindEmail("a@b.co b@c.co"))
	assert.Empty(t, FindEmail("no at sign here"))
	assert.Empty(t, FindEmail("user@localhost"))
}

func TestFindName(t *testing.T) {
	ex := Default()
	assert.Equal(t, "Jane Doe", ex.findName(Normalize("\n  Jane Doe  \nSkills")))
	assert.Empty(t, ex.findName(Normalize("jane@example.com\nJane Doe")))
	assert.Empty(t, ex.findName(Normalize(strings.Repeat("x", 50))))
	assert.Equal(t, strings.Repeat("é", 49), ex.findName(Normalize(strings.Repeat("é", 49))))
	assert.Empty(t, ex.findName(nil))

	// A header on the first line is taken as the name.
	assert.Equal(t, "RESUME", ex.findName(Normalize("RESUME\nJane Doe")))
}
