package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSectionsAndSubsections(t *testing.T) {
	input := "Intro para.\n\n## Section A\nBody A\n\n### Sub A1\nBody A1"

	got := Parse(input)

	assert.Equal(t, "Intro para.", got.Summary)
	assert.Empty(t, got.KeyPoints)
	require.Len(t, got.Sections, 1)
	assert.Equal(t, "Section A", got.Sections[0].Title)
	assert.Equal(t, "Body A\n\n", got.Sections[0].Content)
	require.Len(t, got.Sections[0].Subsections, 1)
	assert.Equal(t, "Sub A1", got.Sections[0].Subsections[0].Title)
	assert.Equal(t, "Body A1\n\n", got.Sections[0].Subsections[0].Content)
}

func TestParseKeyPoints(t *testing.T) {
	input := "Overview of the lecture.\n\nKey Points:\n* First idea\n- Second idea\nNot a bullet\n\n## Details\nMore text"

	got := Parse(input)

	assert.Equal(t, "Overview of the lecture.", got.Summary)
	assert.Equal(t, []string{"First idea", "Second idea"}, got.KeyPoints)
	require.Len(t, got.Sections, 1)
	assert.Equal(t, "Details", got.Sections[0].Title)
}

func TestParseContentBeforeSubsectionStaysInSection(t *testing.T) {
	input := "Summary text.\n\n## Section\n\nLoose paragraph\n\n### Sub\n\nSub paragraph"

	got := Parse(input)

	require.Len(t, got.Sections, 1)
	assert.Equal(t, "Loose paragraph\n\n", got.Sections[0].Content)
	require.Len(t, got.Sections[0].Subsections, 1)
	assert.Equal(t, "Sub paragraph\n\n", got.Sections[0].Subsections[0].Content)
}

func TestParseNoHeaders(t *testing.T) {
	got := Parse("Just one plain paragraph with no structure at all.")

	assert.Equal(t, "Just one plain paragraph with no structure at all.", got.Summary)
	assert.Empty(t, got.KeyPoints)
	assert.Empty(t, got.Sections)
}

func TestParseEmptyInput(t *testing.T) {
	got := Parse("")

	assert.Equal(t, "", got.Summary)
	assert.NotNil(t, got.KeyPoints)
	assert.NotNil(t, got.Sections)
}

func TestParseSubsectionWithoutSectionIsDropped(t *testing.T) {
	got := Parse("Intro.\n\n### Orphan Sub\nBody")

	assert.Empty(t, got.Sections)
}
