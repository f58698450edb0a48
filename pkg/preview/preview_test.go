package preview

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestPlainTextStripsMarkdown(t *testing.T) {
	md := "## Lecture Recap\n\nThis covers **photosynthesis** and the `calvin` cycle.\n\n* light reactions\n* dark reactions"

	got := PlainText(md)

	assert.Equal(t, "Lecture Recap This covers photosynthesis and the calvin cycle. light reactions dark reactions", got)
}

func TestPlainTextEmpty(t *testing.T) {
	assert.Equal(t, "", PlainText("   \n\t"))
}

func TestExcerptTruncatesToMaxRunes(t *testing.T) {
	long := strings.Repeat("a", 200)

	got := Excerpt(long, DefaultLength)

	assert.Equal(t, DefaultLength, utf8.RuneCountInString(got))
}

func TestExcerptFallbackWhenEmpty(t *testing.T) {
	assert.Equal(t, Fallback, Excerpt("", DefaultLength))
}

func TestExcerptShortSummaryUnchanged(t *testing.T) {
	assert.Equal(t, "Short note.", Excerpt("Short note.", DefaultLength))
}
