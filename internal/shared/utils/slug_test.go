package utils

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple name", "DJ Shadow", "dj-shadow"},
		{"spanish diacritics", "DJ Niño Pérez", "dj-nino-perez"},
		{"special characters stripped", "M!x & M@tch", "mx-mtch"},
		{"collapses hyphen runs", "the  --  band", "the-band"},
		{"trims leading and trailing hyphens", "--electro--", "electro"},
		{"uppercase folded", "LOUD NOISES", "loud-noises"},
		{"empty input", "", ""},
		{"only symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.input))
		})
	}
}

func TestGenerateUniqueSlugAppendsSuffix(t *testing.T) {
	slug := GenerateUniqueSlug("DJ Shadow")

	require.True(t, strings.HasPrefix(slug, "dj-shadow-"), "got %q", slug)
	assert.Regexp(t, regexp.MustCompile(`^dj-shadow-[0-9a-f]{6}$`), slug)
}

func TestGenerateUniqueSlugFallsBackOnEmptyInput(t *testing.T) {
	slug := GenerateUniqueSlug("!!!")

	assert.Regexp(t, regexp.MustCompile(`^presskit-[0-9a-f]{6}$`), slug)
}

func TestGenerateUniqueSlugVaries(t *testing.T) {
	a := GenerateUniqueSlug("same name")
	b := GenerateUniqueSlug("same name")

	assert.NotEqual(t, a, b)
}
