package doi

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTwoDOIsWithTrailingPunctuation(t *testing.T) {
	text := "See 10.1038/s41586-020-1234-5 and also 10.1016/j.cell.2019.05.011."

	dois := Extract(text, 0)

	assert.Equal(t, []string{
		"10.1038/s41586-020-1234-5",
		"10.1016/j.cell.2019.05.011",
	}, dois)
}

func TestExtractFromDOIURLs(t *testing.T) {
	text := "Available at https://doi.org/10.1038/nature12373 (accessed 2024)."

	dois := Extract(text, 0)

	assert.Equal(t, []string{"10.1038/nature12373"}, dois)
}

func TestExtractDeduplicatesCaseInsensitively(t *testing.T) {
	text := "10.1038/NATURE12373 cited twice as 10.1038/nature12373 here"

	dois := Extract(text, 0)

	assert.Len(t, dois, 1)
}

func TestExtractPreservesOrder(t *testing.T) {
	dois := Extract("first 10.1111/first.ref then 10.5555/second.ref", 0)

	assert.Equal(t, []string{"10.1111/first.ref", "10.5555/second.ref"}, dois)
}

func TestExtractCapsResultCount(t *testing.T) {
	var text string
	for i := 0; i < 20; i++ {
		text += fmt.Sprintf("10.1000/ref-%d ", i)
	}

	dois := Extract(text, 0)
	assert.Len(t, dois, DefaultMaxDOIs)

	dois = Extract(text, 3)
	assert.Len(t, dois, 3)
}

func TestExtractNoDOIs(t *testing.T) {
	assert.Nil(t, Extract("no identifiers in this text at all", 0))
	assert.Nil(t, Extract("", 0))
}

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "10.1038/nature12373", "10.1038/nature12373"},
		{"https prefix", "https://doi.org/10.1038/nature12373", "10.1038/nature12373"},
		{"doi prefix", "doi:10.1038/nature12373", "10.1038/nature12373"},
		{"trailing period", "10.1038/nature12373.", "10.1038/nature12373"},
		{"trailing bracket", "10.1038/nature12373)", "10.1038/nature12373"},
		{"empty suffix", "10.1038/", ""},
		{"no slash", "10.1038", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.input))
		})
	}
}
