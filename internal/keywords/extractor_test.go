package keywords

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractProducesNonEmptyQuery(t *testing.T) {
	e := New(DefaultConfig())

	query := e.Extract("We present a novel deep learning architecture for protein structure prediction using transformer networks and attention mechanisms for protein folding.")

	assert.NotEmpty(t, query)
	assert.Contains(t, query, "protein")
}

func TestExtractFrequencyRanking(t *testing.T) {
	e := New(DefaultConfig())

	// "protein" appears three times, more than any other survivor, so it must
	// lead the query.
	query := e.Extract("protein interactions govern protein folding; misfolded protein aggregates cause disease pathways")

	parts := strings.Fields(query)
	assert.Equal(t, "protein", parts[0])
}

func TestExtractStopWordsOnlyFallsBack(t *testing.T) {
	e := New(DefaultConfig())

	input := "the of and with for but not"
	query := e.Extract(input)

	// All tokens are stop-words, so the fallback keeps the leading raw words.
	assert.NotEmpty(t, query)
	assert.Equal(t, "the of and with for", query)
}

func TestExtractShortTokensOnlyFallsBack(t *testing.T) {
	e := New(DefaultConfig())

	query := e.Extract("a bb cc dd")
	assert.NotEmpty(t, query)
}

func TestExtractBlankInput(t *testing.T) {
	e := New(DefaultConfig())

	assert.Equal(t, "", e.Extract(""))
	assert.Equal(t, "", e.Extract("   \t\n"))
}

func TestExtractPreservesAcronyms(t *testing.T) {
	e := New(DefaultConfig())

	query := e.Extract("CRISPR screening identified CRISPR targets; genome editing with CRISPR constructs enables therapeutic genome correction strategies")

	assert.Contains(t, query, "CRISPR")
	assert.NotContains(t, query, "crispr")
}

func TestExtractPreservesHyphenatedCompounds(t *testing.T) {
	e := New(DefaultConfig())

	query := e.Extract("CAR-T cellular therapy outcomes: CAR-T persistence predicts durable remission in hematologic malignancies following CAR-T infusion")

	assert.Contains(t, query, "CAR-T")
}

func TestExtractRespectsMaxKeywords(t *testing.T) {
	e := New(Config{MaxKeywords: 3, MinTokenLength: 4, MinSurvivors: 3, FallbackWords: 5})

	query := e.Extract("alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima")

	assert.Len(t, strings.Fields(query), 3)
}

func TestExtractLowercasesRegularTokens(t *testing.T) {
	e := New(DefaultConfig())

	query := e.Extract("Machine Learning Methods Improve Clinical Outcome Prediction Models Substantially")

	assert.Equal(t, query, strings.ToLower(query))
}

func TestTokenizeStripsPunctuation(t *testing.T) {
	tokens := tokenize("results (n=42): significant, p<0.05; done.")

	for _, tok := range tokens {
		assert.NotContains(t, tok, "(")
		assert.NotContains(t, tok, ",")
		assert.NotContains(t, tok, ";")
	}
}

func TestTokenizeDropsBareHyphens(t *testing.T) {
	tokens := tokenize("alpha - beta -- gamma")

	assert.Equal(t, []string{"alpha", "beta", "gamma"}, tokens)
}

func TestIsAcronym(t *testing.T) {
	assert.True(t, isAcronym("CRISPR"))
	assert.True(t, isAcronym("CAR-T"))
	assert.True(t, isAcronym("mRNA"))
	assert.False(t, isAcronym("Protein"))
	assert.False(t, isAcronym("protein"))
}
