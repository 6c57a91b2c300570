// Package keywords reduces free-text abstracts to short search query strings.
//
// The extractor strips punctuation (preserving hyphens, so compound technical
// terms like "CAR-T" stay intact), removes stop-words and short tokens, and
// keeps the most frequent survivors. Capitalized technical acronyms keep
// their original casing. Input that is entirely stop-words still yields a
// non-empty fallback query; the search string is never empty for non-blank
// input.
package keywords

import (
	"sort"
	"strings"
	"unicode"
)

// Config holds extraction parameters. All values are tunable heuristics.
type Config struct {
	// MaxKeywords is the number of top-frequency tokens kept for the query.
	MaxKeywords int

	// MinTokenLength is the minimum surviving token length in runes.
	MinTokenLength int

	// MinSurvivors is the survivor count below which the extractor falls
	// back to the leading words of the raw text.
	MinSurvivors int

	// FallbackWords is how many leading raw words the fallback keeps.
	FallbackWords int
}

// DefaultConfig returns the documented default parameter set.
func DefaultConfig() Config {
	return Config{
		MaxKeywords:    8,
		MinTokenLength: 4,
		MinSurvivors:   3,
		FallbackWords:  5,
	}
}

// Extractor turns abstract text into a bounded search query string.
type Extractor struct {
	config    Config
	stopWords map[string]struct{}
}

// New creates an Extractor with the given configuration.
func New(cfg Config) *Extractor {
	if cfg.MaxKeywords <= 0 {
		cfg.MaxKeywords = DefaultConfig().MaxKeywords
	}
	if cfg.MinTokenLength <= 0 {
		cfg.MinTokenLength = DefaultConfig().MinTokenLength
	}
	if cfg.MinSurvivors <= 0 {
		cfg.MinSurvivors = DefaultConfig().MinSurvivors
	}
	if cfg.FallbackWords <= 0 {
		cfg.FallbackWords = DefaultConfig().FallbackWords
	}
	return &Extractor{
		config:    cfg,
		stopWords: defaultStopWords,
	}
}

// candidate tracks one distinct surviving token.
type candidate struct {
	display string // form used in the query; keeps acronym casing
	count   int
	first   int // index of first appearance, for stable tie-breaks
}

// Extract reduces text to a search query string. Tokens are frequency-ranked
// with ties broken by document order. If fewer than MinSurvivors distinct
// tokens survive filtering, the leading FallbackWords words of the raw text
// are used verbatim so the query is never empty.
func (e *Extractor) Extract(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	tokens := tokenize(text)

	seen := make(map[string]*candidate)
	var order []*candidate
	for i, tok := range tokens {
		key := strings.ToLower(tok)
		if _, stop := e.stopWords[key]; stop {
			continue
		}
		if len([]rune(key)) < e.config.MinTokenLength {
			continue
		}
		c, ok := seen[key]
		if !ok {
			c = &candidate{display: displayForm(tok), count: 0, first: i}
			seen[key] = c
			order = append(order, c)
		}
		c.count++
		if isAcronym(tok) {
			c.display = tok
		}
	}

	if len(order) < e.config.MinSurvivors {
		return e.fallback(text)
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].first < order[j].first
	})

	n := e.config.MaxKeywords
	if n > len(order) {
		n = len(order)
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = order[i].display
	}
	return strings.Join(parts, " ")
}

// fallback returns the first FallbackWords words of the raw text unmodified.
func (e *Extractor) fallback(text string) string {
	words := strings.Fields(text)
	if len(words) > e.config.FallbackWords {
		words = words[:e.config.FallbackWords]
	}
	return strings.Join(words, " ")
}

// tokenize strips non-alphanumeric characters (preserving hyphens) and
// splits on whitespace. Tokens reduced to bare hyphens are dropped.
func tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-':
			return r
		default:
			return ' '
		}
	}, text)

	fields := strings.Fields(cleaned)
	tokens := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, "-")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// displayForm returns the query form of a token: acronyms keep their
// original casing, everything else is lowercased.
func displayForm(tok string) string {
	if isAcronym(tok) {
		return tok
	}
	return strings.ToLower(tok)
}

// isAcronym reports whether a token looks like a technical acronym worth
// preserving: at least two uppercase letters (CRISPR, CAR-T, mRNA-based
// fragments survive intact).
func isAcronym(tok string) bool {
	upper := 0
	for _, r := range tok {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return upper >= 2
}
