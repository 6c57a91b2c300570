// Package doi extracts and deduplicates DOIs from free text.
package doi

import (
	"regexp"
	"strings"
)

// DefaultMaxDOIs caps the number of DOIs processed per request to bound
// latency and external load.
const DefaultMaxDOIs = 10

// doiPattern matches the DOI syntax: the "10." prefix, a registrant code,
// and a suffix. Deliberately permissive; trailing punctuation is stripped
// afterwards.
var doiPattern = regexp.MustCompile(`(?i)\b(10\.\d{4,9}/[^\s"'<>]+)`)

// trailingPunct holds characters that commonly trail a DOI in running text
// (sentence punctuation, closing brackets) but are not part of it.
const trailingPunct = `.,;:!?)]}`

// Extract returns the DOIs found in text, in order of first appearance,
// with trailing punctuation stripped and case-insensitive duplicates
// removed. At most max entries are returned; max <= 0 applies
// DefaultMaxDOIs.
func Extract(text string, max int) []string {
	if max <= 0 {
		max = DefaultMaxDOIs
	}

	matches := doiPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	var dois []string
	for _, m := range matches {
		d := Clean(m)
		if d == "" {
			continue
		}
		key := strings.ToLower(d)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		dois = append(dois, d)
		if len(dois) >= max {
			break
		}
	}
	return dois
}

// Clean strips URL prefixes and trailing punctuation from a DOI candidate.
func Clean(d string) string {
	d = strings.TrimSpace(d)
	d = strings.TrimPrefix(d, "https://doi.org/")
	d = strings.TrimPrefix(d, "http://doi.org/")
	d = strings.TrimPrefix(d, "doi:")
	d = strings.TrimRight(d, trailingPunct)
	// A DOI needs a non-empty suffix after the registrant slash.
	if i := strings.Index(d, "/"); i < 0 || i == len(d)-1 {
		return ""
	}
	return d
}
