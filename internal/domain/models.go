// Package domain contains the core value types for the journal matching service.
//
// All entities are request-scoped: they are constructed for a single match
// invocation and never persisted. Venue rows and ranked venues are the tabular
// units consumed by the HTTP layer.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// RetrievalMode identifies which evidence source produced a result record.
type RetrievalMode string

const (
	// ModeAbstract marks results retrieved via free-text topical search.
	ModeAbstract RetrievalMode = "abstract"

	// ModeDOI marks results retrieved via reference DOI lookup.
	ModeDOI RetrievalMode = "doi"
)

// QualityTier is a heuristic citation-derived bucket standing in for a
// journal impact quartile. It is an approximation, not a real bibliometric
// measure; true quartile rankings require licensed citation-index data.
type QualityTier string

const (
	TierQ1 QualityTier = "Q1"
	TierQ2 QualityTier = "Q2"
	TierQ3 QualityTier = "Q3"
	TierQ4 QualityTier = "Q4"
)

// Rank returns the sort rank of the tier; lower is better (Q1 = 0).
func (t QualityTier) Rank() int {
	switch t {
	case TierQ1:
		return 0
	case TierQ2:
		return 1
	case TierQ3:
		return 2
	default:
		return 3
	}
}

// TierThresholds holds the citation-count cutoffs for the tier ladder.
// A strength strictly greater than Q1 maps to TierQ1, and so on down the
// ladder; anything at or below Q3 maps to TierQ4.
type TierThresholds struct {
	Q1 int
	Q2 int
	Q3 int
}

// DefaultTierThresholds is the documented default ladder:
// > 50 → Q1, > 20 → Q2, > 5 → Q3, else Q4.
var DefaultTierThresholds = TierThresholds{Q1: 50, Q2: 20, Q3: 5}

// TierForCitations maps a citation strength to a quality tier.
// It is a pure function of its inputs.
func TierForCitations(citations int, t TierThresholds) QualityTier {
	switch {
	case citations > t.Q1:
		return TierQ1
	case citations > t.Q2:
		return TierQ2
	case citations > t.Q3:
		return TierQ3
	default:
		return TierQ4
	}
}

// MatchType classifies how a ranked venue was evidenced.
type MatchType string

const (
	// MatchStrong marks venues seen via both retrieval modes.
	MatchStrong MatchType = "strong"

	// MatchSingleSource marks venues seen via only one retrieval mode.
	MatchSingleSource MatchType = "single_source"
)

// VenueRef is the venue metadata attached to a retrieved work.
type VenueRef struct {
	Name        string
	Publisher   string
	HomepageURL string
}

// WorkRecord is a single retrieved publication. Venue may be nil; works
// without a located venue are dropped during normalization, not errored.
type WorkRecord struct {
	Title         string
	CitationCount int
	Venue         *VenueRef
}

// VenueRow is the normalized output unit of a single retrieval.
// Name is the identity key for later grouping and is never empty.
type VenueRow struct {
	Name             string
	Publisher        string
	HomepageURL      string
	Tier             QualityTier
	Source           RetrievalMode
	CitationStrength int
}

// RankedVenue is one row of the merged, scored output table.
type RankedVenue struct {
	Name        string
	Publisher   string
	HomepageURL string
	Tier        QualityTier
	// Score is the occurrence count across both retrieval modes.
	Score int
	Match MatchType
	// Sources lists the distinct retrieval modes that evidenced this venue.
	Sources []RetrievalMode
}

// MatchRequest is a single journal-match invocation. Abstract and References
// are raw user input; at least one of them must be non-blank.
type MatchRequest struct {
	ID         uuid.UUID
	Abstract   string
	References string
	CreatedAt  time.Time
}

// NewMatchRequest creates a request with a fresh ID.
func NewMatchRequest(abstract, references string) MatchRequest {
	return MatchRequest{
		ID:         uuid.New(),
		Abstract:   abstract,
		References: references,
		CreatedAt:  time.Now().UTC(),
	}
}

// MatchResult is the merged outcome of one match invocation.
// An empty Venues slice is a normal terminal state ("no results"), distinct
// from failure; Degraded records which upstream steps were silently skipped
// so callers can tell empty-but-valid apart from empty-because-degraded.
type MatchResult struct {
	RequestID uuid.UUID
	// Query is the search string actually sent to the works endpoint.
	Query string
	// Translated reports whether the abstract was translated before
	// keyword extraction.
	Translated bool
	// DOIs lists the deduplicated reference DOIs that were looked up.
	DOIs   []string
	Venues []RankedVenue
	// Degraded lists human-readable notes for upstream failures that were
	// swallowed (translation outage, failed DOI lookups, search errors).
	Degraded []string
}

// Empty reports whether the result carries no ranked venues.
func (r *MatchResult) Empty() bool {
	return len(r.Venues) == 0
}
