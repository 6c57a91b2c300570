// Package match implements the hybrid journal-matching pipeline: topical and
// DOI-based retrieval, venue normalization, and merged scoring.
package match

import (
	"strings"

	"github.com/pubscout/journal-matcher/internal/domain"
	"github.com/pubscout/journal-matcher/internal/openalex"
)

// WorkToRecord converts a raw OpenAlex work to the pipeline's record form.
// Venue metadata comes from the primary location source; works without one
// carry a nil venue and are dropped during normalization.
func WorkToRecord(w openalex.Work) domain.WorkRecord {
	title := w.DisplayName
	if title == "" {
		title = w.Title
	}

	rec := domain.WorkRecord{
		Title:         title,
		CitationCount: w.CitedByCount,
	}

	if w.PrimaryLocation != nil && w.PrimaryLocation.Source != nil {
		src := w.PrimaryLocation.Source
		rec.Venue = &domain.VenueRef{
			Name:        src.DisplayName,
			Publisher:   src.HostOrganizationName,
			HomepageURL: src.HomepageURL,
		}
	}

	return rec
}

// Normalize maps a retrieved work record to a venue row. Records without
// venue information, or with an empty venue name, are dropped (ok == false)
// rather than errored; the name is the identity key for later grouping and
// a row is never emitted without one.
func Normalize(rec domain.WorkRecord, mode domain.RetrievalMode, thresholds domain.TierThresholds) (domain.VenueRow, bool) {
	if rec.Venue == nil {
		return domain.VenueRow{}, false
	}

	name := strings.TrimSpace(rec.Venue.Name)
	if name == "" {
		return domain.VenueRow{}, false
	}

	return domain.VenueRow{
		Name:             name,
		Publisher:        rec.Venue.Publisher,
		HomepageURL:      rec.Venue.HomepageURL,
		Tier:             domain.TierForCitations(rec.CitationCount, thresholds),
		Source:           mode,
		CitationStrength: rec.CitationCount,
	}, true
}
