package match

import (
	"sort"

	"github.com/pubscout/journal-matcher/internal/domain"
)

// Merge combines the venue rows produced by the two retrieval modes into a
// single ranked table. Rows are treated as one multiset and grouped by venue
// name; the score of a group is its occurrence count across both inputs, and
// groups evidenced by more than one distinct retrieval mode are tagged as
// strong matches.
//
// Either input may be empty or nil; merging two empty inputs yields an empty
// result, never an error. The output order is deterministic:
// descending score, then better tier, then name, so repeated merges of the
// same inputs rank identically.
func Merge(abstractRows, doiRows []domain.VenueRow) []domain.RankedVenue {
	type group struct {
		venue   domain.RankedVenue
		modes   map[domain.RetrievalMode]struct{}
		ordinal int
	}

	groups := make(map[string]*group)
	var order []*group

	add := func(row domain.VenueRow) {
		g, ok := groups[row.Name]
		if !ok {
			g = &group{
				venue: domain.RankedVenue{
					Name:        row.Name,
					Publisher:   row.Publisher,
					HomepageURL: row.HomepageURL,
					Tier:        row.Tier,
				},
				modes:   make(map[domain.RetrievalMode]struct{}),
				ordinal: len(order),
			}
			groups[row.Name] = g
			order = append(order, g)
		}
		g.venue.Score++
		if _, seen := g.modes[row.Source]; !seen {
			g.modes[row.Source] = struct{}{}
			g.venue.Sources = append(g.venue.Sources, row.Source)
		}
		// Publisher and homepage are assumed stable per venue name; keep
		// the first non-empty value observed.
		if g.venue.Publisher == "" && row.Publisher != "" {
			g.venue.Publisher = row.Publisher
		}
		if g.venue.HomepageURL == "" && row.HomepageURL != "" {
			g.venue.HomepageURL = row.HomepageURL
		}
		// The better (lower-ranked) tier observed for the venue wins.
		if row.Tier.Rank() < g.venue.Tier.Rank() {
			g.venue.Tier = row.Tier
		}
	}

	for _, row := range abstractRows {
		add(row)
	}
	for _, row := range doiRows {
		add(row)
	}

	ranked := make([]domain.RankedVenue, 0, len(order))
	for _, g := range order {
		if len(g.modes) > 1 {
			g.venue.Match = domain.MatchStrong
		} else {
			g.venue.Match = domain.MatchSingleSource
		}
		ranked = append(ranked, g.venue)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].Tier.Rank() != ranked[j].Tier.Rank() {
			return ranked[i].Tier.Rank() < ranked[j].Tier.Rank()
		}
		return ranked[i].Name < ranked[j].Name
	})

	return ranked
}
