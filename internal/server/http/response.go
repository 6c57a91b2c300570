package httpserver

import (
	"github.com/pubscout/journal-matcher/internal/domain"
)

// Response types for JSON serialization.

type venueResponse struct {
	Name        string   `json:"name"`
	Publisher   string   `json:"publisher,omitempty"`
	HomepageURL string   `json:"homepage_url,omitempty"`
	QualityTier string   `json:"quality_tier"`
	Score       int      `json:"score"`
	MatchType   string   `json:"match_type"`
	Sources     []string `json:"sources"`
}

type matchResponse struct {
	RequestID  string          `json:"request_id"`
	Query      string          `json:"query,omitempty"`
	Translated bool            `json:"translated"`
	DOIs       []string        `json:"dois,omitempty"`
	Venues     []venueResponse `json:"venues"`
	NoResults  bool            `json:"no_results"`
	Degraded   []string        `json:"degraded,omitempty"`
}

// Converter functions

func domainVenueToResponse(v domain.RankedVenue) venueResponse {
	sources := make([]string, len(v.Sources))
	for i, s := range v.Sources {
		sources[i] = string(s)
	}
	return venueResponse{
		Name:        v.Name,
		Publisher:   v.Publisher,
		HomepageURL: v.HomepageURL,
		QualityTier: string(v.Tier),
		Score:       v.Score,
		MatchType:   string(v.Match),
		Sources:     sources,
	}
}

func domainResultToResponse(r *domain.MatchResult) matchResponse {
	venues := make([]venueResponse, len(r.Venues))
	for i, v := range r.Venues {
		venues[i] = domainVenueToResponse(v)
	}
	return matchResponse{
		RequestID:  r.RequestID.String(),
		Query:      r.Query,
		Translated: r.Translated,
		DOIs:       r.DOIs,
		Venues:     venues,
		NoResults:  r.Empty(),
		Degraded:   r.Degraded,
	}
}
