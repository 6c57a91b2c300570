package analyzers

import (
	"context"
	"sort"

	"github.com/pubscout/journal-matcher/internal/domain"
)

// TierCount is a venue-quality tier with the number of sampled works
// published in venues of that tier.
type TierCount struct {
	Tier  domain.QualityTier `json:"tier"`
	Count int                `json:"count"`
}

// ArticleRow is one sampled work of the institution, with its venue and the
// venue's quality tier.
type ArticleRow struct {
	Title     string             `json:"title"`
	Venue     string             `json:"venue,omitempty"`
	Year      int                `json:"year,omitempty"`
	Citations int                `json:"citations"`
	Tier      domain.QualityTier `json:"tier,omitempty"`
}

// InstitutionReport holds publication statistics for a single institution,
// computed over a sample of its most recent works.
type InstitutionReport struct {
	Name         string       `json:"name"`
	ID           string       `json:"id"`
	CountryCode  string       `json:"country_code,omitempty"`
	SampledWorks int          `json:"sampled_works"`
	Articles     []ArticleRow `json:"articles"`
	ByYear       []YearCount  `json:"by_year"`
	ByTier       []TierCount  `json:"by_tier"`
	TopVenues    []NamedCount `json:"top_venues"`
	Degraded     bool         `json:"degraded"`
}

// InstitutionStats resolves an institution by name and summarizes its recent
// output: per-year counts, venue-quality tier distribution, and the venues it
// publishes in most. Venue tiers use the venue-level citation ladder, since a
// venue's total citation count is orders of magnitude above an article's.
//
// An institution that cannot be resolved, or whose works cannot be fetched,
// yields a degraded report under the name searched for, never an error.
func (s *Service) InstitutionStats(ctx context.Context, name string) (*InstitutionReport, error) {
	if err := validateTopic(name); err != nil {
		return nil, err
	}
	s.metrics.AnalyzerRequests.WithLabelValues("institutions").Inc()
	logger := s.logger.With().Str("analyzer", "institutions").Str("institution", name).Logger()

	report := &InstitutionReport{Name: name}

	inst, err := s.client.FindInstitution(ctx, name)
	if err != nil {
		s.degrade(logger, "institutions", err)
		report.Degraded = true
		return report, nil
	}
	report.Name = inst.DisplayName
	report.ID = inst.ID
	report.CountryCode = inst.CountryCode

	works, err := s.client.InstitutionWorks(ctx, inst.ID, s.config.SampleSize)
	if err != nil {
		s.degrade(logger, "institutions", err)
		report.Degraded = true
		return report, nil
	}
	report.SampledWorks = len(works)

	years := make(map[int]int)
	tiers := make(map[domain.QualityTier]int)
	venues := make(map[string]int)
	for _, w := range works {
		if w.PublicationYear > 0 {
			years[w.PublicationYear]++
		}

		title := w.DisplayName
		if title == "" {
			title = w.Title
		}
		row := ArticleRow{
			Title:     title,
			Year:      w.PublicationYear,
			Citations: w.CitedByCount,
		}

		if w.PrimaryLocation != nil && w.PrimaryLocation.Source != nil {
			src := w.PrimaryLocation.Source
			tier := domain.TierForCitations(src.CitedByCount, s.config.VenueThresholds)
			tiers[tier]++
			row.Venue = src.DisplayName
			row.Tier = tier
			if src.DisplayName != "" {
				venues[src.DisplayName]++
			}
		}

		report.Articles = append(report.Articles, row)
	}

	for year, count := range years {
		report.ByYear = append(report.ByYear, YearCount{Year: year, Count: count})
	}
	sort.Slice(report.ByYear, func(i, j int) bool {
		return report.ByYear[i].Year < report.ByYear[j].Year
	})

	for _, tier := range []domain.QualityTier{domain.TierQ1, domain.TierQ2, domain.TierQ3, domain.TierQ4} {
		if count, ok := tiers[tier]; ok {
			report.ByTier = append(report.ByTier, TierCount{Tier: tier, Count: count})
		}
	}

	report.TopVenues = topCounts(venues, s.config.TopN)

	logger.Debug().
		Int("sampled", report.SampledWorks).
		Int("venues", len(report.TopVenues)).
		Msg("institution analysis completed")
	return report, nil
}
