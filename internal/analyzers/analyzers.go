// Package analyzers implements the auxiliary dashboard analyzers: publication
// trends, funders, concepts, collaborators, SDG tagging, and institution
// statistics.
//
// Every analyzer applies the same fault policy as the match pipeline: an
// upstream failure never escapes as an error. The analyzer logs the failure,
// bumps a metric, and returns an empty report with Degraded set, so callers
// can tell "nothing found" from "nothing reachable". The only errors returned
// are input validation errors.
package analyzers

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pubscout/journal-matcher/internal/domain"
	"github.com/pubscout/journal-matcher/internal/observability"
	"github.com/pubscout/journal-matcher/internal/openalex"
)

// WorksClient is the subset of the OpenAlex client the analyzers depend on.
type WorksClient interface {
	GroupWorksByYear(ctx context.Context, query string, fromYear int) ([]openalex.GroupBucket, error)
	SampleWorks(ctx context.Context, query string, selectFields []string, limit int) ([]openalex.Work, error)
	SearchConcepts(ctx context.Context, query string, limit int) ([]openalex.Concept, error)
	FindInstitution(ctx context.Context, name string) (*openalex.Institution, error)
	InstitutionWorks(ctx context.Context, institutionID string, limit int) ([]openalex.Work, error)
}

// Config holds analyzer parameters.
type Config struct {
	// TrendYears is the recent-year window for the trend counter.
	TrendYears int

	// TopN bounds the result size of the aggregating analyzers.
	TopN int

	// SampleSize bounds the work sample fetched per analyzer call.
	SampleSize int

	// VenueThresholds is the venue-level citation-to-tier ladder used by the
	// institution analyzer. Venue totals dwarf per-article counts, so this
	// ladder is separate from the matching one.
	VenueThresholds domain.TierThresholds
}

// DefaultConfig returns the documented default parameter set.
func DefaultConfig() Config {
	return Config{
		TrendYears:      12,
		TopN:            10,
		SampleSize:      100,
		VenueThresholds: domain.TierThresholds{Q1: 50000, Q2: 10000, Q3: 2000},
	}
}

// Service runs the auxiliary analyzers against the works catalog.
type Service struct {
	config  Config
	client  WorksClient
	logger  zerolog.Logger
	metrics *observability.Metrics
	now     func() time.Time
}

// New creates an analyzer Service.
func New(cfg Config, client WorksClient, logger zerolog.Logger, metrics *observability.Metrics) *Service {
	def := DefaultConfig()
	if cfg.TrendYears <= 0 {
		cfg.TrendYears = def.TrendYears
	}
	if cfg.TopN <= 0 {
		cfg.TopN = def.TopN
	}
	if cfg.SampleSize <= 0 {
		cfg.SampleSize = def.SampleSize
	}
	if cfg.VenueThresholds == (domain.TierThresholds{}) {
		cfg.VenueThresholds = def.VenueThresholds
	}
	return &Service{
		config:  cfg,
		client:  client,
		logger:  logger.With().Str("component", "analyzers").Logger(),
		metrics: metrics,
		now:     time.Now,
	}
}

// NamedCount is a display name with an occurrence count.
type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// YearCount is a publication count for a single year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// validateTopic rejects blank analyzer topics.
func validateTopic(topic string) error {
	if strings.TrimSpace(topic) == "" {
		return domain.NewValidationError("topic", "must not be empty")
	}
	return nil
}

// degrade logs an upstream failure and records it for the named analyzer.
func (s *Service) degrade(logger zerolog.Logger, analyzer string, err error) {
	s.metrics.AnalyzerFailures.WithLabelValues(analyzer).Inc()
	logger.Warn().Err(err).Msg("upstream call failed, degrading to empty result")
}

// topCounts converts an occurrence map to a bounded list sorted by count
// descending, name ascending on ties.
func topCounts(counts map[string]int, n int) []NamedCount {
	out := make([]NamedCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, NamedCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
