package match

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pubscout/journal-matcher/internal/doi"
	"github.com/pubscout/journal-matcher/internal/domain"
	"github.com/pubscout/journal-matcher/internal/keywords"
	"github.com/pubscout/journal-matcher/internal/observability"
	"github.com/pubscout/journal-matcher/internal/openalex"
)

// WorkSearcher is the subset of the OpenAlex client the pipeline depends on.
type WorkSearcher interface {
	SearchWorks(ctx context.Context, query string, limit int) ([]openalex.Work, error)
	GetWorkByDOI(ctx context.Context, doi string) (*openalex.Work, error)
}

// Translator is the translation adapter dependency. Implementations return
// the input unchanged on failure; the boolean reports whether the text was
// actually translated.
type Translator interface {
	Translate(ctx context.Context, text string) (string, bool)
}

// Config holds pipeline parameters.
type Config struct {
	// Thresholds is the citation-to-tier ladder for venue rows.
	Thresholds domain.TierThresholds

	// TopicLimit is the page size for topical work searches.
	TopicLimit int

	// MaxDOIs caps the number of reference DOIs looked up per request.
	MaxDOIs int

	// ShortQueryTokens is the token count of the more-general retry query
	// issued when the full query returns zero results.
	ShortQueryTokens int
}

// Pipeline runs the hybrid retrieval, normalization, and merge steps for a
// single match request. No upstream failure ever escapes Match: every
// external call site is individually fault-isolated and degrades to an
// empty contribution, recorded in the result's Degraded notes.
type Pipeline struct {
	config     Config
	searcher   WorkSearcher
	translator Translator
	extractor  *keywords.Extractor
	logger     zerolog.Logger
	metrics    *observability.Metrics
}

// New creates a Pipeline.
func New(cfg Config, searcher WorkSearcher, translator Translator, extractor *keywords.Extractor, logger zerolog.Logger, metrics *observability.Metrics) *Pipeline {
	if cfg.Thresholds == (domain.TierThresholds{}) {
		cfg.Thresholds = domain.DefaultTierThresholds
	}
	if cfg.TopicLimit <= 0 {
		cfg.TopicLimit = openalex.DefaultMaxResults
	}
	if cfg.MaxDOIs <= 0 {
		cfg.MaxDOIs = doi.DefaultMaxDOIs
	}
	if cfg.ShortQueryTokens <= 0 {
		cfg.ShortQueryTokens = 3
	}
	return &Pipeline{
		config:     cfg,
		searcher:   searcher,
		translator: translator,
		extractor:  extractor,
		logger:     logger.With().Str("component", "match-pipeline").Logger(),
		metrics:    metrics,
	}
}

// Match runs the full pipeline for one request. The only error it returns is
// a validation error for input with neither abstract text nor detectable
// DOIs; upstream failures degrade to an empty (but valid) result.
func (p *Pipeline) Match(ctx context.Context, req domain.MatchRequest) (*domain.MatchResult, error) {
	start := time.Now()
	logger := observability.WithMatchContext(p.logger, req.ID.String())

	abstract := strings.TrimSpace(req.Abstract)
	dois := doi.Extract(req.References, p.config.MaxDOIs)
	if abstract == "" && len(dois) == 0 {
		if strings.TrimSpace(req.References) != "" {
			return nil, domain.NewValidationError("references", "no DOI syntax detected in input")
		}
		return nil, domain.NewValidationError("abstract", "abstract text or reference DOIs are required")
	}

	p.metrics.MatchesStarted.Inc()
	defer func() {
		p.metrics.MatchDuration.Observe(time.Since(start).Seconds())
	}()

	result := &domain.MatchResult{
		RequestID: req.ID,
		DOIs:      dois,
	}

	var abstractRows, doiRows []domain.VenueRow

	if abstract != "" {
		abstractRows = p.abstractRetrieval(ctx, abstract, logger, result)
	}
	if len(dois) > 0 {
		doiRows = p.doiRetrieval(ctx, dois, logger, result)
	}
	p.metrics.DOIsExtracted.Observe(float64(len(dois)))

	result.Venues = Merge(abstractRows, doiRows)

	p.metrics.MatchesCompleted.Inc()
	p.metrics.VenuesRanked.Observe(float64(len(result.Venues)))
	for _, v := range result.Venues {
		if v.Match == domain.MatchStrong {
			p.metrics.StrongMatches.Inc()
		}
	}
	if result.Empty() {
		p.metrics.MatchesEmpty.Inc()
	}

	logger.Info().
		Int("venues", len(result.Venues)).
		Int("dois", len(dois)).
		Int("abstract_rows", len(abstractRows)).
		Int("doi_rows", len(doiRows)).
		Dur("duration", time.Since(start)).
		Msg("match completed")

	return result, nil
}

// abstractRetrieval runs the topical half of the pipeline: translate the
// abstract, extract a query, search, and normalize the hits. A zero-result
// search is retried once with a shorter, more general query; overly specific
// queries on short abstracts frequently return nothing.
func (p *Pipeline) abstractRetrieval(ctx context.Context, abstract string, logger zerolog.Logger, result *domain.MatchResult) []domain.VenueRow {
	p.metrics.TranslationsAttempted.Inc()
	translated, didTranslate := p.translator.Translate(ctx, abstract)
	if !didTranslate {
		p.metrics.TranslationsFailed.Inc()
	}
	result.Translated = didTranslate

	query := p.extractor.Extract(translated)
	result.Query = query

	p.metrics.SearchesStarted.WithLabelValues(string(domain.ModeAbstract)).Inc()
	works, err := p.searcher.SearchWorks(ctx, query, p.config.TopicLimit)
	if err != nil {
		p.metrics.SearchesFailed.WithLabelValues(string(domain.ModeAbstract)).Inc()
		logger.Warn().Err(err).Str("query", query).Msg("topic search failed, degrading to empty")
		result.Degraded = append(result.Degraded, "topic search unavailable")
		return nil
	}

	if len(works) == 0 {
		if short := shortQuery(query, p.config.ShortQueryTokens); short != "" && short != query {
			p.metrics.SearchFallbacks.Inc()
			logger.Debug().Str("query", short).Msg("zero results, retrying with shorter query")
			works, err = p.searcher.SearchWorks(ctx, short, p.config.TopicLimit)
			if err != nil {
				p.metrics.SearchesFailed.WithLabelValues(string(domain.ModeAbstract)).Inc()
				result.Degraded = append(result.Degraded, "topic search unavailable")
				return nil
			}
			result.Query = short
		}
	}

	var rows []domain.VenueRow
	for _, w := range works {
		if row, ok := Normalize(WorkToRecord(w), domain.ModeAbstract, p.config.Thresholds); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// doiRetrieval looks up each reference DOI in turn. Lookups are independent
// and failure-isolated: a malformed or unresolvable DOI is logged, counted,
// and skipped, never aborting the batch.
func (p *Pipeline) doiRetrieval(ctx context.Context, dois []string, logger zerolog.Logger, result *domain.MatchResult) []domain.VenueRow {
	p.metrics.SearchesStarted.WithLabelValues(string(domain.ModeDOI)).Inc()

	var rows []domain.VenueRow
	failed := 0
	for _, d := range dois {
		work, err := p.searcher.GetWorkByDOI(ctx, d)
		if err != nil {
			failed++
			p.metrics.DOILookupsFailed.Inc()
			logger.Debug().Err(err).Str("doi", d).Msg("DOI lookup failed, skipping")
			continue
		}
		if row, ok := Normalize(WorkToRecord(*work), domain.ModeDOI, p.config.Thresholds); ok {
			rows = append(rows, row)
		}
	}

	if failed > 0 {
		result.Degraded = append(result.Degraded, fmt.Sprintf("%d of %d DOI lookups failed", failed, len(dois)))
	}
	if failed == len(dois) {
		p.metrics.SearchesFailed.WithLabelValues(string(domain.ModeDOI)).Inc()
	}
	return rows
}

// shortQuery returns the first n whitespace-separated tokens of query.
func shortQuery(query string, n int) string {
	tokens := strings.Fields(query)
	if len(tokens) <= n {
		return query
	}
	return strings.Join(tokens[:n], " ")
}
