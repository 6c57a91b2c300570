package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the journal matcher service.
// Metrics are organized by subsystem: matches, retrieval, upstream requests,
// translation, and analyzers. All counters and histograms are registered via
// promauto for automatic registration with the default Prometheus registry.
type Metrics struct {
	// MatchesStarted counts the total number of match requests initiated.
	MatchesStarted prometheus.Counter

	// MatchesCompleted counts match requests that produced a ranked table.
	MatchesCompleted prometheus.Counter

	// MatchesEmpty counts match requests that completed with zero venues.
	MatchesEmpty prometheus.Counter

	// MatchDuration observes end-to-end match duration in seconds.
	MatchDuration prometheus.Histogram

	// VenuesRanked observes the distribution of ranked venues per match.
	VenuesRanked prometheus.Histogram

	// StrongMatches counts venues tagged as strong (seen via both modes).
	StrongMatches prometheus.Counter

	// SearchesStarted counts retrievals initiated, labeled by mode.
	SearchesStarted *prometheus.CounterVec

	// SearchesFailed counts retrievals that were degraded to empty, labeled by mode.
	SearchesFailed *prometheus.CounterVec

	// SearchFallbacks counts short-query retries after zero-result searches.
	SearchFallbacks prometheus.Counter

	// DOIsExtracted observes the number of DOIs extracted per request.
	DOIsExtracted prometheus.Histogram

	// DOILookupsFailed counts individual DOI lookups that were swallowed.
	DOILookupsFailed prometheus.Counter

	// UpstreamRequestsTotal counts HTTP requests to upstream APIs, labeled by endpoint.
	UpstreamRequestsTotal *prometheus.CounterVec

	// UpstreamRequestsFailed counts failed upstream HTTP requests, labeled by endpoint.
	UpstreamRequestsFailed *prometheus.CounterVec

	// UpstreamRequestDuration observes upstream request duration in seconds, labeled by endpoint.
	UpstreamRequestDuration *prometheus.HistogramVec

	// TranslationsAttempted counts translation attempts.
	TranslationsAttempted prometheus.Counter

	// TranslationsFailed counts translations that fell back to the original text.
	TranslationsFailed prometheus.Counter

	// AnalyzerRequests counts analyzer invocations, labeled by analyzer.
	AnalyzerRequests *prometheus.CounterVec

	// AnalyzerFailures counts analyzer invocations degraded to empty, labeled by analyzer.
	AnalyzerFailures *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The namespace is used as a prefix for all metric names.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		MatchesStarted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_started_total",
			Help:      "Total number of journal match requests started",
		}),
		MatchesCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_completed_total",
			Help:      "Total number of journal match requests completed",
		}),
		MatchesEmpty: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_empty_total",
			Help:      "Total number of match requests that returned no venues",
		}),
		MatchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_duration_seconds",
			Help:      "End-to-end duration of match requests in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		VenuesRanked: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "venues_ranked",
			Help:      "Number of ranked venues returned per match",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		}),
		StrongMatches: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "strong_matches_total",
			Help:      "Total number of venues tagged as strong matches",
		}),
		SearchesStarted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_started_total",
			Help:      "Total number of retrievals started by mode",
		}, []string{"mode"}),
		SearchesFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_failed_total",
			Help:      "Total number of retrievals degraded to empty results by mode",
		}, []string{"mode"}),
		SearchFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_fallbacks_total",
			Help:      "Total number of short-query retries after zero-result searches",
		}),
		DOIsExtracted: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dois_extracted",
			Help:      "Number of DOIs extracted per match request",
			Buckets:   []float64{0, 1, 2, 5, 10, 15},
		}),
		DOILookupsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "doi_lookups_failed_total",
			Help:      "Total number of individual DOI lookups that failed and were skipped",
		}),
		UpstreamRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of HTTP requests to upstream APIs by endpoint",
		}, []string{"endpoint"}),
		UpstreamRequestsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_failed_total",
			Help:      "Total number of failed HTTP requests to upstream APIs by endpoint",
		}, []string{"endpoint"}),
		UpstreamRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of upstream HTTP requests in seconds by endpoint",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		TranslationsAttempted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translations_attempted_total",
			Help:      "Total number of translation attempts",
		}),
		TranslationsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translations_failed_total",
			Help:      "Total number of translations that fell back to the original text",
		}),
		AnalyzerRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyzer_requests_total",
			Help:      "Total number of analyzer invocations by analyzer",
		}, []string{"analyzer"}),
		AnalyzerFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyzer_failures_total",
			Help:      "Total number of analyzer invocations degraded to empty results by analyzer",
		}, []string{"analyzer"}),
	}
}
