package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pubscout/journal-matcher/internal/apiclient"
	"github.com/pubscout/journal-matcher/internal/domain"
	"github.com/pubscout/journal-matcher/internal/observability"
)

const (
	// DefaultBaseURL is the default OpenAlex API base URL.
	DefaultBaseURL = "https://api.openalex.org"

	// DefaultRateLimit is the default rate limit for requests per second.
	// OpenAlex polite pool (with email) allows higher rates.
	DefaultRateLimit = 10.0

	// DefaultBurstSize is the default burst size for rate limiting.
	DefaultBurstSize = 10

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxResults is the default maximum results per search request.
	DefaultMaxResults = 50

	// doiPrefix is the URL prefix that OpenAlex uses for DOIs.
	doiPrefix = "https://doi.org/"

	// maxBodySize bounds decoded response bodies to 10MB.
	maxBodySize = 10 << 20

	// workSelectFields is the field-selection list for venue matching:
	// only what the normalizer needs, to bound response size.
	workSelectFields = "title,cited_by_count,primary_location"
)

// Config holds configuration for the OpenAlex client.
type Config struct {
	// BaseURL is the OpenAlex API base URL.
	// Defaults to https://api.openalex.org
	BaseURL string

	// Email is the contact email for the polite pool, sent as the mailto
	// parameter as a courtesy to the provider (not authentication).
	Email string

	// Timeout is the request timeout. Defaults to 10 seconds.
	Timeout time.Duration

	// RateLimit is the maximum requests per second.
	RateLimit float64

	// BurstSize is the maximum burst of requests allowed.
	BurstSize int

	// MaxResults is the maximum results per search request.
	// Defaults to 50, maximum is 200 per OpenAlex API.
	MaxResults int
}

// applyDefaults sets default values for unset configuration fields.
func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RateLimit == 0 {
		c.RateLimit = DefaultRateLimit
	}
	if c.BurstSize == 0 {
		c.BurstSize = DefaultBurstSize
	}
	if c.MaxResults == 0 {
		c.MaxResults = DefaultMaxResults
	}
}

// Client is the OpenAlex API client.
type Client struct {
	config     Config
	httpClient *apiclient.Client
	metrics    *observability.Metrics
}

// New creates a new OpenAlex client with the given configuration.
func New(cfg Config) *Client {
	cfg.applyDefaults()

	httpClient := apiclient.New(apiclient.Config{
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		BurstSize: cfg.BurstSize,
		UserAgent: "PubScout-JournalMatcher/1.0 (mailto:" + cfg.Email + ")",
	})

	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// WithMetrics attaches upstream request metrics to the client and returns it.
func (c *Client) WithMetrics(m *observability.Metrics) *Client {
	c.metrics = m
	return c
}

// NewWithHTTPClient creates a new OpenAlex client with a custom HTTP client.
// This is useful for testing with mock servers.
func NewWithHTTPClient(cfg Config, httpClient *apiclient.Client) *Client {
	cfg.applyDefaults()

	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// SearchWorks queries the works endpoint for article-type publications
// matching the free-text query. Only the fields needed for venue
// normalization are requested.
func (c *Client) SearchWorks(ctx context.Context, query string, limit int) ([]Work, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.NewValidationError("query", "must not be empty")
	}

	params := url.Values{}
	params.Set("search", query)
	params.Set("filter", "type:article")
	params.Set("select", workSelectFields)
	params.Set("per_page", strconv.Itoa(c.clampLimit(limit)))

	var resp WorksResponse
	if err := c.get(ctx, "/works", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// GetWorkByDOI retrieves a single work by DOI. It first attempts the exact
// identifier path lookup; on any non-success it falls back to a filter-based
// query by DOI value, taking the first result.
func (c *Client) GetWorkByDOI(ctx context.Context, doi string) (*Work, error) {
	doi = strings.TrimSpace(strings.TrimPrefix(doi, doiPrefix))
	if doi == "" {
		return nil, domain.NewValidationError("doi", "must not be empty")
	}

	var work Work
	err := c.get(ctx, "/works/"+doiPrefix+doi, nil, &work)
	if err == nil && work.ID != "" {
		return &work, nil
	}

	// Exact lookup failed; fall back to a filter query.
	params := url.Values{}
	params.Set("filter", "doi:"+doi)
	params.Set("per_page", "1")

	var resp WorksResponse
	if ferr := c.get(ctx, "/works", params, &resp); ferr != nil {
		if err != nil {
			return nil, err
		}
		return nil, ferr
	}
	if len(resp.Results) == 0 {
		return nil, domain.NewNotFoundError("work", doi)
	}
	return &resp.Results[0], nil
}

// GroupWorksByYear returns per-year publication counts for a topic,
// restricted to works published on or after fromYear.
func (c *Client) GroupWorksByYear(ctx context.Context, query string, fromYear int) ([]GroupBucket, error) {
	params := url.Values{}
	params.Set("search", query)
	params.Set("filter", fmt.Sprintf("type:article,from_publication_date:%d-01-01", fromYear))
	params.Set("group_by", "publication_year")

	var resp WorksResponse
	if err := c.get(ctx, "/works", params, &resp); err != nil {
		return nil, err
	}
	return resp.GroupBy, nil
}

// SampleWorks retrieves a bounded sample of works for a topic with a custom
// field-selection list. Used by the analyzers that aggregate grants,
// authorships, or SDG tags.
func (c *Client) SampleWorks(ctx context.Context, query string, selectFields []string, limit int) ([]Work, error) {
	params := url.Values{}
	params.Set("search", query)
	params.Set("filter", "type:article")
	if len(selectFields) > 0 {
		params.Set("select", strings.Join(selectFields, ","))
	}
	params.Set("per_page", strconv.Itoa(c.clampLimit(limit)))

	var resp WorksResponse
	if err := c.get(ctx, "/works", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// SearchConcepts queries the concepts endpoint for a topic.
func (c *Client) SearchConcepts(ctx context.Context, query string, limit int) ([]Concept, error) {
	params := url.Values{}
	params.Set("search", query)
	params.Set("per_page", strconv.Itoa(c.clampLimit(limit)))

	var resp ConceptsResponse
	if err := c.get(ctx, "/concepts", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// FindInstitution resolves an institution name to its best-matching record.
func (c *Client) FindInstitution(ctx context.Context, name string) (*Institution, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("name", "must not be empty")
	}

	params := url.Values{}
	params.Set("search", name)
	params.Set("per_page", "1")

	var resp InstitutionsResponse
	if err := c.get(ctx, "/institutions", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, domain.NewNotFoundError("institution", name)
	}
	// OpenAlex sorts search results by relevance; the first hit is the
	// best name match.
	return &resp.Results[0], nil
}

// InstitutionWorks retrieves a bounded sample of an institution's most
// recent article-type publications.
func (c *Client) InstitutionWorks(ctx context.Context, institutionID string, limit int) ([]Work, error) {
	params := url.Values{}
	params.Set("filter", fmt.Sprintf("institutions.id:%s,type:article", institutionID))
	params.Set("sort", "publication_date:desc")
	params.Set("per_page", strconv.Itoa(c.clampLimit(limit)))

	var resp WorksResponse
	if err := c.get(ctx, "/works", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// clampLimit bounds a requested page size to the API maximum of 200.
func (c *Client) clampLimit(limit int) int {
	if limit <= 0 {
		limit = c.config.MaxResults
	}
	if limit > 200 {
		limit = 200
	}
	return limit
}

// get issues a GET request against the given API path and decodes the JSON
// response into out. The mailto courtesy parameter is appended when an email
// is configured.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	baseURL, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return fmt.Errorf("parsing base URL: %w", err)
	}
	baseURL.Path = path

	if params == nil {
		params = url.Values{}
	}
	if c.config.Email != "" {
		params.Set("mailto", c.config.Email)
	}
	baseURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL.String(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	endpoint := metricEndpoint(path)
	start := time.Now()
	if c.metrics != nil {
		c.metrics.UpstreamRequestsTotal.WithLabelValues(endpoint).Inc()
		defer func() {
			c.metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		}()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.metrics != nil {
			c.metrics.UpstreamRequestsFailed.WithLabelValues(endpoint).Inc()
		}
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.NewNotFoundError("resource", path)
	}
	if resp.StatusCode != http.StatusOK {
		if c.metrics != nil {
			c.metrics.UpstreamRequestsFailed.WithLabelValues(endpoint).Inc()
		}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return domain.NewExternalAPIError("OpenAlex", resp.StatusCode, string(body), nil)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// metricEndpoint reduces an API path to its leading segment for metric
// labels, keeping DOI-specific lookup paths out of the label space.
func metricEndpoint(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.Index(trimmed, "/"); i > 0 {
		return trimmed[:i]
	}
	return trimmed
}

// NormalizeDOI strips URL and scheme prefixes from a DOI and lowercases it.
func NormalizeDOI(doi string) string {
	if doi == "" {
		return ""
	}
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, doiPrefix)
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.ToLower(strings.TrimSpace(doi))
}
