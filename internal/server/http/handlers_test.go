package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pubscout/journal-matcher/internal/analyzers"
	"github.com/pubscout/journal-matcher/internal/domain"
)

type stubMatcher struct {
	result *domain.MatchResult
	err    error
}

func (s *stubMatcher) Match(ctx context.Context, req domain.MatchRequest) (*domain.MatchResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	result := *s.result
	result.RequestID = req.ID
	return &result, nil
}

type stubAnalyzer struct {
	trends        *analyzers.TrendReport
	funders       *analyzers.FunderReport
	concepts      *analyzers.ConceptReport
	collaborators *analyzers.CollaboratorReport
	sdgs          *analyzers.SDGReport
	institutions  *analyzers.InstitutionReport
}

func (s *stubAnalyzer) Trends(ctx context.Context, topic string) (*analyzers.TrendReport, error) {
	return s.trends, nil
}

func (s *stubAnalyzer) Funders(ctx context.Context, topic string) (*analyzers.FunderReport, error) {
	return s.funders, nil
}

func (s *stubAnalyzer) Concepts(ctx context.Context, topic string) (*analyzers.ConceptReport, error) {
	return s.concepts, nil
}

func (s *stubAnalyzer) Collaborators(ctx context.Context, topic string) (*analyzers.CollaboratorReport, error) {
	return s.collaborators, nil
}

func (s *stubAnalyzer) SDGs(ctx context.Context, topic string) (*analyzers.SDGReport, error) {
	return s.sdgs, nil
}

func (s *stubAnalyzer) InstitutionStats(ctx context.Context, name string) (*analyzers.InstitutionReport, error) {
	return s.institutions, nil
}

func newTestServer(matcher Matcher, analyzer Analyzer) *Server {
	return NewServer(Config{Address: "127.0.0.1:0"}, matcher, analyzer, zerolog.Nop())
}

func doRequest(s *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(&stubMatcher{}, &stubAnalyzer{})

	rec := doRequest(s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(s, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateMatch(t *testing.T) {
	matcher := &stubMatcher{result: &domain.MatchResult{
		RequestID: uuid.New(),
		Query:     "protein folding",
		Venues: []domain.RankedVenue{{
			Name:    "Nature Methods",
			Tier:    domain.TierQ1,
			Score:   2,
			Match:   domain.MatchStrong,
			Sources: []domain.RetrievalMode{domain.ModeAbstract, domain.ModeDOI},
		}},
	}}
	s := newTestServer(matcher, &stubAnalyzer{})

	rec := doRequest(s, http.MethodPost, "/api/v1/matches",
		`{"abstract": "protein folding with deep learning"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp matchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.NoResults)
	require.Len(t, resp.Venues, 1)
	assert.Equal(t, "Nature Methods", resp.Venues[0].Name)
	assert.Equal(t, "strong", resp.Venues[0].MatchType)
	assert.Equal(t, 2, resp.Venues[0].Score)
}

func TestCreateMatchEmptyResultIsOK(t *testing.T) {
	matcher := &stubMatcher{result: &domain.MatchResult{
		Query:    "obscure topic",
		Degraded: []string{"topic search unavailable"},
	}}
	s := newTestServer(matcher, &stubAnalyzer{})

	rec := doRequest(s, http.MethodPost, "/api/v1/matches", `{"abstract": "some obscure topic text"}`)

	// Empty-but-valid results are a 200 with an explicit marker, never an error.
	require.Equal(t, http.StatusOK, rec.Code)

	var resp matchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.NoResults)
	assert.Empty(t, resp.Venues)
	assert.Equal(t, []string{"topic search unavailable"}, resp.Degraded)
}

func TestCreateMatchRejectsBlankInput(t *testing.T) {
	s := newTestServer(&stubMatcher{}, &stubAnalyzer{})

	rec := doRequest(s, http.MethodPost, "/api/v1/matches", `{"abstract": "  ", "references": ""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(s, http.MethodPost, "/api/v1/matches", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateMatchRejectsInvalidJSON(t *testing.T) {
	s := newTestServer(&stubMatcher{}, &stubAnalyzer{})

	rec := doRequest(s, http.MethodPost, "/api/v1/matches", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateMatchMapsValidationErrors(t *testing.T) {
	matcher := &stubMatcher{err: domain.NewValidationError("references", "no DOI syntax detected in input")}
	s := newTestServer(matcher, &stubAnalyzer{})

	rec := doRequest(s, http.MethodPost, "/api/v1/matches", `{"references": "no identifiers"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDetectAIText(t *testing.T) {
	s := newTestServer(&stubMatcher{}, &stubAnalyzer{})

	text := strings.Repeat("The model performs the task and produces the result. ", 12)
	body, err := json.Marshal(map[string]string{"text": text})
	require.NoError(t, err)

	rec := doRequest(s, http.MethodPost, "/api/v1/ai-detection", string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp, "score")
	assert.Equal(t, true, resp["reliable"])
}

func TestDetectAITextRejectsMissingText(t *testing.T) {
	s := newTestServer(&stubMatcher{}, &stubAnalyzer{})

	rec := doRequest(s, http.MethodPost, "/api/v1/ai-detection", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTrends(t *testing.T) {
	analyzer := &stubAnalyzer{trends: &analyzers.TrendReport{
		Topic:    "crispr",
		FromYear: 2014,
		Points:   []analyzers.YearCount{{Year: 2024, Count: 100}},
	}}
	s := newTestServer(&stubMatcher{}, analyzer)

	rec := doRequest(s, http.MethodGet, "/api/v1/trends?topic=crispr", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp analyzers.TrendReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "crispr", resp.Topic)
	require.Len(t, resp.Points, 1)
}

func TestGetTrendsRequiresTopic(t *testing.T) {
	s := newTestServer(&stubMatcher{}, &stubAnalyzer{})

	rec := doRequest(s, http.MethodGet, "/api/v1/trends", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/v1/trends?topic=++", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetInstitutionStats(t *testing.T) {
	analyzer := &stubAnalyzer{institutions: &analyzers.InstitutionReport{
		Name: "Sorbonne University",
		ByTier: []analyzers.TierCount{
			{Tier: domain.TierQ1, Count: 3},
		},
	}}
	s := newTestServer(&stubMatcher{}, analyzer)

	rec := doRequest(s, http.MethodGet, "/api/v1/institutions/stats?name=sorbonne", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp analyzers.InstitutionReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Sorbonne University", resp.Name)
}

func TestAnalyzerRoutesAreWired(t *testing.T) {
	analyzer := &stubAnalyzer{
		funders:       &analyzers.FunderReport{Topic: "x"},
		concepts:      &analyzers.ConceptReport{Topic: "x"},
		collaborators: &analyzers.CollaboratorReport{Topic: "x"},
		sdgs:          &analyzers.SDGReport{Topic: "x"},
	}
	s := newTestServer(&stubMatcher{}, analyzer)

	for _, path := range []string{
		"/api/v1/funders?topic=x",
		"/api/v1/concepts?topic=x",
		"/api/v1/collaborators?topic=x",
		"/api/v1/sdgs?topic=x",
	} {
		rec := doRequest(s, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestCorrelationIDHeader(t *testing.T) {
	s := newTestServer(&stubMatcher{}, &stubAnalyzer{})

	rec := doRequest(s, http.MethodGet, "/healthz", "")
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Correlation-ID", "my-correlation-id")
	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)
	assert.Equal(t, "my-correlation-id", recorder.Header().Get("X-Correlation-ID"))
}

func TestResponsesAreJSON(t *testing.T) {
	s := newTestServer(&stubMatcher{}, &stubAnalyzer{})

	rec := doRequest(s, http.MethodGet, "/healthz", "")
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}
