package analyzers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pubscout/journal-matcher/internal/domain"
	"github.com/pubscout/journal-matcher/internal/observability"
	"github.com/pubscout/journal-matcher/internal/openalex"
)

// Note: prometheus/promauto registers metrics globally, so we need to use
// unique namespaces per test to avoid registration conflicts.

type fakeWorksClient struct {
	groupFn        func(query string, fromYear int) ([]openalex.GroupBucket, error)
	sampleFn       func(query string, selectFields []string, limit int) ([]openalex.Work, error)
	conceptsFn     func(query string, limit int) ([]openalex.Concept, error)
	institutionFn  func(name string) (*openalex.Institution, error)
	instWorksFn    func(institutionID string, limit int) ([]openalex.Work, error)
	sampledFields  []string
	sampledQueries []string
}

func (f *fakeWorksClient) GroupWorksByYear(ctx context.Context, query string, fromYear int) ([]openalex.GroupBucket, error) {
	if f.groupFn == nil {
		return nil, errors.New("not configured")
	}
	return f.groupFn(query, fromYear)
}

func (f *fakeWorksClient) SampleWorks(ctx context.Context, query string, selectFields []string, limit int) ([]openalex.Work, error) {
	f.sampledFields = selectFields
	f.sampledQueries = append(f.sampledQueries, query)
	if f.sampleFn == nil {
		return nil, errors.New("not configured")
	}
	return f.sampleFn(query, selectFields, limit)
}

func (f *fakeWorksClient) SearchConcepts(ctx context.Context, query string, limit int) ([]openalex.Concept, error) {
	if f.conceptsFn == nil {
		return nil, errors.New("not configured")
	}
	return f.conceptsFn(query, limit)
}

func (f *fakeWorksClient) FindInstitution(ctx context.Context, name string) (*openalex.Institution, error) {
	if f.institutionFn == nil {
		return nil, errors.New("not configured")
	}
	return f.institutionFn(name)
}

func (f *fakeWorksClient) InstitutionWorks(ctx context.Context, institutionID string, limit int) ([]openalex.Work, error) {
	if f.instWorksFn == nil {
		return nil, errors.New("not configured")
	}
	return f.instWorksFn(institutionID, limit)
}

func newTestService(namespace string, client WorksClient) *Service {
	svc := New(Config{}, client, zerolog.Nop(), observability.NewMetrics(namespace))
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestTrends(t *testing.T) {
	client := &fakeWorksClient{
		groupFn: func(query string, fromYear int) ([]openalex.GroupBucket, error) {
			assert.Equal(t, 2014, fromYear)
			return []openalex.GroupBucket{
				{Key: "2024", Count: 310},
				{Key: "2023", Count: 280},
				{Key: "2010", Count: 40}, // outside the window, dropped
				{Key: "garbage", Count: 1},
			}, nil
		},
	}
	svc := newTestService("test_analyzer_trends", client)

	report, err := svc.Trends(context.Background(), "crispr gene editing")

	require.NoError(t, err)
	assert.False(t, report.Degraded)
	assert.Equal(t, 2014, report.FromYear)
	require.Len(t, report.Points, 2)
	// Oldest year first.
	assert.Equal(t, YearCount{Year: 2023, Count: 280}, report.Points[0])
	assert.Equal(t, YearCount{Year: 2024, Count: 310}, report.Points[1])
}

func TestTrendsDegradesOnUpstreamFailure(t *testing.T) {
	client := &fakeWorksClient{
		groupFn: func(query string, fromYear int) ([]openalex.GroupBucket, error) {
			return nil, errors.New("timeout")
		},
	}
	svc := newTestService("test_analyzer_trends_degraded", client)

	report, err := svc.Trends(context.Background(), "crispr")

	require.NoError(t, err)
	assert.True(t, report.Degraded)
	assert.Empty(t, report.Points)
}

func TestTrendsRejectsBlankTopic(t *testing.T) {
	svc := newTestService("test_analyzer_trends_blank", &fakeWorksClient{})

	_, err := svc.Trends(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFunders(t *testing.T) {
	client := &fakeWorksClient{
		sampleFn: func(query string, selectFields []string, limit int) ([]openalex.Work, error) {
			return []openalex.Work{
				{Grants: []openalex.Grant{
					{FunderDisplayName: "NIH"},
					{FunderDisplayName: "NIH"}, // two grants, one work: counts once
					{FunderDisplayName: "Wellcome Trust"},
				}},
				{Grants: []openalex.Grant{{FunderDisplayName: "NIH"}}},
				{Grants: []openalex.Grant{{Funder: "https://openalex.org/F1"}}},
			}, nil
		},
	}
	svc := newTestService("test_analyzer_funders", client)

	report, err := svc.Funders(context.Background(), "oncology")

	require.NoError(t, err)
	assert.Equal(t, []string{"grants"}, client.sampledFields)
	assert.Equal(t, 3, report.SampledWorks)
	require.NotEmpty(t, report.Funders)
	assert.Equal(t, NamedCount{Name: "NIH", Count: 2}, report.Funders[0])
}

func TestFundersDegradesOnUpstreamFailure(t *testing.T) {
	svc := newTestService("test_analyzer_funders_degraded", &fakeWorksClient{})

	report, err := svc.Funders(context.Background(), "oncology")

	require.NoError(t, err)
	assert.True(t, report.Degraded)
	assert.Empty(t, report.Funders)
}

func TestConcepts(t *testing.T) {
	client := &fakeWorksClient{
		conceptsFn: func(query string, limit int) ([]openalex.Concept, error) {
			return []openalex.Concept{
				{DisplayName: "Gene editing", Level: 2, WorksCount: 50000, RelevanceScore: 0.98},
				{DisplayName: ""},
			}, nil
		},
	}
	svc := newTestService("test_analyzer_concepts", client)

	report, err := svc.Concepts(context.Background(), "crispr")

	require.NoError(t, err)
	require.Len(t, report.Concepts, 1)
	assert.Equal(t, "Gene editing", report.Concepts[0].Name)
	assert.Equal(t, 50000, report.Concepts[0].WorksCount)
}

func TestCollaborators(t *testing.T) {
	author := func(id, name, inst string) openalex.Authorship {
		a := openalex.Authorship{Author: openalex.AuthorInfo{ID: id, DisplayName: name}}
		if inst != "" {
			a.Institutions = []openalex.Institution{{DisplayName: inst}}
		}
		return a
	}
	client := &fakeWorksClient{
		sampleFn: func(query string, selectFields []string, limit int) ([]openalex.Work, error) {
			return []openalex.Work{
				{Authorships: []openalex.Authorship{
					author("A1", "Ada Lovelace", "MIT"),
					author("A2", "Alan Turing", ""),
				}},
				{Authorships: []openalex.Authorship{
					author("A1", "Ada Lovelace", "MIT"),
				}},
			}, nil
		},
	}
	svc := newTestService("test_analyzer_collaborators", client)

	report, err := svc.Collaborators(context.Background(), "computability")

	require.NoError(t, err)
	assert.Equal(t, []string{"authorships"}, client.sampledFields)
	require.Len(t, report.Authors, 2)
	assert.Equal(t, AuthorEntry{Name: "Ada Lovelace", Affiliation: "MIT", Works: 2}, report.Authors[0])
	assert.Equal(t, AuthorEntry{Name: "Alan Turing", Works: 1}, report.Authors[1])
}

func TestSDGs(t *testing.T) {
	client := &fakeWorksClient{
		sampleFn: func(query string, selectFields []string, limit int) ([]openalex.Work, error) {
			return []openalex.Work{
				{SDGs: []openalex.SDG{{DisplayName: "Good health and well-being", Score: 0.8}}},
				{SDGs: []openalex.SDG{
					{DisplayName: "Good health and well-being", Score: 0.6},
					{DisplayName: "Climate action", Score: 0.4},
				}},
			}, nil
		},
	}
	svc := newTestService("test_analyzer_sdgs", client)

	report, err := svc.SDGs(context.Background(), "public health")

	require.NoError(t, err)
	require.Len(t, report.Goals, 2)
	assert.Equal(t, "Good health and well-being", report.Goals[0].Name)
	assert.Equal(t, 2, report.Goals[0].Count)
	assert.InDelta(t, 0.7, report.Goals[0].AvgScore, 1e-9)
}

func TestInstitutionStats(t *testing.T) {
	client := &fakeWorksClient{
		institutionFn: func(name string) (*openalex.Institution, error) {
			return &openalex.Institution{
				ID:          "https://openalex.org/I121332964",
				DisplayName: "Sorbonne University",
				CountryCode: "FR",
			}, nil
		},
		instWorksFn: func(institutionID string, limit int) ([]openalex.Work, error) {
			work := func(year, venueCitations int, venue string) openalex.Work {
				return openalex.Work{
					DisplayName:     "paper",
					PublicationYear: year,
					PrimaryLocation: &openalex.Location{
						Source: &openalex.Source{DisplayName: venue, CitedByCount: venueCitations},
					},
				}
			}
			return []openalex.Work{
				work(2024, 60000, "Nature"),
				work(2024, 12000, "PLOS ONE"),
				work(2023, 500, "Obscure Letters"),
				{DisplayName: "venueless preprint", PublicationYear: 2023},
			}, nil
		},
	}
	svc := newTestService("test_analyzer_institutions", client)

	report, err := svc.InstitutionStats(context.Background(), "sorbonne")

	require.NoError(t, err)
	assert.Equal(t, "Sorbonne University", report.Name)
	assert.Equal(t, "FR", report.CountryCode)
	assert.Equal(t, 4, report.SampledWorks)
	assert.Len(t, report.Articles, 4)

	assert.Equal(t, []YearCount{{Year: 2023, Count: 2}, {Year: 2024, Count: 2}}, report.ByYear)
	assert.Equal(t, []TierCount{
		{Tier: domain.TierQ1, Count: 1},
		{Tier: domain.TierQ2, Count: 1},
		{Tier: domain.TierQ4, Count: 1},
	}, report.ByTier)
	assert.Contains(t, report.TopVenues, NamedCount{Name: "Nature", Count: 1})
}

func TestInstitutionStatsDegradesWhenUnresolved(t *testing.T) {
	client := &fakeWorksClient{
		institutionFn: func(name string) (*openalex.Institution, error) {
			return nil, domain.NewNotFoundError("institution", name)
		},
	}
	svc := newTestService("test_analyzer_institutions_degraded", client)

	report, err := svc.InstitutionStats(context.Background(), "nonexistent")

	require.NoError(t, err)
	assert.True(t, report.Degraded)
	assert.Equal(t, "nonexistent", report.Name)
	assert.Empty(t, report.Articles)
}

func TestTopCounts(t *testing.T) {
	counts := map[string]int{"b": 2, "a": 2, "c": 5, "d": 1}

	top := topCounts(counts, 3)

	assert.Equal(t, []NamedCount{{Name: "c", Count: 5}, {Name: "a", Count: 2}, {Name: "b", Count: 2}}, top)
}
