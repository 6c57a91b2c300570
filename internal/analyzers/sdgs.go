package analyzers

import (
	"context"
	"sort"
)

// SDGEntry is one sustainable development goal with its aggregate weight
// across the sample.
type SDGEntry struct {
	Name     string  `json:"name"`
	Count    int     `json:"count"`
	AvgScore float64 `json:"avg_score"`
}

// SDGReport holds the sustainable development goals associated with works on
// a topic.
type SDGReport struct {
	Topic        string     `json:"topic"`
	SampledWorks int        `json:"sampled_works"`
	Goals        []SDGEntry `json:"goals"`
	Degraded     bool       `json:"degraded"`
}

// SDGs samples recent works on a topic and aggregates their sustainable
// development goal tags, ranked by how many works carry each goal.
func (s *Service) SDGs(ctx context.Context, topic string) (*SDGReport, error) {
	if err := validateTopic(topic); err != nil {
		return nil, err
	}
	s.metrics.AnalyzerRequests.WithLabelValues("sdgs").Inc()
	logger := s.logger.With().Str("analyzer", "sdgs").Str("topic", topic).Logger()

	report := &SDGReport{Topic: topic}

	works, err := s.client.SampleWorks(ctx, topic, []string{"sustainable_development_goals"}, s.config.SampleSize)
	if err != nil {
		s.degrade(logger, "sdgs", err)
		report.Degraded = true
		return report, nil
	}
	report.SampledWorks = len(works)

	type agg struct {
		count int
		total float64
	}
	sums := make(map[string]*agg)
	for _, w := range works {
		for _, goal := range w.SDGs {
			if goal.DisplayName == "" {
				continue
			}
			a, ok := sums[goal.DisplayName]
			if !ok {
				a = &agg{}
				sums[goal.DisplayName] = a
			}
			a.count++
			a.total += goal.Score
		}
	}

	for name, a := range sums {
		report.Goals = append(report.Goals, SDGEntry{
			Name:     name,
			Count:    a.count,
			AvgScore: a.total / float64(a.count),
		})
	}
	sort.Slice(report.Goals, func(i, j int) bool {
		if report.Goals[i].Count != report.Goals[j].Count {
			return report.Goals[i].Count > report.Goals[j].Count
		}
		return report.Goals[i].Name < report.Goals[j].Name
	})
	if len(report.Goals) > s.config.TopN {
		report.Goals = report.Goals[:s.config.TopN]
	}

	logger.Debug().Int("goals", len(report.Goals)).Msg("SDG analysis completed")
	return report, nil
}
