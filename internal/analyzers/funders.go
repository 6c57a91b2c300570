package analyzers

import "context"

// FunderReport holds the most frequent funders across a sample of works on a
// topic.
type FunderReport struct {
	Topic        string       `json:"topic"`
	SampledWorks int          `json:"sampled_works"`
	Funders      []NamedCount `json:"funders"`
	Degraded     bool         `json:"degraded"`
}

// Funders samples recent works on a topic and aggregates their grant funders,
// returning the top funders by number of funded works in the sample.
func (s *Service) Funders(ctx context.Context, topic string) (*FunderReport, error) {
	if err := validateTopic(topic); err != nil {
		return nil, err
	}
	s.metrics.AnalyzerRequests.WithLabelValues("funders").Inc()
	logger := s.logger.With().Str("analyzer", "funders").Str("topic", topic).Logger()

	report := &FunderReport{Topic: topic}

	works, err := s.client.SampleWorks(ctx, topic, []string{"grants"}, s.config.SampleSize)
	if err != nil {
		s.degrade(logger, "funders", err)
		report.Degraded = true
		return report, nil
	}
	report.SampledWorks = len(works)

	// A funder counts once per work even when it backs multiple grants on it.
	counts := make(map[string]int)
	for _, w := range works {
		seen := make(map[string]struct{}, len(w.Grants))
		for _, g := range w.Grants {
			name := g.FunderDisplayName
			if name == "" {
				name = g.Funder
			}
			if name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			counts[name]++
		}
	}
	report.Funders = topCounts(counts, s.config.TopN)

	logger.Debug().Int("funders", len(report.Funders)).Msg("funder analysis completed")
	return report, nil
}
