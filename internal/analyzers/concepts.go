package analyzers

import "context"

// ConceptEntry is one related research concept with its catalog weight.
type ConceptEntry struct {
	Name       string  `json:"name"`
	Level      int     `json:"level"`
	WorksCount int     `json:"works_count"`
	Relevance  float64 `json:"relevance"`
}

// ConceptReport holds the research concepts related to a topic.
type ConceptReport struct {
	Topic    string         `json:"topic"`
	Concepts []ConceptEntry `json:"concepts"`
	Degraded bool           `json:"degraded"`
}

// Concepts returns the catalog concepts most relevant to a topic, in the
// relevance order the catalog returns them.
func (s *Service) Concepts(ctx context.Context, topic string) (*ConceptReport, error) {
	if err := validateTopic(topic); err != nil {
		return nil, err
	}
	s.metrics.AnalyzerRequests.WithLabelValues("concepts").Inc()
	logger := s.logger.With().Str("analyzer", "concepts").Str("topic", topic).Logger()

	report := &ConceptReport{Topic: topic}

	concepts, err := s.client.SearchConcepts(ctx, topic, s.config.TopN)
	if err != nil {
		s.degrade(logger, "concepts", err)
		report.Degraded = true
		return report, nil
	}

	for _, c := range concepts {
		if c.DisplayName == "" {
			continue
		}
		report.Concepts = append(report.Concepts, ConceptEntry{
			Name:       c.DisplayName,
			Level:      c.Level,
			WorksCount: c.WorksCount,
			Relevance:  c.RelevanceScore,
		})
	}

	logger.Debug().Int("concepts", len(report.Concepts)).Msg("concept analysis completed")
	return report, nil
}
