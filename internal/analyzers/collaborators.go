package analyzers

import (
	"context"
	"sort"
)

// AuthorEntry is one author with their primary affiliation and the number of
// sampled works they appear on.
type AuthorEntry struct {
	Name        string `json:"name"`
	Affiliation string `json:"affiliation,omitempty"`
	Works       int    `json:"works"`
}

// CollaboratorReport holds the authors most active on a topic, measured over
// a sample of recent works.
type CollaboratorReport struct {
	Topic        string        `json:"topic"`
	SampledWorks int           `json:"sampled_works"`
	Authors      []AuthorEntry `json:"authors"`
	Degraded     bool          `json:"degraded"`
}

// Collaborators samples recent works on a topic and aggregates their authors,
// returning the most prolific ones with their affiliations. Useful for
// spotting candidate collaboration partners.
func (s *Service) Collaborators(ctx context.Context, topic string) (*CollaboratorReport, error) {
	if err := validateTopic(topic); err != nil {
		return nil, err
	}
	s.metrics.AnalyzerRequests.WithLabelValues("collaborators").Inc()
	logger := s.logger.With().Str("analyzer", "collaborators").Str("topic", topic).Logger()

	report := &CollaboratorReport{Topic: topic}

	works, err := s.client.SampleWorks(ctx, topic, []string{"authorships"}, s.config.SampleSize)
	if err != nil {
		s.degrade(logger, "collaborators", err)
		report.Degraded = true
		return report, nil
	}
	report.SampledWorks = len(works)

	type agg struct {
		name        string
		affiliation string
		works       int
	}
	authors := make(map[string]*agg)
	for _, w := range works {
		for _, a := range w.Authorships {
			if a.Author.DisplayName == "" {
				continue
			}
			// Authors without an ID cannot be distinguished reliably; fall
			// back to the display name as the identity key.
			key := a.Author.ID
			if key == "" {
				key = a.Author.DisplayName
			}
			entry, ok := authors[key]
			if !ok {
				entry = &agg{name: a.Author.DisplayName}
				authors[key] = entry
			}
			entry.works++
			if entry.affiliation == "" && len(a.Institutions) > 0 {
				entry.affiliation = a.Institutions[0].DisplayName
			}
		}
	}

	for _, a := range authors {
		report.Authors = append(report.Authors, AuthorEntry{
			Name:        a.name,
			Affiliation: a.affiliation,
			Works:       a.works,
		})
	}
	sort.Slice(report.Authors, func(i, j int) bool {
		if report.Authors[i].Works != report.Authors[j].Works {
			return report.Authors[i].Works > report.Authors[j].Works
		}
		return report.Authors[i].Name < report.Authors[j].Name
	})
	if len(report.Authors) > s.config.TopN {
		report.Authors = report.Authors[:s.config.TopN]
	}

	logger.Debug().Int("authors", len(report.Authors)).Msg("collaborator analysis completed")
	return report, nil
}
