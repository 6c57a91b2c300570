package analyzers

import (
	"context"
	"sort"
	"strconv"
)

// TrendReport holds per-year publication counts for a topic over the recent
// window.
type TrendReport struct {
	Topic    string      `json:"topic"`
	FromYear int         `json:"from_year"`
	Points   []YearCount `json:"points"`
	Degraded bool        `json:"degraded"`
}

// Trends returns per-year publication counts for a topic over the configured
// window, oldest year first. Years with no publications are absent from the
// points; the caller can zero-fill if it needs a dense series.
func (s *Service) Trends(ctx context.Context, topic string) (*TrendReport, error) {
	if err := validateTopic(topic); err != nil {
		return nil, err
	}
	s.metrics.AnalyzerRequests.WithLabelValues("trends").Inc()
	logger := s.logger.With().Str("analyzer", "trends").Str("topic", topic).Logger()

	fromYear := s.now().Year() - s.config.TrendYears + 1
	report := &TrendReport{Topic: topic, FromYear: fromYear}

	buckets, err := s.client.GroupWorksByYear(ctx, topic, fromYear)
	if err != nil {
		s.degrade(logger, "trends", err)
		report.Degraded = true
		return report, nil
	}

	for _, b := range buckets {
		year, err := strconv.Atoi(b.Key)
		if err != nil || year < fromYear {
			continue
		}
		report.Points = append(report.Points, YearCount{Year: year, Count: b.Count})
	}
	sort.Slice(report.Points, func(i, j int) bool {
		return report.Points[i].Year < report.Points[j].Year
	})

	logger.Debug().Int("points", len(report.Points)).Msg("trend analysis completed")
	return report, nil
}
