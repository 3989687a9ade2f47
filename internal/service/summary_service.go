package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"topichat/internal/domain"
	"topichat/internal/notify"
)

// SummaryService produces the periodic activity summary. Counters reset only
// after the summary reached the notifier, so a delivery failure keeps the
// period's counts for the next trigger.
type SummaryService struct {
	stats    domain.StatsAggregator
	notifier notify.Notifier
	log      zerolog.Logger
}

func NewSummaryService(stats domain.StatsAggregator, notifier notify.Notifier, log zerolog.Logger) *SummaryService {
	return &SummaryService{
		stats:    stats,
		notifier: notifier,
		log:      log.With().Str("component", "summary").Logger(),
	}
}

// ProduceSummaryAndReset snapshots the current period, hands the summary to
// the notifier, and resets the counters on success.
func (s *SummaryService) ProduceSummaryAndReset(ctx context.Context) (*domain.Summary, error) {
	sum := s.stats.Snapshot()

	if err := s.notifier.SendSummary(ctx, sum); err != nil {
		s.log.Error().Err(err).Msg("summary delivery failed, counters retained")
		return nil, fmt.Errorf("%w: %v", domain.ErrDelivery, err)
	}
	s.stats.Reset()

	s.log.Info().
		Int("total_messages", sum.TotalMessages).
		Int("total_topics", sum.TotalTopics).
		Int("total_reports", sum.TotalReports).
		Msg("summary produced, counters reset")
	return sum, nil
}

// Run triggers ProduceSummaryAndReset on the given cadence until the context
// is cancelled.
func (s *SummaryService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info().Dur("interval", interval).Msg("summary scheduler started")
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("summary scheduler stopped")
			return
		case <-ticker.C:
			if _, err := s.ProduceSummaryAndReset(ctx); err != nil {
				// counters stay intact; next tick retries with the totals
				continue
			}
		}
	}
}
