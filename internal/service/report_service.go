package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"topichat/internal/domain"
	"topichat/internal/notify"
)

// ReportService handles report submission: append to the log, count it for
// the period, and forward it to the notification collaborator. A failed
// notification does not undo the stored report or the counter; the report is
// in the log either way.
type ReportService struct {
	reports  domain.ReportLog
	stats    domain.StatsAggregator
	notifier notify.Notifier
	log      zerolog.Logger
}

func NewReportService(reports domain.ReportLog, stats domain.StatsAggregator, notifier notify.Notifier, log zerolog.Logger) *ReportService {
	return &ReportService{
		reports:  reports,
		stats:    stats,
		notifier: notifier,
		log:      log.With().Str("component", "reports").Logger(),
	}
}

type ReportSubmitInput struct {
	Type      domain.ReportType
	TargetID  string
	Reason    string
	SessionID string
}

func (s *ReportService) Submit(ctx context.Context, in ReportSubmitInput) (*domain.Report, error) {
	r, err := s.reports.Submit(in.Type, in.TargetID, in.Reason, in.SessionID)
	if err != nil {
		return nil, err
	}
	s.stats.RecordReport()

	if err := s.notifier.SendReport(ctx, r); err != nil {
		s.log.Error().Err(err).Str("report_id", r.ID).Msg("report notification failed")
		return r, fmt.Errorf("%w: %v", domain.ErrDelivery, err)
	}

	s.log.Info().Str("report_id", r.ID).Str("type", string(r.Type)).Msg("report submitted")
	return r, nil
}

func (s *ReportService) Count() int {
	return s.reports.Count()
}
