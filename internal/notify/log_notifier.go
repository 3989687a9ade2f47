package notify

import (
	"context"

	"github.com/rs/zerolog"

	"topichat/internal/domain"
)

// LogNotifier writes notifications to the application log instead of sending
// mail. Used when SMTP is not configured so the server still runs locally.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notify").Logger()}
}

func (n *LogNotifier) SendReport(ctx context.Context, r *domain.Report) error {
	n.log.Info().
		Str("report_id", r.ID).
		Str("type", string(r.Type)).
		Str("target_id", r.TargetID).
		Str("reason", r.Reason).
		Msg("report notification")
	return nil
}

func (n *LogNotifier) SendSummary(ctx context.Context, s *domain.Summary) error {
	n.log.Info().
		Int("total_messages", s.TotalMessages).
		Int("total_topics", s.TotalTopics).
		Int("total_reports", s.TotalReports).
		Int("active_users", s.ActiveUsers).
		Msg("summary notification")
	return nil
}
