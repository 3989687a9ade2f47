package notify

import (
	"context"

	"topichat/internal/domain"
)

// Notifier delivers moderation reports and activity summaries to the
// administrator. Implementations are fallible; callers decide what a failed
// delivery means (the summary path refuses to reset counters on failure).
type Notifier interface {
	SendReport(ctx context.Context, r *domain.Report) error
	SendSummary(ctx context.Context, s *domain.Summary) error
}
