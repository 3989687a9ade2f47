package httpserver

import (
	"net/http"
	"time"

	"topichat/internal/domain"
	"topichat/internal/service"
)

type statsResponse struct {
	Messages    int                    `json:"messages"`
	Topics      int                    `json:"topics"`
	Reports     int                    `json:"reports"`
	PeriodStart string                 `json:"periodStart"`
	TopTopics   []domain.TopicActivity `json:"topTopics"`
	ActiveUsers int                    `json:"activeUsers"`
	TotalTopics int                    `json:"totalTopicsInDb"`
	TotalRpts   int                    `json:"totalReportsInDb"`
}

// handleGetStats exposes the live counters for debugging; unlike the summary
// trigger it never resets anything.
func handleGetStats(stats domain.StatsAggregator, topics *service.TopicService, reports *service.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum := stats.Snapshot()
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"stats": statsResponse{
				Messages:    sum.TotalMessages,
				Topics:      sum.TotalTopics,
				Reports:     sum.TotalReports,
				PeriodStart: stats.PeriodStart().Format(time.RFC3339),
				TopTopics:   sum.TopTopics,
				ActiveUsers: sum.ActiveUsers,
				TotalTopics: topics.Count(),
				TotalRpts:   reports.Count(),
			},
		})
	}
}

// handleSendSummary is the manual trigger for the periodic summary; it mails
// the summary and resets the counters on success.
func handleSendSummary(summaries *service.SummaryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum, err := summaries.ProduceSummaryAndReset(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Summary sent",
			"summary": sum,
		})
	}
}
