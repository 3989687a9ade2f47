package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"topichat/internal/domain"
	"topichat/internal/service"
	"topichat/internal/store/memory"
)

// MockNotifier mocks the notification collaborator.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendReport(ctx context.Context, r *domain.Report) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockNotifier) SendSummary(ctx context.Context, s *domain.Summary) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func TestReportSubmit(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store := memory.NewTopicStore()
		stats := memory.NewStats(store)
		reportLog := memory.NewReportLog()
		notifier := new(MockNotifier)
		notifier.On("SendReport", mock.Anything, mock.MatchedBy(func(r *domain.Report) bool {
			return r.Type == domain.ReportTypeTopic && r.TargetID == "topic-1" && r.Reason == "spam"
		})).Return(nil)

		svc := service.NewReportService(reportLog, stats, notifier, zerolog.Nop())

		r, err := svc.Submit(context.Background(), service.ReportSubmitInput{
			Type:      domain.ReportTypeTopic,
			TargetID:  "topic-1",
			Reason:    "spam",
			SessionID: "B",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, r.ID)

		assert.Equal(t, 1, reportLog.Count())
		assert.Equal(t, 1, stats.Snapshot().TotalReports)
		notifier.AssertNumberOfCalls(t, "SendReport", 1)
	})

	t.Run("ValidationFailureSkipsNotifier", func(t *testing.T) {
		store := memory.NewTopicStore()
		stats := memory.NewStats(store)
		reportLog := memory.NewReportLog()
		notifier := new(MockNotifier)

		svc := service.NewReportService(reportLog, stats, notifier, zerolog.Nop())

		_, err := svc.Submit(context.Background(), service.ReportSubmitInput{
			Type:     domain.ReportTypeTopic,
			TargetID: "topic-1",
			// reason missing
			SessionID: "B",
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, 0, reportLog.Count())
		assert.Equal(t, 0, stats.Snapshot().TotalReports)
		notifier.AssertNotCalled(t, "SendReport", mock.Anything, mock.Anything)
	})

	t.Run("DeliveryFailureKeepsReport", func(t *testing.T) {
		store := memory.NewTopicStore()
		stats := memory.NewStats(store)
		reportLog := memory.NewReportLog()
		notifier := new(MockNotifier)
		notifier.On("SendReport", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

		svc := service.NewReportService(reportLog, stats, notifier, zerolog.Nop())

		r, err := svc.Submit(context.Background(), service.ReportSubmitInput{
			Type:      domain.ReportTypeMessage,
			TargetID:  "msg-1",
			Reason:    "abuse",
			SessionID: "B",
		})
		assert.ErrorIs(t, err, domain.ErrDelivery)
		assert.NotNil(t, r)

		// the report and the counter both survive the failed notification
		assert.Equal(t, 1, reportLog.Count())
		assert.Equal(t, 1, stats.Snapshot().TotalReports)
	})
}
