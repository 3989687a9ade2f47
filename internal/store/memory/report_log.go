package memory

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"topichat/internal/domain"
)

// ReportLog is the in-memory implementation of domain.ReportLog. Entries are
// append-only; nothing is ever mutated or removed.
type ReportLog struct {
	mu      sync.RWMutex
	reports []*domain.Report
}

func NewReportLog() *ReportLog {
	return &ReportLog{}
}

func (l *ReportLog) Submit(typ domain.ReportType, targetID, reason, sessionID string) (*domain.Report, error) {
	if typ != domain.ReportTypeTopic && typ != domain.ReportTypeMessage {
		return nil, fmt.Errorf("%w: report type must be %q or %q", domain.ErrValidation, domain.ReportTypeTopic, domain.ReportTypeMessage)
	}
	if targetID == "" {
		return nil, fmt.Errorf("%w: report target id is required", domain.ErrValidation)
	}
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: report reason is required", domain.ErrValidation)
	}
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", domain.ErrValidation)
	}

	r := &domain.Report{
		ID:        uuid.NewString(),
		Type:      typ,
		TargetID:  targetID,
		Reason:    reason,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
	}

	l.mu.Lock()
	l.reports = append(l.reports, r)
	l.mu.Unlock()

	cp := *r
	return &cp, nil
}

func (l *ReportLog) List() []*domain.Report {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*domain.Report, len(l.reports))
	for i, r := range l.reports {
		cp := *r
		out[i] = &cp
	}
	return out
}

func (l *ReportLog) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.reports)
}
