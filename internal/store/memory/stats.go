package memory

import (
	"sync"
	"time"

	"topichat/internal/domain"
)

// Stats is the in-memory implementation of domain.StatsAggregator. It owns
// only the period counters; ranked topics and the active-user figure are
// derived from the topic store at snapshot time.
type Stats struct {
	mu            sync.Mutex
	topics        domain.TopicStore
	messages      int
	topicsCreated int
	reports       int
	periodStart   time.Time
}

func NewStats(topics domain.TopicStore) *Stats {
	return &Stats{
		topics:      topics,
		periodStart: time.Now().UTC(),
	}
}

func (s *Stats) RecordMessage() {
	s.mu.Lock()
	s.messages++
	s.mu.Unlock()
}

func (s *Stats) RecordTopicCreated() {
	s.mu.Lock()
	s.topicsCreated++
	s.mu.Unlock()
}

func (s *Stats) RecordReport() {
	s.mu.Lock()
	s.reports++
	s.mu.Unlock()
}

// Snapshot returns the current period's summary. ActiveUsers is all-time
// (every session id that ever sent a message), not period-scoped; the
// counters are period-scoped and go back to zero on Reset.
func (s *Stats) Snapshot() *domain.Summary {
	s.mu.Lock()
	sum := &domain.Summary{
		TotalMessages: s.messages,
		TotalTopics:   s.topicsCreated,
		TotalReports:  s.reports,
	}
	s.mu.Unlock()

	sum.TopTopics = s.topics.TopTopics(3)
	sum.ActiveUsers = s.topics.ActiveUserCount()
	return sum
}

// Reset zeroes the counters and starts a new period. Safe to call repeatedly.
func (s *Stats) Reset() {
	s.mu.Lock()
	s.messages = 0
	s.topicsCreated = 0
	s.reports = 0
	s.periodStart = time.Now().UTC()
	s.mu.Unlock()
}

func (s *Stats) PeriodStart() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.periodStart
}
