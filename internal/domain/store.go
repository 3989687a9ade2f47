package domain

import "time"

// TopicStore owns the topic and message lifecycles. Messages for a topic form
// an append-only sequence in arrival order; a topic's MessageCount always
// equals the length of its sequence.
type TopicStore interface {
	CreateTopic(name, description, sessionID string) (*Topic, error)
	ListTopics() []TopicSummary
	GetTopic(id string) (*Topic, error)
	AppendMessage(topicID, content, sessionID string) (*Message, error)
	GetMessages(topicID string) ([]*Message, error)
	TopicCount() int

	// TopTopics returns the n topics with the highest message counts,
	// descending; ties preserve creation order.
	TopTopics(n int) []TopicActivity
	// ActiveUserCount reports distinct session ids across all stored messages.
	ActiveUserCount() int
}

// ReportLog owns the report lifecycle; reports are append-only.
type ReportLog interface {
	Submit(typ ReportType, targetID, reason, sessionID string) (*Report, error)
	List() []*Report
	Count() int
}

// StatsAggregator holds the rolling counters for the current period. Record
// methods are safe under concurrent invocation. Reset zeroes the counters and
// starts a new period; callers gate it on successful summary delivery.
type StatsAggregator interface {
	RecordMessage()
	RecordTopicCreated()
	RecordReport()
	Snapshot() *Summary
	Reset()
	PeriodStart() time.Time
}
