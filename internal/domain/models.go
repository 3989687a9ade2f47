package domain

import "time"

// Topic represents a named discussion room with its own message history.
type Topic struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CreatedBy    string    `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
	MessageCount int       `json:"messageCount"`
}

// TopicSummary is the public projection of a Topic returned by list
// endpoints; it omits the creator's session id.
type TopicSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
	MessageCount int       `json:"messageCount"`
}

// Message represents a single chat message within a topic.
type Message struct {
	ID        string    `json:"id"`
	TopicID   string    `json:"topicId"`
	Content   string    `json:"content"`
	SessionID string    `json:"sessionId"`
	Timestamp time.Time `json:"timestamp"`
}

// ReportType distinguishes what kind of entity a report targets.
type ReportType string

const (
	ReportTypeTopic   ReportType = "topic"
	ReportTypeMessage ReportType = "message"
)

// Report is a user-submitted complaint about a topic or a message.
type Report struct {
	ID        string     `json:"id"`
	Type      ReportType `json:"type"`
	TargetID  string     `json:"targetId"`
	Reason    string     `json:"reason"`
	SessionID string     `json:"sessionId"`
	Timestamp time.Time  `json:"timestamp"`
}

// TopicActivity is a ranking entry in the activity summary.
type TopicActivity struct {
	Name         string `json:"name"`
	MessageCount int    `json:"messageCount"`
}

// Summary aggregates one counting period's activity. The Total* counters are
// scoped to the period; ActiveUsers counts distinct session ids across all
// stored messages regardless of period.
type Summary struct {
	TotalMessages int             `json:"totalMessages"`
	TotalTopics   int             `json:"totalTopics"`
	TotalReports  int             `json:"totalReports"`
	TopTopics     []TopicActivity `json:"topTopics"`
	ActiveUsers   int             `json:"activeUsers"`
}
