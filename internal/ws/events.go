package ws

import "topichat/internal/domain"

// Outbound event names on the client wire contract.
const (
	EventTopicMessages  = "topic-messages"
	EventNewMessage     = "new-message"
	EventNewTopic       = "new-topic"
	EventUserJoined     = "user-joined"
	EventUserLeft       = "user-left"
	EventUserTyping     = "user-typing"
	EventUserStopTyping = "user-stop-typing"
	EventError          = "error"
)

// TopicMessagesEvent carries the full message history of a topic; delivered
// to the joining connection only.
type TopicMessagesEvent struct {
	Type     string            `json:"type"`
	Messages []*domain.Message `json:"messages"`
}

// MessageEvent is the room-wide frame for a newly stored message.
type MessageEvent struct {
	Type string `json:"type"`
	*domain.Message
}

// TopicEvent announces a newly created topic to every connected client.
type TopicEvent struct {
	Type  string        `json:"type"`
	Topic *domain.Topic `json:"topic"`
}

// PresenceEvent covers joined/left/typing/stop-typing notifications.
type PresenceEvent struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
}

// ErrorEvent is delivered to a single connection when its request failed.
type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
