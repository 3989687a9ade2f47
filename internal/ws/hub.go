package ws

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"topichat/internal/domain"
)

// Conn is a subscriber handle the hub delivers events to. The production
// implementation wraps *websocket.Conn; tests supply fakes.
type Conn interface {
	WriteEvent(v any) error
	Close() error
}

// Hub maps live connections to topic rooms and routes events. A single mutex
// guards membership and the store interactions of Join and SendMessage, so a
// join's register+snapshot and a send's append+broadcast never interleave: a
// joining connection either sees a concurrent message in its snapshot or
// receives the broadcast, never both and never neither.
type Hub struct {
	store domain.TopicStore
	stats domain.StatsAggregator
	log   zerolog.Logger

	mu    sync.Mutex
	conns map[Conn]struct{}
	rooms map[string]map[Conn]struct{}
}

func NewHub(store domain.TopicStore, stats domain.StatsAggregator, log zerolog.Logger) *Hub {
	return &Hub{
		store: store,
		stats: stats,
		log:   log.With().Str("component", "hub").Logger(),
		conns: make(map[Conn]struct{}),
		rooms: make(map[string]map[Conn]struct{}),
	}
}

// Register adds a connection to the global fan-out set. It belongs to no room
// until it joins one.
func (h *Hub) Register(conn Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
}

// Join subscribes the connection to a topic room, delivers the current
// message history to it, and notifies the other members. A topic with no
// stored record yields an empty snapshot rather than an error.
func (h *Hub) Join(conn Conn, topicID, sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[topicID] == nil {
		h.rooms[topicID] = make(map[Conn]struct{})
	}
	h.rooms[topicID][conn] = struct{}{}

	history, err := h.store.GetMessages(topicID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		h.log.Error().Err(err).Str("topic_id", topicID).Msg("fetch history")
	}
	if history == nil {
		history = []*domain.Message{}
	}
	h.deliver(conn, TopicMessagesEvent{Type: EventTopicMessages, Messages: history})

	h.broadcastRoom(topicID, PresenceEvent{Type: EventUserJoined, SessionID: sessionID}, conn)
}

// Leave removes the connection from the room and notifies the remaining
// members.
func (h *Hub) Leave(conn Conn, topicID, sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromRoom(topicID, conn)
	h.broadcastRoom(topicID, PresenceEvent{Type: EventUserLeft, SessionID: sessionID}, conn)
}

// SendMessage appends the message to the topic's sequence and broadcasts it
// to every room member, sender included. Store failures go back to the sender
// only; nothing is broadcast and no counter moves.
func (h *Hub) SendMessage(conn Conn, topicID, content, sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	msg, err := h.store.AppendMessage(topicID, content, sessionID)
	if err != nil {
		h.deliver(conn, ErrorEvent{Type: EventError, Message: sendErrorMessage(err)})
		return
	}
	h.stats.RecordMessage()

	h.broadcastRoom(topicID, MessageEvent{Type: EventNewMessage, Message: msg}, nil)
}

// Typing broadcasts a typing indicator to the other room members.
func (h *Hub) Typing(conn Conn, topicID, sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcastRoom(topicID, PresenceEvent{Type: EventUserTyping, SessionID: sessionID}, conn)
}

// StopTyping broadcasts the end of a typing indicator to the other room
// members.
func (h *Hub) StopTyping(conn Conn, topicID, sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcastRoom(topicID, PresenceEvent{Type: EventUserStopTyping, SessionID: sessionID}, conn)
}

// Disconnect removes the connection from every room and the global set.
// Departure is silent: no user-left frames are emitted.
func (h *Hub) Disconnect(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.conns, conn)
	for topicID := range h.rooms {
		h.removeFromRoom(topicID, conn)
	}
}

// BroadcastNewTopic announces a created topic to every connected client,
// room membership regardless.
func (h *Hub) BroadcastNewTopic(t *domain.Topic) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		h.deliver(conn, TopicEvent{Type: EventNewTopic, Topic: t})
	}
}

// RoomSize reports the current number of members in a topic's room.
func (h *Hub) RoomSize(topicID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[topicID])
}

// broadcastRoom delivers the event to every member of the room except the
// excluded connection. Callers hold h.mu.
func (h *Hub) broadcastRoom(topicID string, event any, exclude Conn) {
	for member := range h.rooms[topicID] {
		if member == exclude {
			continue
		}
		h.deliver(member, event)
	}
}

// removeFromRoom drops the membership entry; empty rooms are pruned. Callers
// hold h.mu.
func (h *Hub) removeFromRoom(topicID string, conn Conn) {
	members, ok := h.rooms[topicID]
	if !ok {
		return
	}
	delete(members, conn)
	if len(members) == 0 {
		delete(h.rooms, topicID)
	}
}

// deliver writes the event to a single connection. Failed connections are
// closed; actual removal happens on their Disconnect.
func (h *Hub) deliver(conn Conn, event any) {
	if err := conn.WriteEvent(event); err != nil {
		conn.Close()
	}
}

func sendErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "Topic not found"
	case errors.Is(err, domain.ErrValidation):
		return "Message content cannot be empty"
	default:
		return "Failed to send message"
	}
}
