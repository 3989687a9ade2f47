package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"topichat/internal/domain"
)

// TopicStore is the in-memory implementation of domain.TopicStore.
//
// A single mutex guards the topic table, the insertion order, and the
// per-topic message sequences, so every operation is all-or-nothing and
// MessageCount never drifts from the sequence length.
type TopicStore struct {
	mu       sync.RWMutex
	topics   map[string]*domain.Topic
	order    []string // topic ids in creation order
	messages map[string][]*domain.Message
}

func NewTopicStore() *TopicStore {
	return &TopicStore{
		topics:   make(map[string]*domain.Topic),
		messages: make(map[string][]*domain.Message),
	}
}

func (s *TopicStore) CreateTopic(name, description, sessionID string) (*domain.Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: topic name is required", domain.ErrValidation)
	}
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", domain.ErrValidation)
	}

	t := &domain.Topic{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedBy:   sessionID,
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.topics[t.ID] = t
	s.order = append(s.order, t.ID)
	s.messages[t.ID] = nil

	cp := *t
	return &cp, nil
}

func (s *TopicStore) ListTopics() []domain.TopicSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.TopicSummary, 0, len(s.order))
	for _, id := range s.order {
		t := s.topics[id]
		out = append(out, domain.TopicSummary{
			ID:           t.ID,
			Name:         t.Name,
			Description:  t.Description,
			CreatedAt:    t.CreatedAt,
			MessageCount: t.MessageCount,
		})
	}
	return out
}

func (s *TopicStore) GetTopic(id string) (*domain.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.topics[id]
	if !ok {
		return nil, fmt.Errorf("%w: topic %s", domain.ErrNotFound, id)
	}
	cp := *t
	return &cp, nil
}

func (s *TopicStore) AppendMessage(topicID, content, sessionID string) (*domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.topics[topicID]
	if !ok {
		return nil, fmt.Errorf("%w: topic %s", domain.ErrNotFound, topicID)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: message content cannot be empty", domain.ErrValidation)
	}

	m := &domain.Message{
		ID:        uuid.NewString(),
		TopicID:   topicID,
		Content:   content,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
	}
	s.messages[topicID] = append(s.messages[topicID], m)
	t.MessageCount++

	cp := *m
	return &cp, nil
}

func (s *TopicStore) GetMessages(topicID string) ([]*domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.topics[topicID]; !ok {
		return nil, fmt.Errorf("%w: topic %s", domain.ErrNotFound, topicID)
	}

	msgs := s.messages[topicID]
	out := make([]*domain.Message, len(msgs))
	for i, m := range msgs {
		cp := *m
		out[i] = &cp
	}
	return out, nil
}

func (s *TopicStore) TopicCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.topics)
}

// TopTopics ranks topics by message count descending; ties keep creation
// order (stable sort over the insertion-ordered slice).
func (s *TopicStore) TopTopics(n int) []domain.TopicActivity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ranked := make([]*domain.Topic, 0, len(s.order))
	for _, id := range s.order {
		ranked = append(ranked, s.topics[id])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MessageCount > ranked[j].MessageCount
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return lo.Map(ranked, func(t *domain.Topic, _ int) domain.TopicActivity {
		return domain.TopicActivity{Name: t.Name, MessageCount: t.MessageCount}
	})
}

// ActiveUserCount reports the number of distinct session ids across all
// stored messages, in all topics, for all time.
func (s *TopicStore) ActiveUserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, msgs := range s.messages {
		for _, m := range msgs {
			seen[m.SessionID] = struct{}{}
		}
	}
	return len(seen)
}
