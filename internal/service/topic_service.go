package service

import (
	"github.com/rs/zerolog"

	"topichat/internal/domain"
)

// TopicBroadcaster is the slice of the room hub the topic service needs:
// global fan-out of newly created topics.
type TopicBroadcaster interface {
	BroadcastNewTopic(t *domain.Topic)
}

// TopicService orchestrates topic CRUD: store writes, the topic-creation
// counter, and the new-topic fan-out.
type TopicService struct {
	store       domain.TopicStore
	stats       domain.StatsAggregator
	broadcaster TopicBroadcaster
	log         zerolog.Logger
}

func NewTopicService(store domain.TopicStore, stats domain.StatsAggregator, broadcaster TopicBroadcaster, log zerolog.Logger) *TopicService {
	return &TopicService{
		store:       store,
		stats:       stats,
		broadcaster: broadcaster,
		log:         log.With().Str("component", "topics").Logger(),
	}
}

type TopicCreateInput struct {
	Name        string
	Description string
	SessionID   string
}

// Create stores the topic, counts it for the current period, and announces
// it to every connected client.
func (s *TopicService) Create(in TopicCreateInput) (*domain.Topic, error) {
	t, err := s.store.CreateTopic(in.Name, in.Description, in.SessionID)
	if err != nil {
		return nil, err
	}
	s.stats.RecordTopicCreated()
	s.broadcaster.BroadcastNewTopic(t)

	s.log.Info().Str("topic_id", t.ID).Str("name", t.Name).Msg("topic created")
	return t, nil
}

func (s *TopicService) List() []domain.TopicSummary {
	return s.store.ListTopics()
}

func (s *TopicService) Get(id string) (*domain.Topic, error) {
	return s.store.GetTopic(id)
}

func (s *TopicService) Messages(topicID string) ([]*domain.Message, error) {
	return s.store.GetMessages(topicID)
}

func (s *TopicService) Count() int {
	return s.store.TopicCount()
}
