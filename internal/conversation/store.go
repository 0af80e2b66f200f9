package conversation

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"induk-agents/internal/metrics"
)

var ErrConversationNotFound = errors.New("conversation not found")

// Factory construye una conversacion nueva para el id dado.
type Factory func(id string) *Conversation

// Store mantiene las conversaciones vivas en memoria; las menos usadas se descartan.
type Store struct {
	cache   *lru.Cache[string, *Conversation]
	factory Factory
	metrics *metrics.Metrics
}

func NewStore(size int, factory Factory, m *metrics.Metrics) (*Store, error) {
	if factory == nil {
		return nil, errors.New("conversation factory is required")
	}
	cache, err := lru.New[string, *Conversation](size)
	if err != nil {
		return nil, fmt.Errorf("create conversation cache: %w", err)
	}
	return &Store{cache: cache, factory: factory, metrics: m}, nil
}

// Create registra una conversacion nueva con id aleatorio. Solo Add desaloja, asi que el
// gauge se actualiza aca.
func (s *Store) Create() *Conversation {
	id := uuid.NewString()
	conv := s.factory(id)
	s.cache.Add(id, conv)
	s.metrics.SetActiveConversations(s.cache.Len())
	return conv
}

func (s *Store) Get(id string) (*Conversation, error) {
	conv, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrConversationNotFound
	}
	return conv, nil
}

func (s *Store) Len() int {
	return s.cache.Len()
}
