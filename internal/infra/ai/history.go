package ai

import (
	"sync"

	"inkwell/internal/domain/service"
)

const defaultHistoryLimit = 20

// HistoryStore keeps a bounded conversation history per user in memory.
// When a conversation exceeds the limit, the oldest turns are evicted first,
// so the retained window always holds the most recent exchange.
type HistoryStore struct {
	mu      sync.Mutex
	limit   int
	history map[string][]service.AIMessage
}

// NewHistoryStore builds a store that retains up to limit turns per user.
func NewHistoryStore(limit int) *HistoryStore {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	return &HistoryStore{
		limit:   limit,
		history: make(map[string][]service.AIMessage),
	}
}

// Append records turns for a user and trims the history to the limit.
func (s *HistoryStore) Append(userKey string, messages ...service.AIMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := append(s.history[userKey], messages...)
	if overflow := len(turns) - s.limit; overflow > 0 {
		turns = turns[overflow:]
	}
	s.history[userKey] = turns
}

// Get returns a copy of the user's retained history, oldest first.
func (s *HistoryStore) Get(userKey string) []service.AIMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := s.history[userKey]
	out := make([]service.AIMessage, len(turns))
	copy(out, turns)

	return out
}

// Clear discards a user's history.
func (s *HistoryStore) Clear(userKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.history, userKey)
}
