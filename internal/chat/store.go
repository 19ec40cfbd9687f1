// Package chat holds the conversation and the rules for sending a turn.
package chat

import (
	"sync"

	"github.com/diogo/soulguide/internal/models"
)

// Store is an append-only, ordered list of messages. Order of Append is the
// order of display and the order of history sent to the model.
type Store struct {
	mu       sync.RWMutex
	messages []models.Message
}

// NewStore creates a store holding seed
func NewStore(seed ...models.Message) *Store {
	s := &Store{}
	s.messages = append(s.messages, seed...)
	return s
}

// Append adds msg to the end of the conversation
func (s *Store) Append(msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// Messages returns a copy of all messages
func (s *Store) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// UserCount returns the number of user messages
func (s *Store) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CountUser(s.messages)
}

// Last returns the most recent message, if any
func (s *Store) Last() (models.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.messages) == 0 {
		return models.Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}
