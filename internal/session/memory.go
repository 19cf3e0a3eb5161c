package session

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]string
}

// NewMemoryStore builds an in-memory session store. Sessions last until
// process restart.
func NewMemoryStore() Store {
	return &memoryStore{sessions: make(map[string]string)}
}

func (s *memoryStore) Create(_ context.Context, phone string) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = phone
	return token, nil
}

func (s *memoryStore) Lookup(_ context.Context, token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	phone, ok := s.sessions[token]
	if !ok {
		return "", ErrNotFound
	}
	return phone, nil
}
