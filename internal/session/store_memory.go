package session

import (
	"context"
	"sync"

	"trolley/pkg/platform/sentinel"
)

// InMemoryStore keeps the credential in process memory. Used by tests
// and by callers that explicitly do not want persistence.
type InMemoryStore struct {
	mu    sync.Mutex
	token string
	set   bool
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Load(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return "", sentinel.ErrNotFound
	}
	return s.token, nil
}

func (s *InMemoryStore) Save(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.set = true
	return nil
}

func (s *InMemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.set = false
	return nil
}
