// README: In-memory user store.
package user

import (
	"context"
	"strings"
	"sync"

	"rideshare/internal/types"
)

type MemoryStore struct {
	mu      sync.Mutex
	byID    map[types.ID]User
	byEmail map[string]types.ID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[types.ID]User),
		byEmail: make(map[string]types.ID),
	}
}

func (s *MemoryStore) Create(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, ok := s.byEmail[key]; ok {
		return ErrEmailTaken
	}
	s.byEmail[key] = u.ID
	s.byID[u.ID] = *u
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id types.ID) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) GetByEmail(_ context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	u := s.byID[id]
	return &u, nil
}
