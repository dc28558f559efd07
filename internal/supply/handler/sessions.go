package handler

import (
	"sync"

	"supply-service/internal/supply/store"
)

// Sessions hands out one store per interactive session. The registry
// map is guarded; the stores themselves are not — a session runs one
// edit-and-recompute cycle at a time.
type Sessions struct {
	mu     sync.Mutex
	stores map[string]*store.Store
}

func NewSessions() *Sessions {
	return &Sessions{stores: make(map[string]*store.Store)}
}

func (s *Sessions) Get(id string) *store.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stores[id]
	if !ok {
		st = store.New()
		s.stores[id] = st
	}
	return st
}

func (s *Sessions) Drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stores, id)
}
