package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/parley-ai/parley/pkg/core"
)

// Store is the debate persistence contract.
type Store = core.DebateStore

var _ Store = (*InMemoryStore)(nil)

// InMemoryStore implements DebateStore using in-memory storage.
// Contents live for the process lifetime; there is no eviction.
type InMemoryStore struct {
	debates map[string]*core.Debate
	order   []string // IDs in creation order
	mutex   sync.RWMutex
}

// NewInMemoryStore creates a new in-memory debate store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		debates: make(map[string]*core.Debate),
	}
}

// Create stores a new debate.
func (s *InMemoryStore) Create(ctx context.Context, debate *core.Debate) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.debates[debate.ID]; exists {
		return fmt.Errorf("debate already exists: %s", debate.ID)
	}

	s.debates[debate.ID] = debate.Clone()
	s.order = append(s.order, debate.ID)
	return nil
}

// Get retrieves a debate by ID.
func (s *InMemoryStore) Get(ctx context.Context, id string) (*core.Debate, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	debate, exists := s.debates[id]
	if !exists {
		return nil, core.NotFoundErrorf("debate %s not found", id)
	}
	return debate.Clone(), nil
}

// Update replaces the stored state of an existing debate.
func (s *InMemoryStore) Update(ctx context.Context, debate *core.Debate) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.debates[debate.ID]; !exists {
		return core.NotFoundErrorf("debate %s not found", debate.ID)
	}
	s.debates[debate.ID] = debate.Clone()
	return nil
}

// Delete removes a debate.
func (s *InMemoryStore) Delete(ctx context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.debates[id]; !exists {
		return core.NotFoundErrorf("debate %s not found", id)
	}
	delete(s.debates, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns all debates in creation order.
func (s *InMemoryStore) List(ctx context.Context) ([]*core.Debate, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	debates := make([]*core.Debate, 0, len(s.order))
	for _, id := range s.order {
		debates = append(debates, s.debates[id].Clone())
	}
	return debates, nil
}

// Close clears the store.
func (s *InMemoryStore) Close(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.debates = make(map[string]*core.Debate)
	s.order = nil
	return nil
}
