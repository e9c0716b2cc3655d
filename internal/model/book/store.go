package book

import (
	"context"
	"sync"
)

// Store loads and saves the whole book collection. Implementations never cache
// between calls; every Load reflects the last Save.
type Store interface {
	Load(ctx context.Context) (Collection, error)
	Save(ctx context.Context, books Collection) error
}

// MemoryStore implements Store with an in-memory slice, suitable for tests.
type MemoryStore struct {
	mu    sync.Mutex
	items Collection
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied books.
func NewMemoryStore(items []Book) *MemoryStore {
	return &MemoryStore{items: Collection(items).Clone()}
}

// Load returns a copy of the stored collection.
func (s *MemoryStore) Load(_ context.Context) (Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Clone(), nil
}

// Save replaces the stored collection.
func (s *MemoryStore) Save(_ context.Context, books Collection) error {
	s.mu.Lock()
	s.items = books.Clone()
	s.mu.Unlock()
	return nil
}
