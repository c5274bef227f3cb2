package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/snapshot"
)

// Store implements ports.SnapshotStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*snapshot.Snapshot
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*snapshot.Snapshot),
	}
}

// Save keeps the snapshot in memory. Snapshots are immutable, so no copy is made.
func (s *Store) Save(ctx context.Context, key string, snap *snapshot.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = snap
	return nil
}

// Load retrieves the snapshot from memory.
func (s *Store) Load(ctx context.Context, key string) (*snapshot.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.data[key]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return snap, nil
}

// Delete removes the snapshot.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns the stored keys in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for key := range s.data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
