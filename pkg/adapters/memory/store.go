// Package memory implements ports.SnapshotStore in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/silo/pkg/domain"
)

// Store holds snapshots in a process-local map. Safe for concurrent use.
// Best suited for tests or ephemeral stores that don't need durability.
type Store struct {
	data map[string]domain.Snapshot
	mu   sync.RWMutex
}

// NewStore creates an empty in-memory snapshot store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Snapshot),
	}
}

// Save stores a deep copy of the snapshot, simulating serialization so the
// caller can't mutate stored state through shared slices.
func (s *Store) Save(ctx context.Context, collection string, snap domain.Snapshot) error {
	copied := snap
	copied.Records = make([]domain.Record, len(snap.Records))
	for i, rec := range snap.Records {
		copied.Records[i] = *rec.Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[collection] = copied
	return nil
}

// Load retrieves a deep copy of the snapshot for a collection.
func (s *Store) Load(ctx context.Context, collection string) (domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.data[collection]
	if !ok {
		return domain.Snapshot{}, domain.ErrSnapshotNotFound
	}

	ret := snap
	ret.Records = make([]domain.Record, len(snap.Records))
	for i, rec := range snap.Records {
		ret.Records[i] = *rec.Clone()
	}
	return ret, nil
}
