package state

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps snapshots in a map.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[string]Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[string]Snapshot)}
}

func (s *MemoryStore) Load(ctx context.Context, id string) (snap Snapshot, found bool, err error) {
	start := time.Now()
	defer func() { observeLoad(ctx, "memory", start, found, err) }()

	if err := ValidateID(id); err != nil {
		return Snapshot{}, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, found = s.snaps[id]
	return snap, found, nil
}

func (s *MemoryStore) Save(ctx context.Context, id string, snap Snapshot) (err error) {
	start := time.Now()
	defer func() { observeSave(ctx, "memory", start, err) }()

	snap, err = prepare(id, snap)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.snaps[id] = snap
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { observeDelete(ctx, "memory", start, err) }()

	if err := ValidateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snaps, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
