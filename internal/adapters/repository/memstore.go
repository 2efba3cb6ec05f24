package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/pacetrend/internal/domain/model"
	"github.com/okian/pacetrend/pkg/metrics"
)

// MemoryStore is an in-memory Store keyed by activity ID.
// Records keep the position of their first insertion when replaced.
type MemoryStore struct {
	mu    sync.RWMutex
	index map[string]int // id -> position in items
	items []model.Activity

	maxSize int
}

// NewMemoryStore creates an empty store with configuration options.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{index: make(map[string]int)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upsert stores a, replacing any record with the same ID.
func (s *MemoryStore) Upsert(_ context.Context, a model.Activity) (bool, error) {
	if a.ID == "" {
		return false, ErrInvalidID
	}
	a = clone(a)

	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[a.ID]; ok {
		s.items[i] = a
		return true, nil
	}
	if s.maxSize > 0 && len(s.items) >= s.maxSize {
		return false, fmt.Errorf("upsert %s: %w", a.ID, ErrStoreFull)
	}
	s.index[a.ID] = len(s.items)
	s.items = append(s.items, a)
	metrics.UpdateStoredActivities(len(s.items))
	return false, nil
}

// Snapshot returns a deep copy of the stored records.
func (s *MemoryStore) Snapshot(_ context.Context) []model.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Activity, len(s.items))
	for i, a := range s.items {
		out[i] = clone(a)
	}
	return out
}

// Count returns the number of stored records.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// clone copies the pointer fields so callers never share state with the store.
func clone(a model.Activity) model.Activity {
	if a.DistanceMeters != nil {
		v := *a.DistanceMeters
		a.DistanceMeters = &v
	}
	if a.MovingTimeSeconds != nil {
		v := *a.MovingTimeSeconds
		a.MovingTimeSeconds = &v
	}
	if a.StartDateLocal != nil {
		v := *a.StartDateLocal
		a.StartDateLocal = &v
	}
	return a
}
