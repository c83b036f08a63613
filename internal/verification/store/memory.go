// Package store persists verification results.
package store

import (
	"context"
	"sort"
	"sync"

	"numcheck/internal/verification/models"
)

// InMemory keeps results in process memory. Identifiers start at 1 and are
// never reused, even after deletion.
type InMemory struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]models.Record
}

func NewInMemory() *InMemory {
	return &InMemory{records: make(map[int64]models.Record)}
}

func (s *InMemory) Append(_ context.Context, result models.Result) (models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	rec := models.Record{ID: s.nextID, Result: result}
	s.records[rec.ID] = rec
	return rec, nil
}

// ListAll orders by check time, newest first, breaking ties by identifier.
func (s *InMemory) ListAll(_ context.Context) ([]models.Record, error) {
	s.mu.RLock()
	out := make([]models.Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CheckedAt.Equal(out[j].CheckedAt) {
			return out[i].CheckedAt.After(out[j].CheckedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *InMemory) DeleteByIDs(_ context.Context, ids []int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for _, id := range ids {
		if _, ok := s.records[id]; ok {
			delete(s.records, id)
			deleted++
		}
	}
	return deleted, nil
}
