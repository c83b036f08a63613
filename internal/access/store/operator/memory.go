// Package operator stores control-panel operator accounts.
package operator

import (
	"context"
	"sync"

	"numcheck/internal/access/models"
	"numcheck/pkg/platform/sentinel"
)

// InMemory keeps operators in process memory, keyed by username.
type InMemory struct {
	mu     sync.RWMutex
	nextID int64
	byName map[string]*models.Operator
}

func NewInMemory() *InMemory {
	return &InMemory{byName: make(map[string]*models.Operator)}
}

func (s *InMemory) FindByUsername(_ context.Context, username string) (*models.Operator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	op, ok := s.byName[username]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *op
	return &cp, nil
}

func (s *InMemory) CreateIfMissing(_ context.Context, op *models.Operator) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byName[op.Username]; ok {
		return false, nil
	}
	s.nextID++
	stored := *op
	stored.ID = s.nextID
	s.byName[op.Username] = &stored
	op.ID = stored.ID
	return true, nil
}
