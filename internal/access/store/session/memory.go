// Package session stores the access log of operator sessions.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"numcheck/internal/access/models"
	"numcheck/pkg/platform/sentinel"
)

// InMemory keeps operator sessions in process memory.
type InMemory struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*models.Session
}

func NewInMemory() *InMemory {
	return &InMemory{sessions: make(map[uuid.UUID]*models.Session)}
}

func (s *InMemory) Create(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; ok {
		return fmt.Errorf("session %s: %w", session.ID, sentinel.ErrConflict)
	}
	cp := *session
	s.sessions[session.ID] = &cp
	return nil
}

func (s *InMemory) CloseIfActive(_ context.Context, id uuid.UUID, at time.Time) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok || !session.IsActive() {
		return nil, sentinel.ErrNotFound
	}
	session.Status = models.SessionStatusInactive
	session.LogoutTime = &at
	cp := *session
	return &cp, nil
}
