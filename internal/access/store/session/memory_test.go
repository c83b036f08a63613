package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"numcheck/internal/access/models"
	"numcheck/pkg/platform/sentinel"
)

type SessionStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestSessionStoreSuite(t *testing.T) {
	suite.Run(t, new(SessionStoreSuite))
}

func (s *SessionStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func newSession() *models.Session {
	return &models.Session{
		ID:         uuid.New(),
		OperatorID: 1,
		IPAddress:  "203.0.113.7",
		LoginTime:  time.Now().UTC(),
		Status:     models.SessionStatusActive,
	}
}

func (s *SessionStoreSuite) TestCloseOnlyOnce() {
	sess := newSession()
	s.Require().NoError(s.store.Create(s.ctx, sess))

	at := time.Now().UTC()
	closed, err := s.store.CloseIfActive(s.ctx, sess.ID, at)
	s.Require().NoError(err)
	s.Equal(models.SessionStatusInactive, closed.Status)
	s.Require().NotNil(closed.LogoutTime)
	s.True(at.Equal(*closed.LogoutTime))
	s.Equal("203.0.113.7", closed.IPAddress)

	_, err = s.store.CloseIfActive(s.ctx, sess.ID, at)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *SessionStoreSuite) TestUnknownSession() {
	_, err := s.store.CloseIfActive(s.ctx, uuid.New(), time.Now())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *SessionStoreSuite) TestDuplicateIDRejected() {
	sess := newSession()
	s.Require().NoError(s.store.Create(s.ctx, sess))
	s.ErrorIs(s.store.Create(s.ctx, sess), sentinel.ErrConflict)
}
