//go:build integration

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"numcheck/internal/access/models"
	"numcheck/internal/access/store/operator"
	"numcheck/internal/access/store/session"
	"numcheck/pkg/platform/sentinel"
	"numcheck/pkg/testutil/containers"
)

type PostgresAccessSuite struct {
	suite.Suite
	postgres  *containers.PostgresContainer
	operators *operator.PostgresStore
	sessions  *session.PostgresStore
}

func TestPostgresAccessSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresAccessSuite))
}

func (s *PostgresAccessSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.operators = operator.NewPostgres(s.postgres.DB)
	s.sessions = session.NewPostgres(s.postgres.DB)
}

func (s *PostgresAccessSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "operator_sessions", "operators"))
}

func (s *PostgresAccessSuite) TestLoginLogoutLifecycle() {
	ctx := context.Background()

	op := &models.Operator{Username: "admin", PasswordHash: []byte("$2a$10$hash")}
	created, err := s.operators.CreateIfMissing(ctx, op)
	s.Require().NoError(err)
	s.True(created)

	created, err = s.operators.CreateIfMissing(ctx, &models.Operator{Username: "admin", PasswordHash: []byte("other")})
	s.Require().NoError(err)
	s.False(created)

	found, err := s.operators.FindByUsername(ctx, "admin")
	s.Require().NoError(err)
	s.Equal(op.ID, found.ID)

	sess := &models.Session{
		ID:         uuid.New(),
		OperatorID: op.ID,
		IPAddress:  "203.0.113.9",
		LoginTime:  time.Now().UTC(),
		Status:     models.SessionStatusActive,
	}
	s.Require().NoError(s.sessions.Create(ctx, sess))

	closed, err := s.sessions.CloseIfActive(ctx, sess.ID, time.Now().UTC())
	s.Require().NoError(err)
	s.Equal(op.ID, closed.OperatorID)

	_, err = s.sessions.CloseIfActive(ctx, sess.ID, time.Now().UTC())
	s.ErrorIs(err, sentinel.ErrNotFound)
}
