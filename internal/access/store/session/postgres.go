package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"numcheck/internal/access/models"
	"numcheck/pkg/platform/sentinel"
)

// PostgresStore persists operator sessions in the operator_sessions table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed session store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const (
	insertSessionSQL = `INSERT INTO operator_sessions (session_id, operator_id, ip_address, login_time, status)
VALUES ($1, $2, $3, $4, $5)`

	closeSessionSQL = `UPDATE operator_sessions
SET logout_time = $2, status = $3
WHERE session_id = $1 AND status = $4
RETURNING operator_id, ip_address, login_time`
)

const uniqueViolation = "23505"

func (s *PostgresStore) Create(ctx context.Context, session *models.Session) error {
	_, err := s.db.ExecContext(ctx, insertSessionSQL,
		session.ID,
		session.OperatorID,
		session.IPAddress,
		session.LoginTime.UTC(),
		string(session.Status),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("session %s: %w", session.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert operator session: %w", err)
	}
	return nil
}

func (s *PostgresStore) CloseIfActive(ctx context.Context, id uuid.UUID, at time.Time) (*models.Session, error) {
	closed := &models.Session{
		ID:         id,
		Status:     models.SessionStatusInactive,
		LogoutTime: &at,
	}
	var ip sql.NullString
	err := s.db.QueryRowContext(ctx, closeSessionSQL,
		id,
		at.UTC(),
		string(models.SessionStatusInactive),
		string(models.SessionStatusActive),
	).Scan(&closed.OperatorID, &ip, &closed.LoginTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("close operator session: %w", err)
	}
	closed.IPAddress = ip.String
	return closed, nil
}
