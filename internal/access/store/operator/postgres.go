package operator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"numcheck/internal/access/models"
	"numcheck/pkg/platform/sentinel"
)

// PostgresStore persists operators in the operators table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed operator store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const (
	findOperatorSQL = `SELECT id, username, password_hash FROM operators WHERE username = $1`

	insertOperatorSQL = `INSERT INTO operators (username, password_hash)
VALUES ($1, $2)
ON CONFLICT (username) DO NOTHING
RETURNING id`
)

func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (*models.Operator, error) {
	var (
		op   models.Operator
		hash string
	)
	err := s.db.QueryRowContext(ctx, findOperatorSQL, username).Scan(&op.ID, &op.Username, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find operator: %w", err)
	}
	op.PasswordHash = []byte(hash)
	return &op, nil
}

func (s *PostgresStore) CreateIfMissing(ctx context.Context, op *models.Operator) (bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, insertOperatorSQL, op.Username, string(op.PasswordHash)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("insert operator: %w", err)
	}
	op.ID = id
	return true, nil
}
