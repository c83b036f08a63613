package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"numcheck/internal/verification/models"
)

// PostgresStore persists results in the verification_results table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed result store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const (
	insertResultSQL = `INSERT INTO verification_results (raw_number, address, outcome, checked_at)
VALUES ($1, $2, $3, $4)
RETURNING id`

	listResultsSQL = `SELECT id, raw_number, address, outcome, checked_at
FROM verification_results
ORDER BY checked_at DESC, id DESC`

	deleteResultsSQL = `DELETE FROM verification_results WHERE id = ANY($1)`
)

func (s *PostgresStore) Append(ctx context.Context, result models.Result) (models.Record, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, insertResultSQL,
		result.RawNumber,
		result.Address,
		string(result.Outcome),
		result.CheckedAt.UTC(),
	).Scan(&id)
	if err != nil {
		return models.Record{}, fmt.Errorf("insert verification result: %w", err)
	}
	return models.Record{ID: id, Result: result}, nil
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]models.Record, error) {
	rows, err := s.db.QueryContext(ctx, listResultsSQL)
	if err != nil {
		return nil, fmt.Errorf("list verification results: %w", err)
	}
	defer rows.Close()

	var out []models.Record
	for rows.Next() {
		var (
			rec     models.Record
			outcome string
		)
		if err := rows.Scan(&rec.ID, &rec.RawNumber, &rec.Address, &outcome, &rec.CheckedAt); err != nil {
			return nil, fmt.Errorf("scan verification result: %w", err)
		}
		rec.Outcome = models.Outcome(outcome)
		rec.CheckedAt = rec.CheckedAt.UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verification results: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx, deleteResultsSQL, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("delete verification results: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted verification results: %w", err)
	}
	return n, nil
}
