// Package ports defines the collaborators of the verification pipeline.
package ports

import (
	"context"

	"numcheck/internal/verification/models"
)

// ReadinessGate reports whether the messaging session may be queried. It is
// consulted before the batch and again before every row.
type ReadinessGate interface {
	Ready() bool
}

// Checker answers registration queries against the messaging session.
type Checker interface {
	CheckRegistered(ctx context.Context, address string) (bool, error)
}

// SessionLock serializes every user of the single session.
type SessionLock interface {
	Acquire(ctx context.Context) error
	Release()
}

// ResultStore persists verification results.
type ResultStore interface {
	// Append persists one result and returns it with its new identifier.
	Append(ctx context.Context, result models.Result) (models.Record, error)
	// ListAll returns every record, most recent first.
	ListAll(ctx context.Context) ([]models.Record, error)
	// DeleteByIDs removes matching records and returns how many were removed.
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
}

// ResultPublisher streams persisted results to downstream consumers.
type ResultPublisher interface {
	Publish(ctx context.Context, record models.Record) error
}
