package session

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Guard serializes everything that drives the shared session: verification
// batches and connection attempts.
type Guard struct {
	sem *semaphore.Weighted
}

// NewGuard returns an unlocked guard.
func NewGuard() *Guard {
	return &Guard{sem: semaphore.NewWeighted(1)}
}

// Acquire blocks until the guard is free or ctx is done.
func (g *Guard) Acquire(ctx context.Context) error {
	return g.sem.Acquire(ctx, 1)
}

// TryAcquire takes the guard only if it is free.
func (g *Guard) TryAcquire() bool {
	return g.sem.TryAcquire(1)
}

// Release frees the guard.
func (g *Guard) Release() {
	g.sem.Release(1)
}
