package publisher

import (
	"context"
	"errors"
	"log/slog"

	"numcheck/internal/platform/logger"
	"numcheck/internal/verification/models"
	"numcheck/internal/verification/ports"
	"numcheck/pkg/platform/circuit"
)

// ErrCircuitOpen is returned instead of calling a publisher that keeps failing.
var ErrCircuitOpen = errors.New("result publisher circuit open")

// Guarded short-circuits a failing publisher so a dead broker costs one
// produce timeout per cooldown rather than one per verified row.
type Guarded struct {
	next    ports.ResultPublisher
	breaker *circuit.Breaker
	logger  *slog.Logger
}

// NewGuarded wraps next with breaker. A nil logger discards.
func NewGuarded(next ports.ResultPublisher, breaker *circuit.Breaker, log *slog.Logger) *Guarded {
	if log == nil {
		log = logger.Discard()
	}
	return &Guarded{next: next, breaker: breaker, logger: log}
}

func (g *Guarded) Publish(ctx context.Context, rec models.Record) error {
	if !g.breaker.Allow() {
		return ErrCircuitOpen
	}
	if err := g.next.Publish(ctx, rec); err != nil {
		if _, change := g.breaker.RecordFailure(); change.Opened {
			g.logger.WarnContext(ctx, "result publishing suspended",
				"publisher", g.breaker.Name(),
				"error", err,
			)
		}
		return err
	}
	if _, change := g.breaker.RecordSuccess(); change.Closed {
		g.logger.InfoContext(ctx, "result publishing resumed", "publisher", g.breaker.Name())
	}
	return nil
}
