package publisher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"numcheck/internal/verification/models"
	"numcheck/internal/verification/ports/mocks"
	"numcheck/pkg/platform/circuit"
)

func TestGuardedStopsCallingAFailingPublisher(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockResultPublisher(ctrl)

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	breaker := circuit.New("kafka",
		circuit.WithFailureThreshold(2),
		circuit.WithSuccessThreshold(1),
		circuit.WithCooldown(time.Minute),
		circuit.WithClock(func() time.Time { return now }),
	)
	g := NewGuarded(next, breaker, nil)
	ctx := context.Background()
	rec := models.Record{ID: 1, Result: models.Result{RawNumber: "+911", Address: "911@c.us", Outcome: models.OutcomeRegistered}}
	brokerDown := errors.New("broker down")

	next.EXPECT().Publish(gomock.Any(), rec).Return(brokerDown).Times(2)
	assert.ErrorIs(t, g.Publish(ctx, rec), brokerDown)
	assert.ErrorIs(t, g.Publish(ctx, rec), brokerDown)

	// open: the wrapped publisher is not called
	assert.ErrorIs(t, g.Publish(ctx, rec), ErrCircuitOpen)
	assert.ErrorIs(t, g.Publish(ctx, rec), ErrCircuitOpen)

	now = now.Add(time.Minute)
	next.EXPECT().Publish(gomock.Any(), rec).Return(nil)
	assert.NoError(t, g.Publish(ctx, rec))
	assert.False(t, breaker.IsOpen())
}
