package session

import (
	"context"
	"fmt"

	"numcheck/pkg/platform/sentinel"
)

// ErrNotReady is returned by CheckRegistered when the session cannot serve queries.
var ErrNotReady = fmt.Errorf("%w: messaging session not ready", sentinel.ErrUnavailable)

// Connection is the automated messaging-session handle.
//
// Connect only begins an attempt; progress is reported on Events. Callers
// must hold the Guard around CheckRegistered and Connect, and must not call
// CheckRegistered unless the lifecycle reports READY.
type Connection interface {
	// Connect starts a connection attempt. Calling it while an attempt is in
	// flight or a session is established is a no-op.
	Connect(ctx context.Context) error
	// IsReady is the adapter's own view of the underlying session, a cheap
	// non-blocking probe that backs its CheckRegistered guard. It is not the
	// readiness gate: callers consult the lifecycle controller instead.
	IsReady() bool
	// CheckRegistered reports whether address is registered on the network.
	CheckRegistered(ctx context.Context, address string) (bool, error)
	// Disconnect releases the underlying resources. Always safe to call.
	Disconnect(ctx context.Context) error
	// Events delivers lifecycle signals in the order they happened.
	Events() <-chan Event
}
