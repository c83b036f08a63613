// Package sessiontest provides a scripted session.Connection for tests.
package sessiontest

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"numcheck/internal/session"
)

// CheckFunc answers a registration query. call is the zero-based index of
// the query across the lifetime of the fake.
type CheckFunc func(ctx context.Context, call int, address string) (bool, error)

// FakeConnection records calls and lets tests emit lifecycle events.
type FakeConnection struct {
	events chan session.Event
	ready  atomic.Bool

	mu          sync.Mutex
	connects    int
	disconnects int
	checked     []string
	check       CheckFunc
	onConnect   func(f *FakeConnection)
}

// NewFakeConnection returns a fake whose checks report every address as
// registered until SetCheck is called.
func NewFakeConnection() *FakeConnection {
	return &FakeConnection{
		events: make(chan session.Event, 64),
		check: func(context.Context, int, string) (bool, error) {
			return true, nil
		},
	}
}

// SetCheck replaces the registration answer.
func (f *FakeConnection) SetCheck(fn CheckFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.check = fn
}

// OnConnect runs fn (outside the fake's lock) on every Connect call, which
// lets tests script the pairing flow.
func (f *FakeConnection) OnConnect(fn func(f *FakeConnection)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onConnect = fn
}

// Emit queues a lifecycle event as the real adapter would.
func (f *FakeConnection) Emit(ev session.Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	f.events <- ev
}

// SetReady flips the adapter-level readiness probe.
func (f *FakeConnection) SetReady(ready bool) {
	f.ready.Store(ready)
}

func (f *FakeConnection) Connect(ctx context.Context) error {
	f.mu.Lock()
	f.connects++
	hook := f.onConnect
	f.mu.Unlock()
	if hook != nil {
		hook(f)
	}
	return nil
}

func (f *FakeConnection) IsReady() bool {
	return f.ready.Load()
}

func (f *FakeConnection) CheckRegistered(ctx context.Context, address string) (bool, error) {
	f.mu.Lock()
	call := len(f.checked)
	f.checked = append(f.checked, address)
	check := f.check
	f.mu.Unlock()
	return check(ctx, call, address)
}

func (f *FakeConnection) Disconnect(ctx context.Context) error {
	f.mu.Lock()
	f.disconnects++
	f.mu.Unlock()
	f.ready.Store(false)
	return nil
}

func (f *FakeConnection) Events() <-chan session.Event {
	return f.events
}

// Connects returns how many times Connect was called.
func (f *FakeConnection) Connects() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connects
}

// Disconnects returns how many times Disconnect was called.
func (f *FakeConnection) Disconnects() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.disconnects
}

// Checked returns the addresses queried so far, in order.
func (f *FakeConnection) Checked() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.checked...)
}

// Pair emits the full happy-path sequence after a Connect: a pairing
// challenge, authentication and readiness.
func Pair(challenge string) func(f *FakeConnection) {
	return func(f *FakeConnection) {
		f.Emit(session.Event{Kind: session.EventPairingChallenge, Challenge: challenge})
		f.Emit(session.Event{Kind: session.EventAuthenticated})
		f.SetReady(true)
		f.Emit(session.Event{Kind: session.EventReady})
	}
}

var _ session.Connection = (*FakeConnection)(nil)
