// Package lifecycle drives the session state machine. The Controller is the
// only writer of the session state; everything else reads it through Ready
// and Snapshot.
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"numcheck/internal/lifecycle/metrics"
	"numcheck/internal/platform/config"
	"numcheck/internal/platform/logger"
	"numcheck/internal/session"
	"numcheck/pkg/platform/sentinel"
)

// Origins of a connection attempt, used in logs and metrics.
const (
	OriginStartup       = "startup"
	OriginAutoReconnect = "auto_reconnect"
	OriginOperator      = "operator"
)

// ErrAttemptInProgress is returned when a connection attempt is requested
// while the session is already pairing, authenticated or ready.
var ErrAttemptInProgress = fmt.Errorf("%w: connection attempt already in progress or established", sentinel.ErrInvalidState)

// Snapshot is a consistent view of the lifecycle state.
type Snapshot struct {
	State                session.State `json:"state"`
	Challenge            string        `json:"pairing_code,omitempty"`
	LastDisconnectReason string        `json:"last_disconnect_reason,omitempty"`
	LastFailureReason    string        `json:"last_failure_reason,omitempty"`
	Since                time.Time     `json:"since"`
}

// Ready reports whether the snapshot allows verification.
func (s Snapshot) Ready() bool {
	return s.State == session.StateReady
}

// Change describes one applied transition.
type Change struct {
	From     session.State
	To       session.State
	Event    session.Event
	Snapshot Snapshot
}

// Observer is notified, in order, of every applied transition.
type Observer interface {
	Name() string
	Observe(ctx context.Context, change Change) error
}

type connectRequest struct {
	origin string
	result chan error
}

// Controller consumes session events and applies them strictly in arrival
// order from a single goroutine (Run).
type Controller struct {
	conn           session.Connection
	guard          *session.Guard
	policy         config.ReconnectPolicy
	reconnectDelay time.Duration
	connectOnStart bool
	logger         *slog.Logger
	metrics        *metrics.Metrics
	observers      []Observer
	clock          func() time.Time

	state atomic.Int32

	mu   sync.RWMutex
	snap Snapshot

	requests chan connectRequest
	wg       sync.WaitGroup
}

// Option configures a Controller.
type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithReconnectPolicy sets the policy applied after a disconnect.
func WithReconnectPolicy(p config.ReconnectPolicy, delay time.Duration) Option {
	return func(c *Controller) {
		c.policy = p
		c.reconnectDelay = delay
	}
}

// WithConnectOnStart controls whether Run begins with a connection attempt.
func WithConnectOnStart(enabled bool) Option {
	return func(c *Controller) {
		c.connectOnStart = enabled
	}
}

// WithObserver adds a transition observer.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

// WithClock overrides the time source.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// New constructs a Controller in the DISCONNECTED state.
func New(conn session.Connection, guard *session.Guard, opts ...Option) (*Controller, error) {
	if conn == nil {
		return nil, fmt.Errorf("session connection is required")
	}
	if guard == nil {
		return nil, fmt.Errorf("session guard is required")
	}
	c := &Controller{
		conn:           conn,
		guard:          guard,
		policy:         config.ReconnectAuto,
		connectOnStart: true,
		logger:         logger.Discard(),
		clock:          time.Now,
		requests:       make(chan connectRequest),
	}
	for _, opt := range opts {
		opt(c)
	}
	if _, err := config.ParseReconnectPolicy(string(c.policy)); err != nil {
		return nil, err
	}
	c.state.Store(int32(session.StateDisconnected))
	c.snap = Snapshot{State: session.StateDisconnected, Since: c.clock().UTC()}
	c.metrics.SetState(session.StateDisconnected.String(), stateLabels())
	return c, nil
}

// Ready is the readiness gate: true only in READY. It reads the state
// without locking so callers can consult it before every single check.
func (c *Controller) Ready() bool {
	return session.State(c.state.Load()) == session.StateReady
}

// State returns the current state.
func (c *Controller) State() session.State {
	return session.State(c.state.Load())
}

// Snapshot returns the current state with its pairing challenge and reasons.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Run processes session events until ctx is done or the event stream closes.
// Reconnection timers started by Run are waited for before it returns.
func (c *Controller) Run(ctx context.Context) error {
	defer c.wg.Wait()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if c.connectOnStart {
		c.scheduleConnect(ctx, 0, OriginStartup)
	}

	events := c.conn.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				c.logger.WarnContext(ctx, "session event stream closed")
				return nil
			}
			c.apply(ctx, ev)
		case req := <-c.requests:
			req.result <- c.startAttempt(ctx, req.origin)
		}
	}
}

// Connect starts an operator-triggered connection attempt. It waits for any
// running verification batch to release the session first.
func (c *Controller) Connect(ctx context.Context) error {
	if !canStartAttempt(c.State()) {
		return ErrAttemptInProgress
	}
	return c.requestConnect(ctx, OriginOperator)
}

// Shutdown releases the underlying session.
func (c *Controller) Shutdown(ctx context.Context) error {
	return c.conn.Disconnect(ctx)
}

func (c *Controller) requestConnect(ctx context.Context, origin string) error {
	if err := c.guard.Acquire(ctx); err != nil {
		return err
	}
	defer c.guard.Release()

	req := connectRequest{origin: origin, result: make(chan error, 1)}
	select {
	case c.requests <- req:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Controller) scheduleConnect(ctx context.Context, delay time.Duration, origin string) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
		}
		if err := c.requestConnect(ctx, origin); err != nil && ctx.Err() == nil {
			c.logger.WarnContext(ctx, "scheduled connection attempt not started",
				"origin", origin,
				"error", err,
			)
		}
	}()
}

// startAttempt runs on the Run goroutine so the EventConnecting transition
// is ordered before anything the adapter emits for this attempt.
func (c *Controller) startAttempt(ctx context.Context, origin string) error {
	if !canStartAttempt(c.State()) {
		c.metrics.IncrementConnectAttempt(origin, "skipped")
		return ErrAttemptInProgress
	}
	c.apply(ctx, session.Event{Kind: session.EventConnecting, At: c.clock()})

	if err := c.conn.Connect(ctx); err != nil {
		c.metrics.IncrementConnectAttempt(origin, "error")
		c.logger.ErrorContext(ctx, "connection attempt failed to start",
			"origin", origin,
			"error", err,
		)
		c.apply(ctx, session.Event{Kind: session.EventAuthFailure, Reason: err.Error(), At: c.clock()})
		return err
	}
	c.metrics.IncrementConnectAttempt(origin, "started")
	c.logger.InfoContext(ctx, "connection attempt started", "origin", origin)
	return nil
}

func (c *Controller) apply(ctx context.Context, ev session.Event) {
	from := c.State()
	tr, ok := TransitionFor(from, ev.Kind)
	if !ok {
		c.metrics.IncrementRejected(from.String(), string(ev.Kind))
		c.logger.DebugContext(ctx, "session event ignored",
			"state", from.String(),
			"event", string(ev.Kind),
		)
		return
	}

	at := ev.At
	if at.IsZero() {
		at = c.clock()
	}

	c.mu.Lock()
	snap := c.snap
	snap.State = tr.To
	snap.Since = at.UTC()
	switch tr.To {
	case session.StateAwaitingPairing:
		if ev.Kind == session.EventPairingChallenge {
			snap.Challenge = ev.Challenge
		} else {
			snap.Challenge = ""
		}
	case session.StateDisconnected:
		snap.Challenge = ""
		snap.LastDisconnectReason = ev.Reason
	case session.StateFailed:
		snap.Challenge = ""
		snap.LastFailureReason = ev.Reason
	default:
		snap.Challenge = ""
	}
	c.snap = snap
	c.state.Store(int32(tr.To))
	c.mu.Unlock()

	if tr.From != tr.To {
		c.metrics.IncrementTransition(tr.From.String(), tr.To.String())
		c.metrics.SetState(tr.To.String(), stateLabels())
		c.logger.InfoContext(ctx, "session state changed",
			"from", tr.From.String(),
			"to", tr.To.String(),
			"event", string(ev.Kind),
			"reason", ev.Reason,
		)
	} else {
		c.logger.InfoContext(ctx, "pairing challenge refreshed")
	}

	c.notify(ctx, Change{From: tr.From, To: tr.To, Event: ev, Snapshot: snap})

	if tr.To == session.StateDisconnected && c.policy == config.ReconnectAuto {
		c.scheduleConnect(ctx, c.reconnectDelay, OriginAutoReconnect)
	}
}

func (c *Controller) notify(ctx context.Context, change Change) {
	for _, o := range c.observers {
		if err := o.Observe(ctx, change); err != nil {
			c.metrics.IncrementObserverFailure(o.Name())
			c.logger.WarnContext(ctx, "transition observer failed",
				"observer", o.Name(),
				"to", change.To.String(),
				"error", err,
			)
		}
	}
}

func stateLabels() []string {
	states := session.States()
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = s.String()
	}
	return out
}
