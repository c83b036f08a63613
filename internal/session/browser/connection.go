// Package browser drives the messaging web client in a headless Chrome
// instance and reports its lifecycle as session events.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/cdp"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"numcheck/internal/platform/config"
	"numcheck/internal/platform/logger"
	"numcheck/internal/session"
)

// The default scripts expect the client's internal module store to be
// reachable as window.Store once the chat list has loaded.
const (
	defaultProbeJS = `() => {
		const code = document.querySelector('div[data-ref]');
		if (code) return { phase: 'pairing', ref: code.getAttribute('data-ref') || '' };
		if (window.Store && window.Store.QueryExist) return { phase: 'ready', ref: '' };
		if (document.querySelector('#pane-side')) return { phase: 'authenticated', ref: '' };
		return { phase: 'loading', ref: '' };
	}`

	defaultCheckJS = `async (address) => {
		const wid = window.Store.WidFactory.createWid(address);
		const result = await window.Store.QueryExist(wid);
		return !!(result && result.wid);
	}`

	eventBuffer = 32
)

// attempt owns the browser process of one connection attempt.
type attempt struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	cancel   context.CancelFunc
	done     chan struct{}
	once     sync.Once
}

func (a *attempt) close() {
	a.once.Do(func() {
		if a.browser != nil {
			_ = a.browser.Close()
		}
		if a.launcher != nil {
			a.launcher.Kill()
		}
	})
}

// Connection implements session.Connection on top of go-rod.
type Connection struct {
	cfg     config.Browser
	logger  *slog.Logger
	probeJS string
	checkJS string
	clock   func() time.Time

	events chan session.Event
	ready  atomic.Bool

	mu      sync.Mutex
	current *attempt
}

// Option configures a Connection.
type Option func(*Connection)

func WithLogger(l *slog.Logger) Option {
	return func(c *Connection) {
		c.logger = l
	}
}

// WithScripts replaces the page probe and the registration check. The probe
// returns {phase, ref}; the check receives the address and resolves to a
// boolean.
func WithScripts(probeJS, checkJS string) Option {
	return func(c *Connection) {
		if probeJS != "" {
			c.probeJS = probeJS
		}
		if checkJS != "" {
			c.checkJS = checkJS
		}
	}
}

// New returns an idle Connection; nothing is launched until Connect.
func New(cfg config.Browser, opts ...Option) *Connection {
	c := &Connection{
		cfg:     cfg,
		logger:  logger.Discard(),
		probeJS: defaultProbeJS,
		checkJS: defaultCheckJS,
		clock:   time.Now,
		events:  make(chan session.Event, eventBuffer),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cfg.PollInterval <= 0 {
		c.cfg.PollInterval = time.Second
	}
	return c
}

// Connect launches the browser and starts watching the page. It returns as
// soon as the page is open; pairing progress arrives on Events. Calling it
// while an attempt is running is a no-op. An attempt is released before its
// terminal event is delivered.
func (c *Connection) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil {
		return nil
	}

	a, err := c.launch()
	if err != nil {
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.done = make(chan struct{})
	c.current = a

	go c.watch(watchCtx, a, func(ctx context.Context) probe {
		return c.probe(ctx, a.page)
	})
	return nil
}

func (c *Connection) launch() (*attempt, error) {
	l := launcher.New().Headless(c.cfg.Headless)
	if c.cfg.Bin != "" {
		l = l.Bin(c.cfg.Bin)
	}
	if c.cfg.UserDataDir != "" {
		l = l.UserDataDir(c.cfg.UserDataDir)
	}
	a := &attempt{launcher: l}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}

	a.browser = rod.New().ControlURL(controlURL)
	if err := a.browser.Connect(); err != nil {
		a.close()
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}

	a.page, err = a.browser.Page(proto.TargetCreateTarget{URL: c.cfg.URL})
	if err != nil {
		a.close()
		return nil, fmt.Errorf("open %s: %w", c.cfg.URL, err)
	}
	return a, nil
}

func (c *Connection) watch(ctx context.Context, a *attempt, probeFn func(context.Context) probe) {
	defer close(a.done)
	defer a.cancel()
	defer c.release(a)

	tr := &tracker{pairingTimeout: c.cfg.PairingTimeout}
	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		p := probeFn(ctx)
		if ctx.Err() != nil {
			return
		}
		events, done := tr.observe(p, c.clock())
		c.setReady(a, tr.ready)
		if done {
			// Released before the terminal event is sent, so a reconnect
			// triggered by it starts a fresh attempt.
			c.release(a)
		}
		for _, ev := range events {
			c.logger.InfoContext(ctx, "session page changed",
				"event", string(ev.Kind),
				"reason", ev.Reason,
			)
			select {
			case c.events <- ev:
			case <-ctx.Done():
				return
			}
		}
		if done {
			return
		}
	}
}

func (c *Connection) probe(ctx context.Context, page *rod.Page) probe {
	timed := page.Context(ctx).Timeout(c.cfg.PollInterval * 5)
	defer timed.CancelTimeout()

	res, err := timed.Evaluate(&rod.EvalOptions{
		JS:      c.probeJS,
		ByValue: true,
	})
	if err != nil {
		c.logger.WarnContext(ctx, "session page probe failed", "error", err)
		return probe{Phase: probeFailurePhase(err)}
	}
	return probe{
		Phase: phase(res.Value.Get("phase").Str()),
		Ref:   res.Value.Get("ref").Str(),
	}
}

// setReady records readiness only for the registered attempt.
func (c *Connection) setReady(a *attempt, ready bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == a {
		c.ready.Store(ready)
	}
}

// probeFailurePhase separates a closed page from failures the page can
// recover from, such as a reload destroying the execution context.
func probeFailurePhase(err error) phase {
	if errors.Is(err, cdp.ErrSessionNotFound) || errors.Is(err, cdp.ErrNotAttachedToActivePage) {
		return phaseGone
	}
	return phaseError
}

func (c *Connection) release(a *attempt) {
	c.mu.Lock()
	if c.current == a {
		c.current = nil
		c.ready.Store(false)
	}
	c.mu.Unlock()
	a.close()
}

// IsReady reports whether the page last probed as ready.
func (c *Connection) IsReady() bool {
	return c.ready.Load()
}

// CheckRegistered asks the client whether address belongs to a registered
// account.
func (c *Connection) CheckRegistered(ctx context.Context, address string) (bool, error) {
	if !c.ready.Load() {
		return false, session.ErrNotReady
	}
	c.mu.Lock()
	a := c.current
	c.mu.Unlock()
	if a == nil {
		return false, session.ErrNotReady
	}

	res, err := a.page.Context(ctx).Evaluate(&rod.EvalOptions{
		JS:           c.checkJS,
		JSArgs:       []interface{}{address},
		ByValue:      true,
		AwaitPromise: true,
	})
	if err != nil {
		return false, fmt.Errorf("registration query for %s: %w", address, err)
	}
	return res.Value.Bool(), nil
}

// Disconnect stops the running attempt and closes the browser. The session
// data directory is kept so the next attempt can restore the pairing.
func (c *Connection) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	a := c.current
	c.current = nil
	c.ready.Store(false)
	c.mu.Unlock()
	if a == nil {
		return nil
	}

	a.cancel()
	select {
	case <-a.done:
	case <-ctx.Done():
		a.close()
		return ctx.Err()
	}
	return nil
}

// Events returns the lifecycle event stream.
func (c *Connection) Events() <-chan session.Event {
	return c.events
}

var _ session.Connection = (*Connection)(nil)
