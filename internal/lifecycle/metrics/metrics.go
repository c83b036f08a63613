package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the session lifecycle.
type Metrics struct {
	// One series per state; the current state is 1, every other state 0.
	State *prometheus.GaugeVec

	Transitions      *prometheus.CounterVec
	RejectedEvents   *prometheus.CounterVec
	ConnectAttempts  *prometheus.CounterVec
	ObserverFailures *prometheus.CounterVec
}

// New creates a Metrics instance registered on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the lifecycle metrics on reg. Tests pass a
// fresh prometheus.NewRegistry() to avoid duplicate registration.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		State: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "numcheck_session_state",
			Help: "Current messaging session lifecycle state (1 for the active state)",
		}, []string{"state"}),

		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "numcheck_session_transitions_total",
			Help: "Applied session state transitions",
		}, []string{"from", "to"}),

		RejectedEvents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "numcheck_session_rejected_events_total",
			Help: "Lifecycle events ignored because no transition allows them from the current state",
		}, []string{"state", "event"}),

		ConnectAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "numcheck_session_connect_attempts_total",
			Help: "Connection attempts by origin (startup, auto_reconnect, operator) and result",
		}, []string{"origin", "result"}),

		ObserverFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "numcheck_session_observer_failures_total",
			Help: "Failures of transition observers such as the Redis publisher",
		}, []string{"observer"}),
	}
}

// SetState marks current as the only active state among all.
func (m *Metrics) SetState(current string, all []string) {
	if m == nil {
		return
	}
	for _, s := range all {
		v := 0.0
		if s == current {
			v = 1
		}
		m.State.WithLabelValues(s).Set(v)
	}
}

// IncrementTransition records an applied transition.
func (m *Metrics) IncrementTransition(from, to string) {
	if m != nil {
		m.Transitions.WithLabelValues(from, to).Inc()
	}
}

// IncrementRejected records an event that did not match any transition.
func (m *Metrics) IncrementRejected(state, event string) {
	if m != nil {
		m.RejectedEvents.WithLabelValues(state, event).Inc()
	}
}

// IncrementConnectAttempt records a connection attempt outcome.
func (m *Metrics) IncrementConnectAttempt(origin, result string) {
	if m != nil {
		m.ConnectAttempts.WithLabelValues(origin, result).Inc()
	}
}

// IncrementObserverFailure records a failed observer notification.
func (m *Metrics) IncrementObserverFailure(observer string) {
	if m != nil {
		m.ObserverFailures.WithLabelValues(observer).Inc()
	}
}
