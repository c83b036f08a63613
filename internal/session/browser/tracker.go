package browser

import (
	"time"

	"numcheck/internal/session"
)

// phase is what the page probe reports about the messaging web client.
type phase string

const (
	phaseLoading       phase = "loading"
	phasePairing       phase = "pairing"
	phaseAuthenticated phase = "authenticated"
	phaseReady         phase = "ready"
	phaseFailed        phase = "failed"
	// phaseGone is synthesized when the page can no longer be evaluated.
	phaseGone phase = "gone"
	// phaseError is synthesized when one probe fails but the page may recover.
	phaseError phase = "error"
)

// maxProbeFailures consecutive failed probes end the attempt.
const maxProbeFailures = 3

type probe struct {
	Phase phase  `json:"phase"`
	Ref   string `json:"ref"`
}

// tracker turns successive page probes into lifecycle events, emitting each
// real change exactly once.
//
// Until the session authenticates, the page must show a fresh pairing code
// at least once per pairingTimeout; otherwise the attempt fails with
// ReasonPairingTimeout. Zero disables the deadline.
type tracker struct {
	pairingTimeout time.Duration

	ref           string
	authenticated bool
	ready         bool
	progressAt    time.Time
	failures      int
}

// observe returns the events implied by p and whether the attempt is over.
func (t *tracker) observe(p probe, at time.Time) ([]session.Event, bool) {
	if t.progressAt.IsZero() {
		t.progressAt = at
	}
	if p.Phase == phaseError {
		t.failures++
		if t.failures < maxProbeFailures {
			return t.checkStalled(at)
		}
		p.Phase = phaseGone
	} else {
		t.failures = 0
	}

	switch p.Phase {
	case phaseGone:
		t.ready = false
		return []session.Event{{Kind: session.EventDisconnected, Reason: session.ReasonBrowserClosed, At: at}}, true

	case phaseFailed:
		t.ready = false
		return []session.Event{{Kind: session.EventAuthFailure, Reason: p.Ref, At: at}}, true

	case phasePairing:
		if t.authenticated {
			// A pairing screen after authentication means the device was
			// unlinked from the phone.
			t.ready = false
			return []session.Event{{Kind: session.EventDisconnected, Reason: session.ReasonLogout, At: at}}, true
		}
		if p.Ref == "" || p.Ref == t.ref {
			return t.checkStalled(at)
		}
		t.ref = p.Ref
		t.progressAt = at
		return []session.Event{{Kind: session.EventPairingChallenge, Challenge: p.Ref, At: at}}, false

	case phaseAuthenticated:
		if t.authenticated {
			return nil, false
		}
		t.authenticated = true
		return []session.Event{{Kind: session.EventAuthenticated, At: at}}, false

	case phaseReady:
		var events []session.Event
		if !t.authenticated {
			t.authenticated = true
			events = append(events, session.Event{Kind: session.EventAuthenticated, At: at})
		}
		if !t.ready {
			t.ready = true
			events = append(events, session.Event{Kind: session.EventReady, At: at})
		}
		return events, false
	}
	return t.checkStalled(at)
}

// checkStalled fails an unauthenticated attempt that made no pairing progress
// within the deadline.
func (t *tracker) checkStalled(at time.Time) ([]session.Event, bool) {
	if t.authenticated || t.pairingTimeout <= 0 {
		return nil, false
	}
	if at.Sub(t.progressAt) < t.pairingTimeout {
		return nil, false
	}
	t.ready = false
	return []session.Event{{Kind: session.EventAuthFailure, Reason: session.ReasonPairingTimeout, At: at}}, true
}
