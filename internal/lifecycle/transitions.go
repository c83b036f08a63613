package lifecycle

import "numcheck/internal/session"

// Transition is a single allowed edge of the session state machine.
type Transition struct {
	From  session.State
	To    session.State
	Event session.EventKind
}

var transitionsTable = []Transition{
	// Connection attempts
	{From: session.StateDisconnected, To: session.StateAwaitingPairing, Event: session.EventConnecting},
	{From: session.StateFailed, To: session.StateAwaitingPairing, Event: session.EventConnecting},
	{From: session.StateDisconnected, To: session.StateAwaitingPairing, Event: session.EventPairingChallenge},

	// Pairing codes rotate while the operator has not scanned yet
	{From: session.StateAwaitingPairing, To: session.StateAwaitingPairing, Event: session.EventPairingChallenge},

	// Happy path
	{From: session.StateAwaitingPairing, To: session.StateAuthenticated, Event: session.EventAuthenticated},
	{From: session.StateAuthenticated, To: session.StateReady, Event: session.EventReady},

	// Attempt failures. FAILED only leaves on an explicit new attempt.
	{From: session.StateAwaitingPairing, To: session.StateFailed, Event: session.EventAuthFailure},
	{From: session.StateAuthenticated, To: session.StateFailed, Event: session.EventAuthFailure},

	// Disconnects
	{From: session.StateAwaitingPairing, To: session.StateDisconnected, Event: session.EventDisconnected},
	{From: session.StateAuthenticated, To: session.StateDisconnected, Event: session.EventDisconnected},
	{From: session.StateReady, To: session.StateDisconnected, Event: session.EventDisconnected},
}

// TransitionFor returns the allowed transition for a given state+event.
func TransitionFor(from session.State, ev session.EventKind) (Transition, bool) {
	for _, tr := range transitionsTable {
		if tr.From == from && tr.Event == ev {
			return tr, true
		}
	}
	return Transition{}, false
}

// canStartAttempt reports whether a new connection attempt may begin from s.
func canStartAttempt(s session.State) bool {
	_, ok := TransitionFor(s, session.EventConnecting)
	return ok
}
