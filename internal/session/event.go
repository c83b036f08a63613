package session

import "time"

// EventKind names a lifecycle signal.
type EventKind string

const (
	// EventConnecting marks the start of a connection attempt. The lifecycle
	// controller raises it itself right before calling Connect.
	EventConnecting EventKind = "connecting"
	// EventPairingChallenge carries a (possibly refreshed) pairing code.
	EventPairingChallenge EventKind = "pairing_challenge"
	EventAuthenticated    EventKind = "authenticated"
	EventReady            EventKind = "ready"
	// EventAuthFailure reports that the attempt cannot complete.
	EventAuthFailure  EventKind = "auth_failure"
	EventDisconnected EventKind = "disconnected"
)

// Disconnect reasons reported by adapters.
const (
	ReasonLogout          = "LOGOUT"
	ReasonBrowserClosed   = "BROWSER_CLOSED"
	ReasonClientDestroyed = "CLIENT_DESTROYED"
	// ReasonPairingTimeout is the auth-failure reason of a pairing attempt
	// that stopped producing codes.
	ReasonPairingTimeout = "PAIRING_TIMEOUT"
)

// Event is one lifecycle signal from the connection.
type Event struct {
	Kind      EventKind
	Challenge string
	Reason    string
	At        time.Time
}
