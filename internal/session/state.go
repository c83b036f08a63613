// Package session defines the contract of the automated messaging-session
// connection: its lifecycle states, the events it emits and the single-owner
// guard every user of the connection must hold.
package session

import "fmt"

// State is the lifecycle state of the single process-wide session.
type State int32

const (
	StateDisconnected State = iota
	StateAwaitingPairing
	StateAuthenticated
	StateReady
	StateFailed
)

var stateNames = map[State]string{
	StateDisconnected:    "DISCONNECTED",
	StateAwaitingPairing: "AWAITING_PAIRING",
	StateAuthenticated:   "AUTHENTICATED",
	StateReady:           "READY",
	StateFailed:          "FAILED",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// MarshalText renders the state by name in JSON payloads.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// States lists every state in declaration order.
func States() []State {
	return []State{StateDisconnected, StateAwaitingPairing, StateAuthenticated, StateReady, StateFailed}
}

// UnmarshalText parses a state name produced by MarshalText.
func (s *State) UnmarshalText(text []byte) error {
	for state, name := range stateNames {
		if name == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown session state %q", text)
}
