// Package netconfig defines lightweight types shared between client and server.
// It must stay free of simulation and transport imports.
package netconfig

// ConnState is the lifecycle of one connection. Disconnected is terminal.
type ConnState int

const (
	Connecting ConnState = iota // transport is up, no character yet
	Connected                   // character spawned and replicated
	Disconnected
)

func (s ConnState) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Disconnected:
		return "disconnected"
	}
	return "unknown"
}

// CanTransition reports whether the state machine allows moving from s to next.
func (s ConnState) CanTransition(next ConnState) bool {
	switch s {
	case Connecting:
		return next == Connected || next == Disconnected
	case Connected:
		return next == Disconnected
	}
	return false
}
