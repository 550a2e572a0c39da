package messages

import "github.com/leap-fish/necs/esync"

// JoinRequest is sent by a client after connecting to request a character.
type JoinRequest struct {
	Version    string
	PlayerName string
	SessionID  string // Stable per install, lets the server log reconnects
}

// JoinAccepted is sent by the server once the client's character exists.
type JoinAccepted struct {
	NetworkID   esync.NetworkId
	ServerName  string
	TickRate    int // network ticks per second
	PhysicsRate int // physics ticks per second
	Substeps    int
}

// JoinRejected is sent by the server when a join request is refused.
type JoinRejected struct {
	Reason string
}
