package core

import (
	"time"

	"github.com/automoto/netcharacon/shared/netconfig"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
)

// Conn is the server's view of a transport connection. *router.NetworkClient
// satisfies it.
type Conn interface {
	Id() string
	SendMessage(msg any) error
}

type session struct {
	conn  Conn
	state netconfig.ConnState

	playerName string
	sessionID  string

	entity    donburi.Entity
	networkID esync.NetworkId
	lastSeq   uint32

	lastSeen time.Time // last message of any kind from the client
}

func (s *session) setState(next netconfig.ConnState) bool {
	if !s.state.CanTransition(next) {
		return false
	}
	s.state = next
	return true
}
