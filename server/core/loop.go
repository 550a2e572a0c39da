package core

import (
	"time"

	"github.com/automoto/netcharacon/logging"
)

// GameLoop drives the server from a single goroutine: physics ticks at the
// simulation rate and network ticks at the slower replication rate.
type GameLoop struct {
	server          *Server
	physicsInterval time.Duration
	networkInterval time.Duration
	stopChan        chan struct{}
}

func NewGameLoop(server *Server, physicsInterval, networkInterval time.Duration) *GameLoop {
	return &GameLoop{
		server:          server,
		physicsInterval: physicsInterval,
		networkInterval: networkInterval,
		stopChan:        make(chan struct{}),
	}
}

func (g *GameLoop) Run() {
	log := logging.Named("loop")

	physics := time.NewTicker(g.physicsInterval)
	defer physics.Stop()
	network := time.NewTicker(g.networkInterval)
	defer network.Stop()

	log.Infow("game loop started", "physics", g.physicsInterval, "network", g.networkInterval)

	for {
		select {
		case <-g.stopChan:
			log.Info("game loop stopped")
			return
		case <-physics.C:
			g.server.PhysicsTick()
		case <-network.C:
			g.server.NetworkTick()
		}
	}
}

func (g *GameLoop) Stop() {
	close(g.stopChan)
}
