package core

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/automoto/netcharacon/components"
	cfg "github.com/automoto/netcharacon/config"
	"github.com/automoto/netcharacon/logging"
	"github.com/automoto/netcharacon/physics"
	"github.com/automoto/netcharacon/shared/leveldata"
	"github.com/automoto/netcharacon/shared/messages"
	"github.com/automoto/netcharacon/shared/netcomponents"
	"github.com/automoto/netcharacon/shared/netconfig"
	"github.com/automoto/netcharacon/systems"
	"github.com/automoto/netcharacon/systems/factory"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// CharacterView is a read-only copy of one connected character for the
// admin API.
type CharacterView struct {
	NetworkID    esync.NetworkId `json:"networkId"`
	Name         string          `json:"name"`
	Position     mgl64.Vec3      `json:"position"`
	Yaw          float64         `json:"yaw"`
	Grounded     bool            `json:"grounded"`
	LastSequence uint32          `json:"lastSequence"`
	Sensors      []string        `json:"sensors,omitempty"`
}

// Server is the authority: it owns the world, simulates every connected
// character and replicates their poses. Transport callbacks only queue
// commands; the loop goroutine applies them at the next tick.
type Server struct {
	world     donburi.World
	space     *physics.Space
	sim       *systems.Simulation
	level     *leveldata.LevelData
	loop      *GameLoop
	transport *transports.WsServerTransport
	metrics   *Metrics
	log       *zap.SugaredLogger

	// loop goroutine only
	sessions map[string]*session

	commands chan func()
	done     chan struct{}
	stopOnce sync.Once

	// Swappable for tests
	replicate func(e *donburi.Entry) (esync.NetworkId, error)
	sync      func() error
	now       func() time.Time

	mu      sync.RWMutex
	views   []CharacterView
	players int
}

// NewServer builds the world and physics space for level.
func NewServer(level *leveldata.LevelData) (*Server, error) {
	world := donburi.NewWorld()
	space := factory.CreateSpace(level)
	factory.CreateLevel(world, space, level)

	sim, err := systems.NewSimulation(world, space)
	if err != nil {
		return nil, fmt.Errorf("create simulation: %w", err)
	}
	sim.Authority = true
	sim.Spawn = level.Spawn(cfg.Character.Spawn)

	s := &Server{
		world:    world,
		space:    space,
		sim:      sim,
		level:    level,
		metrics:  &Metrics{},
		log:      logging.Named("server"),
		sessions: make(map[string]*session),
		commands: make(chan func(), cfg.Network.CommandQueueSize),
		done:     make(chan struct{}),
		sync:     srvsync.DoSync,
		now:      time.Now,
	}
	s.replicate = s.networkSync
	s.loop = NewGameLoop(s, cfg.Physics.TickInterval(), cfg.Network.TickInterval())

	return s, nil
}

// Start registers the transport callbacks, starts the game loop and serves
// websocket connections on port. It blocks until the transport stops.
func (s *Server) Start(port uint) error {
	srvsync.UseEsync(s.world)
	s.setupRouterCallbacks()

	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop shuts the game loop down.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		s.loop.Stop()
	})
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		s.HandleConnect(client)
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		s.HandleDisconnect(client, err)
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.HandleJoin(client, req)
	})

	router.On(func(client *router.NetworkClient, intent messages.ControlIntent) {
		s.HandleIntent(client, intent)
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		s.log.Warnw("client error", "client", client.Id(), "err", err)
	})
}

// HandleConnect queues a new transport connection.
func (s *Server) HandleConnect(c Conn) {
	s.enqueue(func() { s.connect(c) })
}

// HandleJoin queues a join request.
func (s *Server) HandleJoin(c Conn, req messages.JoinRequest) {
	s.enqueue(func() { s.join(c, req) })
}

// HandleIntent queues a control intent for c's character.
func (s *Server) HandleIntent(c Conn, intent messages.ControlIntent) {
	s.enqueue(func() { s.intent(c.Id(), intent) })
}

// HandleDisconnect queues the teardown of c. Unlike other commands it is
// never dropped; it waits for room unless the server is stopping.
func (s *Server) HandleDisconnect(c Conn, err error) {
	cmd := func() { s.disconnect(c.Id(), err) }
	select {
	case s.commands <- cmd:
	case <-s.done:
	}
}

func (s *Server) enqueue(cmd func()) {
	select {
	case s.commands <- cmd:
	default:
		s.metrics.IncCommandsDropped()
		s.log.Warn("command queue full, dropping event")
	}
}

// ProcessCommands applies every queued transport event. Loop goroutine only.
func (s *Server) ProcessCommands() {
	for {
		select {
		case cmd := <-s.commands:
			cmd()
		default:
			return
		}
	}
}

func (s *Server) connect(c Conn) {
	id := c.Id()
	if _, ok := s.sessions[id]; ok {
		return
	}
	s.sessions[id] = &session{conn: c, state: netconfig.Connecting, lastSeen: s.now()}
	s.log.Infow("client connected", "client", id)
}

func (s *Server) join(c Conn, req messages.JoinRequest) {
	id := c.Id()
	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{conn: c, state: netconfig.Connecting}
		s.sessions[id] = sess
	}
	sess.lastSeen = s.now()
	if sess.state != netconfig.Connecting {
		s.log.Debugw("ignoring repeated join", "client", id, "state", sess.state)
		return
	}

	if cfg.Server.Version != "" && req.Version != cfg.Server.Version {
		s.reject(sess, id, fmt.Sprintf("version mismatch: server %s, client %s", cfg.Server.Version, req.Version))
		return
	}
	if s.connectedCount() >= cfg.Server.MaxClients {
		s.reject(sess, id, "server full")
		return
	}

	e := factory.CreateCharacter(s.world, s.space, s.sim.Spawn, factory.DefaultMovement())
	e.AddComponent(netcomponents.NetCharacter)
	netcomponents.NetCharacter.SetValue(e, systems.Snapshot(*components.CharacterState.Get(e), 0))

	netID, err := s.replicate(e)
	if err != nil {
		s.log.Errorw("failed to replicate character", "client", id, "err", err)
		factory.DestroyCharacter(s.world, s.space, e)
		s.reject(sess, id, "internal error")
		return
	}

	sess.entity = e.Entity()
	sess.networkID = netID
	sess.playerName = req.PlayerName
	sess.sessionID = req.SessionID
	sess.setState(netconfig.Connected)
	s.setPlayers(s.connectedCount())
	s.metrics.IncJoinsAccepted()

	if err := sess.conn.SendMessage(messages.JoinAccepted{
		NetworkID:   netID,
		ServerName:  cfg.Server.Name,
		TickRate:    cfg.Network.TickRate,
		PhysicsRate: cfg.Physics.TickRate,
		Substeps:    cfg.Physics.Substeps,
	}); err != nil {
		s.log.Warnw("failed to send join accepted", "client", id, "err", err)
	}
	s.log.Infow("character spawned", "client", id, "player", req.PlayerName, "session", req.SessionID, "networkId", netID)
}

func (s *Server) reject(sess *session, id, reason string) {
	s.metrics.IncJoinsRejected()
	s.log.Infow("join rejected", "client", id, "reason", reason)
	if err := sess.conn.SendMessage(messages.JoinRejected{Reason: reason}); err != nil {
		s.log.Warnw("failed to send join rejected", "client", id, "err", err)
	}
	sess.setState(netconfig.Disconnected)
	delete(s.sessions, id)
}

func (s *Server) intent(id string, in messages.ControlIntent) {
	sess, ok := s.sessions[id]
	if ok {
		sess.lastSeen = s.now()
	}
	if !ok || sess.state != netconfig.Connected || !s.world.Valid(sess.entity) {
		s.metrics.IncUnknownIdentity()
		s.log.Debugw("dropping intent for unknown identity", "client", id, "seq", in.Sequence)
		return
	}
	if in.Sequence <= sess.lastSeq {
		s.metrics.IncStaleSequence()
		return
	}
	sess.lastSeq = in.Sequence

	in, clamped := SanitizeIntent(in, cfg.Network.MaxAngularDelta)
	if clamped {
		s.metrics.IncClamped()
	}

	buf := components.ActionBuffer.Get(s.world.Entry(sess.entity))
	if buf.Enqueue(in) {
		s.metrics.IncBufferOverflow()
	}
	s.metrics.IncAccepted()
}

func (s *Server) disconnect(id string, err error) {
	sess, ok := s.sessions[id]
	if !ok {
		return
	}
	if sess.state == netconfig.Connected && s.world.Valid(sess.entity) {
		factory.DestroyCharacter(s.world, s.space, s.world.Entry(sess.entity))
	}
	sess.setState(netconfig.Disconnected)
	delete(s.sessions, id)
	s.setPlayers(s.connectedCount())
	s.metrics.IncDisconnects()

	if err != nil {
		s.log.Infow("client disconnected", "client", id, "err", err)
	} else {
		s.log.Infow("client disconnected", "client", id)
	}
}

// evictIdle tears down every session that has been silent for longer than
// the client timeout.
func (s *Server) evictIdle() {
	timeout := cfg.Network.ClientTimeout
	if timeout <= 0 {
		return
	}
	now := s.now()
	var idle []string
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > timeout {
			idle = append(idle, id)
		}
	}
	for _, id := range idle {
		s.metrics.IncIdleEvictions()
		s.disconnect(id, fmt.Errorf("no messages for %s", timeout))
	}
}

// PhysicsTick applies queued commands, evicts silent sessions and advances
// the simulation one tick.
func (s *Server) PhysicsTick() {
	s.ProcessCommands()
	s.evictIdle()

	start := time.Now()
	s.sim.Step()
	s.metrics.AddTick(time.Since(start))
}

// NetworkTick replicates the published poses and refreshes the admin views.
func (s *Server) NetworkTick() {
	if err := s.sync(); err != nil {
		s.log.Warnw("sync error", "err", err)
	}
	s.refreshViews()
}

func (s *Server) networkSync(e *donburi.Entry) (esync.NetworkId, error) {
	entity := e.Entity()
	if err := srvsync.NetworkSync(s.world, &entity, srvsync.WithInterp(netcomponents.NetCharacter)); err != nil {
		return 0, fmt.Errorf("network sync: %w", err)
	}
	id := esync.GetNetworkId(s.world.Entry(entity))
	if id == nil {
		return 0, errors.New("network sync assigned no id")
	}
	return *id, nil
}

func (s *Server) refreshViews() {
	views := make([]CharacterView, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if sess.state != netconfig.Connected || !s.world.Valid(sess.entity) {
			continue
		}
		e := s.world.Entry(sess.entity)
		pose := netcomponents.NetCharacter.Get(e)
		views = append(views, CharacterView{
			NetworkID:    sess.networkID,
			Name:         sess.playerName,
			Position:     mgl64.Vec3{pose.X, pose.Y, pose.Z},
			Yaw:          pose.Yaw,
			Grounded:     pose.Grounded,
			LastSequence: pose.LastSequence,
			Sensors:      append([]string(nil), components.Overlap.Get(e).Sensors...),
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].NetworkID < views[j].NetworkID })

	s.mu.Lock()
	s.views = views
	s.mu.Unlock()
}

func (s *Server) connectedCount() int {
	n := 0
	for _, sess := range s.sessions {
		if sess.state == netconfig.Connected {
			n++
		}
	}
	return n
}

func (s *Server) setPlayers(n int) {
	s.mu.Lock()
	s.players = n
	s.mu.Unlock()
}

// Characters returns the views captured at the last network tick.
func (s *Server) Characters() []CharacterView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]CharacterView, len(s.views))
	copy(out, s.views)
	return out
}

// PlayerCount returns the number of connected players
func (s *Server) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.players
}

// Metrics returns the server counters.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// World returns the ECS world. Loop goroutine only.
func (s *Server) World() donburi.World {
	return s.world
}

// Simulation returns the authoritative simulation. Loop goroutine only.
func (s *Server) Simulation() *systems.Simulation {
	return s.sim
}
