package scenes

import (
	"fmt"
	"sort"

	"github.com/automoto/netcharacon/components"
	cfg "github.com/automoto/netcharacon/config"
	"github.com/automoto/netcharacon/input"
	"github.com/automoto/netcharacon/logging"
	"github.com/automoto/netcharacon/physics"
	"github.com/automoto/netcharacon/shared/leveldata"
	"github.com/automoto/netcharacon/shared/netcomponents"
	"github.com/automoto/netcharacon/systems"
	"github.com/automoto/netcharacon/systems/factory"
	"github.com/automoto/netcharacon/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// Connection is the part of the network client the scene drives.
type Connection interface {
	NetworkID() esync.NetworkId
	LatestSnapshot() *esync.WorldSnapshot
	SendMessage(msg any) error
}

// View is the displayed pose of one character.
type View struct {
	NetworkID esync.NetworkId
	Local     bool
	Position  mgl64.Vec3
	Yaw       float64
	Grounded  bool
}

// NetworkedScene is the client side of a match: it predicts the local
// character, reconciles it against the authority and eases every other
// character towards its latest replicated pose.
type NetworkedScene struct {
	world      donburi.World
	space      *physics.Space
	sim        *systems.Simulation
	conn       Connection
	input      *systems.NetInput
	reconciler *systems.Reconciler
	log        *zap.SugaredLogger

	local   *donburi.Entry
	remotes map[esync.NetworkId]donburi.Entity
	present map[esync.NetworkId]bool

	interpDuration float32
	physicsDt      float32
}

func NewNetworkedScene(level *leveldata.LevelData, conn Connection, sampler input.Sampler) (*NetworkedScene, error) {
	world := donburi.NewWorld()
	space := factory.CreateSpace(level)
	factory.CreateLevel(world, space, level)

	sim, err := systems.NewSimulation(world, space)
	if err != nil {
		return nil, fmt.Errorf("create simulation: %w", err)
	}
	sim.Spawn = level.Spawn(cfg.Character.Spawn)

	local := factory.CreateCharacter(world, space, sim.Spawn, factory.DefaultMovement())
	local.AddComponent(tags.LocalCharacter)

	return &NetworkedScene{
		world:          world,
		space:          space,
		sim:            sim,
		conn:           conn,
		input:          systems.NewNetInput(sampler, conn.SendMessage),
		reconciler:     systems.NewReconciler(),
		log:            logging.Named("scene"),
		local:          local,
		remotes:        make(map[esync.NetworkId]donburi.Entity),
		present:        make(map[esync.NetworkId]bool),
		interpDuration: float32(cfg.Network.TickInterval().Seconds()),
		physicsDt:      float32(cfg.Physics.TickInterval().Seconds()),
	}, nil
}

// PhysicsTick advances the local prediction and the remote views by one
// physics tick.
func (ns *NetworkedScene) PhysicsTick() {
	ns.sim.Step()
	ns.reconciler.Record(ns.local)
	systems.AdvanceRemoteViews(ns.world, ns.physicsDt)
}

// NetworkTick sends one intent and applies the newest snapshot, if any.
func (ns *NetworkedScene) NetworkTick() {
	ns.input.Tick(ns.local)

	if snap := ns.conn.LatestSnapshot(); snap != nil {
		ns.applySnapshot(*snap)
	}
}

func (ns *NetworkedScene) applySnapshot(snapshot esync.WorldSnapshot) {
	poses := make(map[esync.NetworkId]netcomponents.NetCharacterData, len(snapshot))
	for _, ent := range snapshot {
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				ns.log.Debugw("skipping undecodable component", "id", ent.Id, "err", err)
				continue
			}
			if pose, ok := instance.(netcomponents.NetCharacterData); ok {
				poses[ent.Id] = pose
			}
		}
	}
	ns.ApplyPoses(poses)
}

// ApplyPoses applies one decoded snapshot. Characters missing from poses
// are removed.
func (ns *NetworkedScene) ApplyPoses(poses map[esync.NetworkId]netcomponents.NetCharacterData) {
	localID := ns.conn.NetworkID()
	clear(ns.present)

	for id, pose := range poses {
		ns.present[id] = true

		if id == localID {
			ns.reconciler.Reconcile(ns.sim, ns.local, pose)
			continue
		}

		entity, ok := ns.remotes[id]
		if !ok || !ns.world.Valid(entity) {
			pos := mgl64.Vec3{pose.X, pose.Y, pose.Z}
			e := factory.CreateRemoteCharacter(ns.world, ns.space, pos, pose.Yaw)
			e.AddComponent(esync.NetworkIdComponent)
			esync.NetworkIdComponent.SetValue(e, id)
			ns.remotes[id] = e.Entity()
			ns.log.Debugw("remote character appeared", "id", id)
			entity = e.Entity()
		}

		e := ns.world.Entry(entity)
		systems.RetargetRemoteView(components.RemoteView.Get(e), pose, ns.interpDuration)
		if b := components.Body.Get(e).Body; b != nil {
			ns.space.SetPosition(b, mgl64.Vec3{pose.X, pose.Y, pose.Z})
		}
	}

	for id, entity := range ns.remotes {
		if ns.present[id] {
			continue
		}
		if ns.world.Valid(entity) {
			factory.DestroyCharacter(ns.world, ns.space, ns.world.Entry(entity))
		}
		delete(ns.remotes, id)
		ns.log.Debugw("remote character left", "id", id)
	}
}

// Views returns every displayed character, local first, remotes by id.
func (ns *NetworkedScene) Views() []View {
	state := components.CharacterState.Get(ns.local)
	views := []View{{
		NetworkID: ns.conn.NetworkID(),
		Local:     true,
		Position:  state.Position,
		Yaw:       state.Yaw,
		Grounded:  state.Grounded,
	}}

	remotes := make([]View, 0, len(ns.remotes))
	for id, entity := range ns.remotes {
		if !ns.world.Valid(entity) {
			continue
		}
		v := components.RemoteView.Get(ns.world.Entry(entity))
		remotes = append(remotes, View{NetworkID: id, Position: v.Position, Yaw: v.Yaw, Grounded: v.Grounded})
	}
	sort.Slice(remotes, func(i, j int) bool { return remotes[i].NetworkID < remotes[j].NetworkID })

	return append(views, remotes...)
}

func (ns *NetworkedScene) Local() *donburi.Entry {
	return ns.local
}

func (ns *NetworkedScene) Simulation() *systems.Simulation {
	return ns.sim
}

func (ns *NetworkedScene) Reconciler() *systems.Reconciler {
	return ns.reconciler
}

func (ns *NetworkedScene) RemoteCount() int {
	return len(ns.remotes)
}
