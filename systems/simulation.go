package systems

import (
	"fmt"

	"github.com/automoto/netcharacon/components"
	cfg "github.com/automoto/netcharacon/config"
	"github.com/automoto/netcharacon/physics"
	"github.com/automoto/netcharacon/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// Simulation owns one fixed-step world: the authority runs one for every
// connected character, a client runs one for its own predicted character.
// It is not safe for concurrent use; the owning loop goroutine drives it.
type Simulation struct {
	World donburi.World
	Space *physics.Space

	Gravity        mgl64.Vec3
	Dt             float64 // substep duration in seconds
	Substeps       int
	DampingEpsilon float64
	KillPlaneY     float64
	Spawn          mgl64.Vec3

	// Authority publishes poses into the replicated component after every tick.
	Authority bool

	pipeline  *Pipeline
	manifolds []physics.Manifold
	tick      uint64
}

// NewSimulation builds a simulation over world and space using the active
// physics configuration and the default substep pipeline.
func NewSimulation(world donburi.World, space *physics.Space) (*Simulation, error) {
	p, err := DefaultPipeline()
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}
	return &Simulation{
		World:          world,
		Space:          space,
		Gravity:        cfg.Physics.Gravity,
		Dt:             cfg.Physics.SubstepDt(),
		Substeps:       cfg.Physics.Substeps,
		DampingEpsilon: cfg.Physics.DampingEpsilon,
		KillPlaneY:     cfg.Physics.KillPlaneY,
		Spawn:          cfg.Character.Spawn,
		pipeline:       p,
	}, nil
}

// Step advances one physics tick: every substep through the pipeline, then
// kill-plane respawns and, on the authority, pose publication.
func (s *Simulation) Step() {
	components.Overlap.Each(s.World, func(e *donburi.Entry) {
		o := components.Overlap.Get(e)
		o.Sensors = o.Sensors[:0]
	})

	for i := 0; i < s.Substeps; i++ {
		s.Substep()
	}

	s.respawnFallen()
	if s.Authority {
		PublishPoses(s.World)
	}
	s.tick++
}

// Substep runs the pipeline once.
func (s *Simulation) Substep() {
	s.pipeline.Run(s)
	s.manifolds = s.manifolds[:0]
}

// Tick returns the number of completed physics ticks.
func (s *Simulation) Tick() uint64 {
	return s.tick
}

// Pipeline returns the substep pipeline.
func (s *Simulation) Pipeline() *Pipeline {
	return s.pipeline
}

// Teleport moves a character and its collider, clearing its velocity.
func (s *Simulation) Teleport(e *donburi.Entry, pos mgl64.Vec3) {
	state := components.CharacterState.Get(e)
	state.Position = pos
	state.Velocity = mgl64.Vec3{}
	state.Grounded = false
	s.syncBody(e)
}

// syncBody copies a character's position into its collider.
func (s *Simulation) syncBody(e *donburi.Entry) {
	body := components.Body.Get(e)
	if body.Body == nil {
		return
	}
	s.Space.SetPosition(body.Body, components.CharacterState.Get(e).Position)
}

func (s *Simulation) respawnFallen() {
	var fallen []*donburi.Entry
	tags.Character.Each(s.World, func(e *donburi.Entry) {
		if components.CharacterState.Get(e).Position.Y() < s.KillPlaneY {
			fallen = append(fallen, e)
		}
	})
	for _, e := range fallen {
		s.Teleport(e, s.Spawn)
	}
}

// characterEntry returns the simulated character owning b, or nil when b
// belongs to level geometry or a display-only remote view.
func (s *Simulation) characterEntry(b *physics.Body) *donburi.Entry {
	if b == nil || !b.Controller {
		return nil
	}
	entity, ok := b.Data.(donburi.Entity)
	if !ok || !s.World.Valid(entity) {
		return nil
	}
	e := s.World.Entry(entity)
	if !e.HasComponent(tags.Character) {
		return nil
	}
	return e
}
