package systems

import (
	"slices"

	"github.com/automoto/netcharacon/components"
	"github.com/automoto/netcharacon/physics"
	"github.com/automoto/netcharacon/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// GenerateContacts runs the contact pass for the current substep.
func GenerateContacts(s *Simulation) {
	s.manifolds = append(s.manifolds[:0], s.Space.Contacts()...)
}

// ResolveKinematicCollisions pushes characters out of every manifold they
// take part in and stops them sinking into walkable surfaces.
func ResolveKinematicCollisions(s *Simulation) {
	for i := range s.manifolds {
		m := &s.manifolds[i]
		first := s.characterEntry(m.Body1)
		second := s.characterEntry(m.Body2)
		if first == nil && second == nil {
			continue
		}

		if m.Sensor {
			recordOverlap(first, m.Body2)
			recordOverlap(second, m.Body1)
			continue
		}

		share := 1.0
		if first != nil && second != nil {
			share = 0.5
		}
		if first != nil {
			resolveContact(s, first, m.Normal.Mul(-1), m.Contacts, share)
		}
		if second != nil {
			resolveContact(s, second, m.Normal, m.Contacts, share)
		}
	}
}

// resolveContact applies one manifold to a character. normal points away
// from the other body, towards the character.
func resolveContact(s *Simulation, e *donburi.Entry, normal mgl64.Vec3, contacts []physics.Contact, share float64) {
	state := components.CharacterState.Get(e)
	params := components.Movement.Get(e)

	moved := false
	for _, c := range contacts {
		if c.Penetration <= 0 {
			continue
		}
		state.Position = state.Position.Add(normal.Mul(c.Penetration * share))
		moved = true
	}
	if moved {
		s.syncBody(e)
	}

	if state.Velocity.Y() < 0 && gamemath.Walkable(normal, params.MaxSlopeAngle) {
		state.Velocity[1] = 0
	}
}

func recordOverlap(e *donburi.Entry, sensor *physics.Body) {
	if e == nil || !e.HasComponent(components.Overlap) {
		return
	}
	o := components.Overlap.Get(e)
	if !slices.Contains(o.Sensors, sensor.Name) {
		o.Sensors = append(o.Sensors, sensor.Name)
	}
}
