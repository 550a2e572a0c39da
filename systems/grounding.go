package systems

import (
	"github.com/automoto/netcharacon/components"
	"github.com/automoto/netcharacon/physics"
	"github.com/automoto/netcharacon/shared/gamemath"
	"github.com/automoto/netcharacon/tags"
	"github.com/yohamta/donburi"
)

// UpdateGrounded casts each character's shrunk collider downwards and latches
// whether it rests on a walkable surface.
func UpdateGrounded(s *Simulation) {
	down := gamemath.Up.Mul(-1)
	tags.Character.Each(s.World, func(e *donburi.Entry) {
		state := components.CharacterState.Get(e)
		params := components.Movement.Get(e)
		body := components.Body.Get(e).Body
		if body == nil {
			state.Grounded = false
			return
		}
		hits := s.Space.CastShape(body, body.Collider.Scaled(params.CastScale), down, params.CastDistance, params.CastSamples)
		state.Grounded = Classify(hits, params.MaxSlopeAngle)
	})
}

// Classify reports whether any hit is walkable under maxSlope. A maxSlope of
// 0 accepts every hit.
func Classify(hits []physics.CastHit, maxSlope float64) bool {
	for _, h := range hits {
		if gamemath.Walkable(h.Normal, maxSlope) {
			return true
		}
	}
	return false
}
