package systems

import (
	"github.com/automoto/netcharacon/components"
	"github.com/automoto/netcharacon/shared/gamemath"
	"github.com/automoto/netcharacon/shared/messages"
	"github.com/automoto/netcharacon/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// ApplyControls drains every character's action buffer and applies the
// intents in arrival order. Jumps only take effect when the character was
// grounded at the start of the substep.
func ApplyControls(s *Simulation) {
	tags.Character.Each(s.World, func(e *donburi.Entry) {
		buf := components.ActionBuffer.Get(e)
		if buf.Len() == 0 {
			return
		}
		state := components.CharacterState.Get(e)
		params := components.Movement.Get(e)
		grounded := state.Grounded
		for _, intent := range buf.Drain() {
			applyIntent(state, params, intent, grounded, s.Dt)
		}
	})
}

func applyIntent(state *components.CharacterStateData, params *components.MovementParams, intent messages.ControlIntent, grounded bool, dt float64) {
	move, _ := gamemath.SanitizeAxis(intent.Linear, 1)
	move = gamemath.NormalizeOrZero2(move)
	// X is lateral, forward is -Z
	state.Velocity[0] += move.X() * params.Acceleration * dt
	state.Velocity[2] -= move.Y() * params.Acceleration * dt

	if intent.Jump && grounded {
		state.Velocity[1] = params.JumpImpulse
	}

	look := gamemath.Finite(intent.Angular.X())
	if look != 0 {
		state.Yaw = gamemath.WrapAngle(state.Yaw - look*params.LookSensitivity)
	}
}

// ApplyGravity adds gravity to every character's velocity.
func ApplyGravity(s *Simulation) {
	step := s.Gravity.Mul(s.Dt)
	tags.Character.Each(s.World, func(e *donburi.Entry) {
		state := components.CharacterState.Get(e)
		state.Velocity = state.Velocity.Add(step)
	})
}

// ApplyDamping damps horizontal velocity, snapping small components to zero.
func ApplyDamping(s *Simulation) {
	tags.Character.Each(s.World, func(e *donburi.Entry) {
		state := components.CharacterState.Get(e)
		factor := components.Movement.Get(e).DampingFactor
		state.Velocity[0] = gamemath.HorizontalDamp(state.Velocity[0], factor, s.DampingEpsilon)
		state.Velocity[2] = gamemath.HorizontalDamp(state.Velocity[2], factor, s.DampingEpsilon)
	})
}

// IntegratePositions moves every character by its velocity and syncs the
// collider.
func IntegratePositions(s *Simulation) {
	tags.Character.Each(s.World, func(e *donburi.Entry) {
		state := components.CharacterState.Get(e)
		if state.Velocity == (mgl64.Vec3{}) {
			return
		}
		state.Position = state.Position.Add(state.Velocity.Mul(s.Dt))
		s.syncBody(e)
	})
}
