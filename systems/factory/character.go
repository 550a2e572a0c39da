package factory

import (
	"github.com/automoto/netcharacon/archetypes"
	"github.com/automoto/netcharacon/components"
	cfg "github.com/automoto/netcharacon/config"
	"github.com/automoto/netcharacon/physics"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// DefaultMovement returns the configured Movement Parameters.
func DefaultMovement() components.MovementParams {
	return components.MovementParams{
		Acceleration:    cfg.Movement.Acceleration,
		DampingFactor:   cfg.Movement.DampingFactor,
		JumpImpulse:     cfg.Movement.JumpImpulse,
		MaxSlopeAngle:   cfg.Movement.MaxSlopeAngle,
		LookSensitivity: cfg.Movement.LookSensitivity,
		Radius:          cfg.Character.Radius,
		HalfHeight:      cfg.Character.HalfHeight,
		CastScale:       cfg.Movement.CastScale,
		CastDistance:    cfg.Movement.CastDistance,
		CastSamples:     cfg.Movement.CastSamples,
	}
}

// CreateCharacter spawns a simulated character with its own capsule and an
// empty action buffer.
func CreateCharacter(w donburi.World, space *physics.Space, pos mgl64.Vec3, params components.MovementParams) *donburi.Entry {
	e := archetypes.Character.Spawn(w)

	components.CharacterState.SetValue(e, components.CharacterStateData{Position: pos})
	components.Movement.SetValue(e, params)
	components.ActionBuffer.SetValue(e, components.NewActionBuffer(cfg.Network.ActionBufferLimit))

	body := space.Add(&physics.Body{
		Position:   pos,
		Collider:   physics.Capsule(params.Radius, params.HalfHeight),
		Kind:       physics.Kinematic,
		Controller: true,
		Name:       "character",
		Data:       e.Entity(),
	})
	components.Body.SetValue(e, components.BodyData{Body: body})

	return e
}

// CreateRemoteCharacter spawns the display-only view of a character
// simulated elsewhere. Its capsule blocks local characters but is never
// moved by the resolver.
func CreateRemoteCharacter(w donburi.World, space *physics.Space, pos mgl64.Vec3, yaw float64) *donburi.Entry {
	e := archetypes.RemoteCharacter.Spawn(w)

	components.RemoteView.SetValue(e, components.RemoteViewData{
		FromPos:     pos,
		ToPos:       pos,
		FromYaw:     yaw,
		ToYaw:       yaw,
		Position:    pos,
		Yaw:         yaw,
		Initialized: true,
	})

	body := space.Add(&physics.Body{
		Position: pos,
		Collider: physics.Capsule(cfg.Character.Radius, cfg.Character.HalfHeight),
		Kind:     physics.Kinematic,
		Name:     "remote",
		Data:     e.Entity(),
	})
	components.Body.SetValue(e, components.BodyData{Body: body})

	return e
}

// DestroyCharacter removes an entity and its collider.
func DestroyCharacter(w donburi.World, space *physics.Space, e *donburi.Entry) {
	if !e.Valid() {
		return
	}
	if e.HasComponent(components.Body) {
		if b := components.Body.Get(e).Body; b != nil {
			space.Remove(b)
		}
	}
	w.Remove(e.Entity())
}
