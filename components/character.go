package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// CharacterStateData is the simulated state of one character. Exactly one
// simulation instance mutates it: the server for remote players, the local
// predictor for its own character.
type CharacterStateData struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Yaw      float64 // radians, roll and pitch are locked
	Grounded bool    // latched by the grounding pass until the next substep
}

var CharacterState = donburi.NewComponentType[CharacterStateData]()

// MovementParams are per-character constants set at spawn time.
type MovementParams struct {
	Acceleration    float64
	DampingFactor   float64
	JumpImpulse     float64
	MaxSlopeAngle   float64 // radians, 0 disables the slope test
	LookSensitivity float64

	Radius     float64
	HalfHeight float64

	CastScale    float64
	CastDistance float64
	CastSamples  int
}

var Movement = donburi.NewComponentType[MovementParams]()
