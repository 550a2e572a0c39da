// Package physics is the contact provider consumed by the character
// controller: a resolv grid over the X/Z plane as broad phase, capsule and
// box narrow phase, and a sampled downward shape cast.
package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
)

// ColliderKind selects the narrow phase for a collider.
type ColliderKind int

const (
	KindCapsule ColliderKind = iota // vertical capsule
	KindBox                         // axis-aligned box
)

// Collider is a shape centred on its body's position.
type Collider struct {
	Kind ColliderKind

	// Capsule
	Radius     float64
	HalfHeight float64 // half length of the inner vertical segment

	// Box
	HalfExtents mgl64.Vec3
}

// Capsule returns a vertical capsule collider.
func Capsule(radius, halfHeight float64) Collider {
	return Collider{Kind: KindCapsule, Radius: radius, HalfHeight: halfHeight}
}

// Box returns an axis-aligned box collider.
func Box(halfExtents mgl64.Vec3) Collider {
	return Collider{Kind: KindBox, HalfExtents: halfExtents}
}

// Scaled returns a copy of c uniformly scaled by s.
func (c Collider) Scaled(s float64) Collider {
	c.Radius *= s
	c.HalfHeight *= s
	c.HalfExtents = c.HalfExtents.Mul(s)
	return c
}

// planarHalf returns the collider's half size on X and Z.
func (c Collider) planarHalf() (float64, float64) {
	if c.Kind == KindBox {
		return c.HalfExtents.X(), c.HalfExtents.Z()
	}
	return c.Radius, c.Radius
}

// BodyKind describes how a body takes part in contact generation.
type BodyKind int

const (
	Static    BodyKind = iota // level geometry, never moved by the solver
	Kinematic                 // moved by game code
)

// Body is a collider placed in a Space.
type Body struct {
	ID         uint64
	Position   mgl64.Vec3
	Collider   Collider
	Kind       BodyKind
	Controller bool // driven by a character controller, pushed out by the resolver
	Sensor     bool // reports overlaps, never blocks
	Name       string
	Data       any // owner, e.g. a donburi.Entity

	space  *Space
	object *resolv.Object
}

// IsKinematic reports whether the body moves.
func (b *Body) IsKinematic() bool {
	return b.Kind == Kinematic
}
