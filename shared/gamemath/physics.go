package gamemath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world up axis.
var Up = mgl64.Vec3{0, 1, 0}

const zeroLength = 1e-12

// Clamp clamps v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Finite returns v, or 0 when v is NaN or infinite.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// NormalizeOrZero2 returns v scaled to unit length, or the zero vector when v
// has no usable direction.
func NormalizeOrZero2(v mgl64.Vec2) mgl64.Vec2 {
	l := v.Len()
	if l < zeroLength || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.Vec2{}
	}
	return v.Mul(1 / l)
}

// NormalizeOrZero3 is NormalizeOrZero2 for 3D vectors.
func NormalizeOrZero3(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < zeroLength || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// SanitizeAxis maps NaN and infinities to 0 and clamps both components of v
// to [-limit, limit]. It reports whether anything was changed.
func SanitizeAxis(v mgl64.Vec2, limit float64) (mgl64.Vec2, bool) {
	out := mgl64.Vec2{
		Clamp(Finite(v[0]), -limit, limit),
		Clamp(Finite(v[1]), -limit, limit),
	}
	return out, out != v
}

// AngleToUp returns the angle in radians between n and the up axis. ok is
// false for a zero-length n.
func AngleToUp(n mgl64.Vec3) (angle float64, ok bool) {
	unit := NormalizeOrZero3(n)
	if unit == (mgl64.Vec3{}) {
		return 0, false
	}
	return math.Acos(Clamp(unit.Dot(Up), -1, 1)), true
}

// Walkable reports whether a surface with normal n (pointing away from the
// surface) can be stood on under maxSlope. A maxSlope of 0 means no slope
// constraint, so every surface counts.
func Walkable(n mgl64.Vec3, maxSlope float64) bool {
	if maxSlope == 0 {
		return true
	}
	angle, ok := AngleToUp(n)
	return ok && angle <= maxSlope
}

// HorizontalDamp multiplies v by factor and snaps it to 0 at or below epsilon.
func HorizontalDamp(v, factor, epsilon float64) float64 {
	v *= factor
	if math.Abs(v) <= epsilon {
		return 0
	}
	return v
}
