package gamemath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// WrapAngle maps a to (-pi, pi].
func WrapAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// AngleDiff returns the absolute shortest angular distance between a and b.
func AngleDiff(a, b float64) float64 {
	return math.Abs(WrapAngle(a - b))
}

// YawQuat builds a rotation about the up axis.
func YawQuat(yaw float64) mgl64.Quat {
	return mgl64.QuatRotate(yaw, Up)
}

// QuatYaw extracts the yaw of q, decomposed in Y-X-Z order.
func QuatYaw(q mgl64.Quat) float64 {
	x, y, z, w := q.V[0], q.V[1], q.V[2], q.W
	return math.Atan2(2*(x*z+w*y), 1-2*(x*x+y*y))
}
