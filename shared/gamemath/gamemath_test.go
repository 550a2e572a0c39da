package gamemath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNormalizeOrZero(t *testing.T) {
	if got := NormalizeOrZero2(mgl64.Vec2{}); got != (mgl64.Vec2{}) {
		t.Errorf("zero vector: got %v", got)
	}
	if got := NormalizeOrZero2(mgl64.Vec2{math.NaN(), 1}); got != (mgl64.Vec2{}) {
		t.Errorf("NaN vector: got %v", got)
	}
	got := NormalizeOrZero2(mgl64.Vec2{3, 4})
	if math.Abs(got.Len()-1) > 1e-12 || math.Abs(got[0]-0.6) > 1e-12 {
		t.Errorf("NormalizeOrZero2({3,4}) = %v", got)
	}
	if got := NormalizeOrZero3(mgl64.Vec3{}); got != (mgl64.Vec3{}) {
		t.Errorf("zero vec3: got %v", got)
	}
}

func TestSanitizeAxis(t *testing.T) {
	tests := []struct {
		in      mgl64.Vec2
		want    mgl64.Vec2
		changed bool
	}{
		{mgl64.Vec2{0.5, -0.5}, mgl64.Vec2{0.5, -0.5}, false},
		{mgl64.Vec2{2, -3}, mgl64.Vec2{1, -1}, true},
		{mgl64.Vec2{math.NaN(), math.Inf(1)}, mgl64.Vec2{0, 0}, true},
	}
	for _, tt := range tests {
		got, changed := SanitizeAxis(tt.in, 1)
		if got != tt.want || changed != tt.changed {
			t.Errorf("SanitizeAxis(%v) = %v,%v want %v,%v", tt.in, got, changed, tt.want, tt.changed)
		}
	}
}

func TestWalkable(t *testing.T) {
	maxSlope := math.Pi / 4
	tests := []struct {
		name string
		n    mgl64.Vec3
		max  float64
		want bool
	}{
		{"flat", mgl64.Vec3{0, 1, 0}, maxSlope, true},
		{"unnormalized flat", mgl64.Vec3{0, 5, 0}, maxSlope, true},
		{"30 degrees", mgl64.Vec3{math.Sin(math.Pi / 6), math.Cos(math.Pi / 6), 0}, maxSlope, true},
		{"wall", mgl64.Vec3{1, 0, 0}, maxSlope, false},
		{"ceiling", mgl64.Vec3{0, -1, 0}, maxSlope, false},
		{"zero normal", mgl64.Vec3{}, maxSlope, false},
		{"no constraint wall", mgl64.Vec3{1, 0, 0}, 0, true},
		{"no constraint zero", mgl64.Vec3{}, 0, true},
	}
	for _, tt := range tests {
		if got := Walkable(tt.n, tt.max); got != tt.want {
			t.Errorf("%s: Walkable(%v, %v) = %v, want %v", tt.name, tt.n, tt.max, got, tt.want)
		}
	}
}

func TestHorizontalDampReachesZeroWithoutSignFlip(t *testing.T) {
	v := 3.0
	for i := 0; i < 10000; i++ {
		next := HorizontalDamp(v, 0.98, 1e-4)
		if math.Abs(next) > math.Abs(v) {
			t.Fatalf("step %d: magnitude grew %v -> %v", i, v, next)
		}
		if next*v < 0 {
			t.Fatalf("step %d: sign flipped %v -> %v", i, v, next)
		}
		v = next
		if v == 0 {
			return
		}
	}
	t.Fatalf("velocity never snapped to zero, last %v", v)
}

func TestWrapAngle(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-5 * math.Pi / 2, -math.Pi / 2},
	}
	for _, tt := range tests {
		if got := WrapAngle(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if d := AngleDiff(math.Pi-0.1, -math.Pi+0.1); math.Abs(d-0.2) > 1e-9 {
		t.Errorf("AngleDiff across the seam = %v, want 0.2", d)
	}
}

func TestYawQuatRoundTrip(t *testing.T) {
	for _, yaw := range []float64{0, 0.3, -1.2, 2.9, -3.1} {
		if got := QuatYaw(YawQuat(yaw)); math.Abs(got-yaw) > 1e-9 {
			t.Errorf("QuatYaw(YawQuat(%v)) = %v", yaw, got)
		}
	}
}
