package netcomponents

import (
	"math"
	"testing"
)

func TestLerpNetCharacter(t *testing.T) {
	from := NetCharacterData{X: 0, Y: 1, Z: -2, Yaw: 0, Grounded: false, LastSequence: 3}
	to := NetCharacterData{X: 10, Y: 1, Z: 2, Yaw: 1, Grounded: true, LastSequence: 4}

	got := LerpNetCharacter(from, to, 0.5)
	if got.X != 5 || got.Y != 1 || got.Z != 0 {
		t.Errorf("position = (%v,%v,%v), want (5,1,0)", got.X, got.Y, got.Z)
	}
	if math.Abs(got.Yaw-0.5) > 1e-9 {
		t.Errorf("yaw = %v, want 0.5", got.Yaw)
	}
	if !got.Grounded || got.LastSequence != 4 {
		t.Errorf("discrete fields must take the target value, got %+v", got)
	}
}

func TestLerpNetCharacterYawTakesShortestArc(t *testing.T) {
	from := NetCharacterData{Yaw: math.Pi - 0.1}
	to := NetCharacterData{Yaw: -math.Pi + 0.1}

	got := LerpNetCharacter(from, to, 0.5)
	if math.Abs(math.Abs(got.Yaw)-math.Pi) > 1e-9 {
		t.Errorf("yaw = %v, want +-pi", got.Yaw)
	}
}
