package systems

import (
	"math"
	"testing"

	"github.com/automoto/netcharacon/components"
	"github.com/automoto/netcharacon/shared/netcomponents"
	"github.com/go-gl/mathgl/mgl64"
)

func TestRemoteViewFirstSnapshotApplies(t *testing.T) {
	var v components.RemoteViewData
	RetargetRemoteView(&v, netcomponents.NetCharacterData{X: 1, Y: 2, Z: 3, Yaw: 0.5, Grounded: true}, 0.1)

	if v.Position != (mgl64.Vec3{1, 2, 3}) || v.Yaw != 0.5 || !v.Grounded || v.Alpha != nil {
		t.Fatalf("view = %+v", v)
	}
}

func TestRemoteViewEasesTowardsSnapshot(t *testing.T) {
	var v components.RemoteViewData
	RetargetRemoteView(&v, netcomponents.NetCharacterData{}, 0.1)
	RetargetRemoteView(&v, netcomponents.NetCharacterData{X: 10}, 0.1)

	AdvanceRemoteView(&v, 0.05)
	if math.Abs(v.Position.X()-5) > 1e-3 {
		t.Errorf("halfway x = %v, want ~5", v.Position.X())
	}

	AdvanceRemoteView(&v, 0.1)
	if v.Position.X() != 10 || v.Alpha != nil {
		t.Errorf("after the tween x = %v alpha = %v, want 10 and done", v.Position.X(), v.Alpha)
	}
}

func TestRemoteViewYawTakesShortArc(t *testing.T) {
	var v components.RemoteViewData
	RetargetRemoteView(&v, netcomponents.NetCharacterData{Yaw: math.Pi - 0.1}, 0.1)
	RetargetRemoteView(&v, netcomponents.NetCharacterData{Yaw: -math.Pi + 0.1}, 0.1)

	AdvanceRemoteView(&v, 0.05)
	if math.Abs(math.Abs(v.Yaw)-math.Pi) > 1e-3 {
		t.Errorf("halfway yaw = %v, want ~±pi", v.Yaw)
	}
}
