package systems

import (
	"github.com/automoto/netcharacon/components"
	"github.com/automoto/netcharacon/shared/gamemath"
	"github.com/automoto/netcharacon/shared/netcomponents"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// RetargetRemoteView starts easing the displayed pose from where it is now
// towards snap over duration seconds. The first snapshot is applied as is.
func RetargetRemoteView(v *components.RemoteViewData, snap netcomponents.NetCharacterData, duration float32) {
	target := mgl64.Vec3{snap.X, snap.Y, snap.Z}
	v.Grounded = snap.Grounded

	if !v.Initialized || duration <= 0 {
		v.FromPos, v.ToPos, v.Position = target, target, target
		v.FromYaw, v.ToYaw, v.Yaw = snap.Yaw, snap.Yaw, snap.Yaw
		v.Alpha = nil
		v.Initialized = true
		return
	}

	v.FromPos, v.ToPos = v.Position, target
	v.FromYaw, v.ToYaw = v.Yaw, snap.Yaw
	v.Alpha = gween.New(0, 1, duration, ease.Linear)
}

// AdvanceRemoteView moves the displayed pose dt seconds along its tween.
func AdvanceRemoteView(v *components.RemoteViewData, dt float32) {
	if v.Alpha == nil {
		return
	}
	a, done := v.Alpha.Update(dt)
	if done {
		v.Position, v.Yaw = v.ToPos, v.ToYaw
		v.Alpha = nil
		return
	}
	t := float64(a)
	v.Position = v.FromPos.Add(v.ToPos.Sub(v.FromPos).Mul(t))
	v.Yaw = gamemath.WrapAngle(v.FromYaw + gamemath.WrapAngle(v.ToYaw-v.FromYaw)*t)
}

// AdvanceRemoteViews advances every remote view in w.
func AdvanceRemoteViews(w donburi.World, dt float32) {
	components.RemoteView.Each(w, func(e *donburi.Entry) {
		AdvanceRemoteView(components.RemoteView.Get(e), dt)
	})
}
