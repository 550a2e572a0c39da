package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// RemoteViewData is the cosmetic pose of a character this process does not
// simulate. It is eased from the previous snapshot towards the latest one
// over one network tick and never fed back into simulation.
type RemoteViewData struct {
	FromPos, ToPos mgl64.Vec3
	FromYaw, ToYaw float64

	Position mgl64.Vec3
	Yaw      float64
	Grounded bool

	Alpha       *gween.Tween // 0 -> 1 over one network tick
	Initialized bool
}

var RemoteView = donburi.NewComponentType[RemoteViewData]()
