package netcomponents

import (
	"github.com/automoto/netcharacon/shared/gamemath"
	"github.com/yohamta/donburi"
)

// NetCharacterData is the replicated pose of one character. The authority is
// the only writer; every other peer treats it as read-only display data.
type NetCharacterData struct {
	X, Y, Z      float64
	Yaw          float64
	Grounded     bool
	LastSequence uint32 // Last intent sequence the authority applied (for reconciliation)
}

var NetCharacter = donburi.NewComponentType[NetCharacterData]()

// LerpNetCharacter interpolates position and yaw. Discrete fields take the
// target's value.
func LerpNetCharacter(from, to NetCharacterData, t float64) *NetCharacterData {
	return &NetCharacterData{
		X:            from.X + (to.X-from.X)*t,
		Y:            from.Y + (to.Y-from.Y)*t,
		Z:            from.Z + (to.Z-from.Z)*t,
		Yaw:          gamemath.WrapAngle(from.Yaw + gamemath.WrapAngle(to.Yaw-from.Yaw)*t),
		Grounded:     to.Grounded,
		LastSequence: to.LastSequence,
	}
}
