package components

import (
	"github.com/automoto/netcharacon/physics"
	"github.com/yohamta/donburi"
)

// BodyData links an entity to its collider in the physics space.
type BodyData struct {
	*physics.Body
}

var Body = donburi.NewComponentType[BodyData]()
