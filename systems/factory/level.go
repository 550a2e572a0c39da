package factory

import (
	"github.com/automoto/netcharacon/archetypes"
	"github.com/automoto/netcharacon/components"
	"github.com/automoto/netcharacon/physics"
	"github.com/automoto/netcharacon/shared/leveldata"
	"github.com/yohamta/donburi"
)

// CreateLevel adds the level's obstacles and sensor volumes to the world and
// the space.
func CreateLevel(w donburi.World, space *physics.Space, level *leveldata.LevelData) {
	for _, box := range level.Obstacles {
		createBox(w, space, archetypes.Obstacle.Spawn, box, false)
	}
	for _, box := range level.Sensors {
		createBox(w, space, archetypes.Sensor.Spawn, box, true)
	}
}

type spawnFunc func(donburi.World, ...donburi.IComponentType) *donburi.Entry

func createBox(w donburi.World, space *physics.Space, spawn spawnFunc, box leveldata.Box, sensor bool) *donburi.Entry {
	e := spawn(w)
	body := space.Add(&physics.Body{
		Position: box.Center,
		Collider: physics.Box(box.HalfExtents),
		Sensor:   sensor,
		Name:     box.Name,
		Data:     e.Entity(),
	})
	components.Body.SetValue(e, components.BodyData{Body: body})
	return e
}
