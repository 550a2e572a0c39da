package factory

import (
	cfg "github.com/automoto/netcharacon/config"
	"github.com/automoto/netcharacon/physics"
	"github.com/automoto/netcharacon/shared/leveldata"
)

// CreateSpace sizes a physics space for level, falling back to the
// configured world extent when the level does not declare one.
func CreateSpace(level *leveldata.LevelData) *physics.Space {
	extent := cfg.Physics.WorldExtent
	if level != nil && level.Extent > extent {
		extent = level.Extent
	}
	return physics.NewSpace(extent, cfg.Physics.CellSize)
}
