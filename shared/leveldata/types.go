// Package leveldata provides TMX level parsing shared between client and server.
// It has no dependencies on donburi or resolv, pure data only.
package leveldata

import "github.com/go-gl/mathgl/mgl64"

// LevelData holds the static collision geometry of a level in world units.
type LevelData struct {
	Name      string
	Obstacles []Box
	Sensors   []Box
	Spawns    []SpawnPoint
	Extent    float64 // half width of the playable area on X and Z
}

// Box is an axis-aligned box.
type Box struct {
	Name        string
	Center      mgl64.Vec3
	HalfExtents mgl64.Vec3
}

// SpawnPoint represents a character spawn location.
type SpawnPoint struct {
	Position mgl64.Vec3
	Index    int
}

// Spawn returns the spawn point with the lowest index, or fallback when the
// level defines none.
func (l *LevelData) Spawn(fallback mgl64.Vec3) mgl64.Vec3 {
	if len(l.Spawns) == 0 {
		return fallback
	}
	return l.Spawns[0].Position
}

// DefaultArena is the built-in level: a 100x1x100 floor slab with its top
// at y=0 and four 5m boxes around the origin.
func DefaultArena() *LevelData {
	boxes := []Box{{
		Name:        "floor",
		Center:      mgl64.Vec3{0, -0.5, 0},
		HalfExtents: mgl64.Vec3{50, 0.5, 50},
	}}
	for _, c := range [][2]float64{{5, 5}, {-5, 5}, {5, -5}, {-5, -5}} {
		boxes = append(boxes, Box{
			Name:        "box",
			Center:      mgl64.Vec3{c[0], 2.5, c[1]},
			HalfExtents: mgl64.Vec3{2.5, 2.5, 2.5},
		})
	}

	return &LevelData{
		Name:      "arena",
		Obstacles: boxes,
		Sensors: []Box{{
			Name:        "beacon",
			Center:      mgl64.Vec3{20, 1, 20},
			HalfExtents: mgl64.Vec3{2, 1, 2},
		}},
		Spawns: []SpawnPoint{{Position: mgl64.Vec3{0, 2, 0}}},
		Extent: 50,
	}
}
