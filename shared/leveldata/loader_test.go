package leveldata

import (
	"errors"
	"math"
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl64"
)

const rampTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="20" height="10" tilewidth="32" tileheight="32" infinite="0" nextlayerid="3" nextobjectid="4">
 <objectgroup id="1" name="Obstacles">
  <object id="1" name="slab" x="0" y="0" width="640" height="320">
   <properties>
    <property name="elevation" type="float" value="-0.5"/>
    <property name="height" type="float" value="0.5"/>
   </properties>
  </object>
  <object id="2" name="crate" x="320" y="160" width="64" height="32"/>
 </objectgroup>
 <objectgroup id="2" name="PlayerSpawn">
  <object id="3" x="64" y="96">
   <properties>
    <property name="spawnIndex" type="int" value="1"/>
   </properties>
   <point/>
  </object>
 </objectgroup>
</map>
`

const emptyTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="4" height="4" tilewidth="16" tileheight="16" infinite="0" nextlayerid="1" nextobjectid="1">
</map>
`

func approx(a, b mgl64.Vec3) bool {
	return a.Sub(b).Len() < 1e-9
}

func TestLoadLevel(t *testing.T) {
	fsys := fstest.MapFS{"levels/ramp.tmx": {Data: []byte(rampTMX)}}

	data, err := LoadLevel(fsys, "levels/ramp.tmx")
	if err != nil {
		t.Fatalf("LoadLevel() error: %v", err)
	}

	if data.Name != "ramp" {
		t.Errorf("Name = %q, want ramp", data.Name)
	}
	if data.Extent != 10 {
		t.Errorf("Extent = %v, want 10", data.Extent)
	}
	if len(data.Obstacles) != 2 {
		t.Fatalf("got %d obstacles, want 2", len(data.Obstacles))
	}

	slab := data.Obstacles[0]
	if !approx(slab.Center, mgl64.Vec3{0, -0.25, 0}) || !approx(slab.HalfExtents, mgl64.Vec3{10, 0.25, 5}) {
		t.Errorf("slab = %+v", slab)
	}

	// 64x32 px at (320,160) is 2x1 tiles at tile (10,5); default elevation 0, height 1
	crate := data.Obstacles[1]
	if !approx(crate.Center, mgl64.Vec3{1, 0.5, 0.5}) || !approx(crate.HalfExtents, mgl64.Vec3{1, 0.5, 0.5}) {
		t.Errorf("crate = %+v", crate)
	}

	if len(data.Spawns) != 1 || data.Spawns[0].Index != 1 {
		t.Fatalf("spawns = %+v", data.Spawns)
	}
	if got := data.Spawn(mgl64.Vec3{9, 9, 9}); !approx(got, mgl64.Vec3{-8, 0, -2}) {
		t.Errorf("Spawn() = %v, want (-8,0,-2)", got)
	}
}

func TestLoadLevelWithoutObstacles(t *testing.T) {
	fsys := fstest.MapFS{"levels/empty.tmx": {Data: []byte(emptyTMX)}}

	_, err := LoadLevel(fsys, "levels/empty.tmx")
	if !errors.Is(err, ErrNoObstacles) {
		t.Fatalf("LoadLevel() error = %v, want ErrNoObstacles", err)
	}
}

func TestLoadAllLevels(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/b.tmx": {Data: []byte(rampTMX)},
		"levels/a.tmx": {Data: []byte(rampTMX)},
	}

	levels, names, err := LoadAllLevels(fsys, "levels")
	if err != nil {
		t.Fatalf("LoadAllLevels() error: %v", err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("names = %v", names)
	}
	if levels["a"] == nil || levels["b"] == nil {
		t.Fatalf("levels missing entries: %v", levels)
	}
}

func TestDefaultArena(t *testing.T) {
	arena := DefaultArena()
	if len(arena.Obstacles) != 5 {
		t.Fatalf("got %d obstacles, want floor + 4 boxes", len(arena.Obstacles))
	}
	floor := arena.Obstacles[0]
	if top := floor.Center.Y() + floor.HalfExtents.Y(); math.Abs(top) > 1e-12 {
		t.Errorf("floor top = %v, want 0", top)
	}
	if got := arena.Spawn(mgl64.Vec3{}); !approx(got, mgl64.Vec3{0, 2, 0}) {
		t.Errorf("spawn = %v", got)
	}
}
