package assets

import (
	"testing"

	"github.com/automoto/netcharacon/shared/leveldata"
)

func TestEmbeddedArenaMatchesDefault(t *testing.T) {
	got, err := LoadLevel(DefaultLevel)
	if err != nil {
		t.Fatalf("LoadLevel(%q) error: %v", DefaultLevel, err)
	}
	want := leveldata.DefaultArena()

	if len(got.Obstacles) != len(want.Obstacles) {
		t.Fatalf("got %d obstacles, want %d", len(got.Obstacles), len(want.Obstacles))
	}
	for i := range want.Obstacles {
		g, w := got.Obstacles[i], want.Obstacles[i]
		if g.Center.Sub(w.Center).Len() > 1e-9 || g.HalfExtents.Sub(w.HalfExtents).Len() > 1e-9 {
			t.Errorf("obstacle %d = %+v, want %+v", i, g, w)
		}
	}
	if len(got.Sensors) != 1 || got.Sensors[0].Center.Sub(want.Sensors[0].Center).Len() > 1e-9 {
		t.Errorf("sensors = %+v", got.Sensors)
	}
	if got.Spawn(want.Spawns[0].Position.Mul(2)).Sub(want.Spawns[0].Position).Len() > 1e-9 {
		t.Errorf("spawn = %+v", got.Spawns)
	}
	if got.Extent != want.Extent {
		t.Errorf("Extent = %v, want %v", got.Extent, want.Extent)
	}
}

func TestListLevelNames(t *testing.T) {
	names, err := ListLevelNames()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) == 0 || names[0] != DefaultLevel {
		t.Fatalf("names = %v", names)
	}
}
