package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/automoto/netcharacon/assets"
	"github.com/automoto/netcharacon/logging"
	"github.com/automoto/netcharacon/shared/leveldata"
)

// LoadLevel reads the TMX level at path, or the embedded default arena when
// path is empty.
func LoadLevel(path string) (*leveldata.LevelData, error) {
	var (
		level *leveldata.LevelData
		err   error
	)
	if path == "" {
		level, err = assets.LoadLevel(assets.DefaultLevel)
	} else {
		level, err = leveldata.LoadLevel(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	}
	if err != nil {
		return nil, fmt.Errorf("load level %q: %w", path, err)
	}

	logging.Named("server").Infow("loaded level",
		"name", level.Name, "obstacles", len(level.Obstacles), "sensors", len(level.Sensors), "spawns", len(level.Spawns))
	return level, nil
}
