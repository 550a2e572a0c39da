package assets

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/automoto/netcharacon/shared/leveldata"
)

var (
	//go:embed all:levels
	assetFS embed.FS
)

// DefaultLevel is the stem of the level loaded when none is configured.
const DefaultLevel = "arena"

// LevelFS exposes the embedded levels directory.
func LevelFS() fs.FS {
	return assetFS
}

// LoadLevel loads an embedded level by stem name.
func LoadLevel(name string) (*leveldata.LevelData, error) {
	data, err := leveldata.LoadLevel(assetFS, "levels/"+name+".tmx")
	if err != nil {
		return nil, fmt.Errorf("embedded level %s: %w", name, err)
	}
	return data, nil
}

// ListLevelNames returns the sorted stems of every embedded level.
func ListLevelNames() ([]string, error) {
	_, names, err := leveldata.LoadAllLevels(assetFS, "levels")
	return names, err
}
