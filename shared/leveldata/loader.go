package leveldata

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lafriks/go-tiled"
)

// ErrNoObstacles is returned for a level without an Obstacles object group.
var ErrNoObstacles = errors.New("level has no obstacles")

// Object group names read from the TMX file.
const (
	groupObstacles = "Obstacles"
	groupSensors   = "Sensors"
	groupSpawns    = "PlayerSpawn"
)

// LoadLevel parses a TMX file into world-space boxes. One tile is one metre
// and the map is centred on the origin. Rectangles are lifted into boxes by
// their "elevation" (bottom, default 0) and "height" (default 1) properties.
// It takes an fs.FS so callers can pass embed.FS or os.DirFS.
func LoadLevel(fsys fs.FS, tmxPath string) (*LevelData, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if levelMap.TileWidth <= 0 || levelMap.TileHeight <= 0 {
		return nil, fmt.Errorf("load TMX %s: invalid tile size %dx%d", tmxPath, levelMap.TileWidth, levelMap.TileHeight)
	}

	p := projection{
		sx:    1 / float64(levelMap.TileWidth),
		sz:    1 / float64(levelMap.TileHeight),
		halfW: float64(levelMap.Width) / 2,
		halfD: float64(levelMap.Height) / 2,
	}

	data := &LevelData{
		Name:   strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		Extent: max(p.halfW, p.halfD),
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case groupObstacles:
			for _, o := range og.Objects {
				box, err := p.box(o)
				if err != nil {
					return nil, fmt.Errorf("%s: obstacle %d: %w", tmxPath, o.ID, err)
				}
				data.Obstacles = append(data.Obstacles, box)
			}
		case groupSensors:
			for _, o := range og.Objects {
				box, err := p.box(o)
				if err != nil {
					return nil, fmt.Errorf("%s: sensor %d: %w", tmxPath, o.ID, err)
				}
				data.Sensors = append(data.Sensors, box)
			}
		case groupSpawns:
			for _, o := range og.Objects {
				elevation, err := floatProperty(o.Properties, "elevation", 0)
				if err != nil {
					return nil, fmt.Errorf("%s: spawn %d: %w", tmxPath, o.ID, err)
				}
				data.Spawns = append(data.Spawns, SpawnPoint{
					Position: mgl64.Vec3{p.x(o.X), elevation, p.z(o.Y)},
					Index:    o.Properties.GetInt("spawnIndex"),
				})
			}
		}
	}

	if len(data.Obstacles) == 0 {
		return nil, fmt.Errorf("%s: %w", tmxPath, ErrNoObstacles)
	}

	sort.SliceStable(data.Spawns, func(i, j int) bool {
		return data.Spawns[i].Index < data.Spawns[j].Index
	})

	return data, nil
}

// LoadAllLevels discovers all .tmx files in levelsDir within fsys and returns
// them keyed by stem name plus a sorted list of names.
func LoadAllLevels(fsys fs.FS, levelsDir string) (map[string]*LevelData, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}

	levels := make(map[string]*LevelData, len(matches))
	names := make([]string, 0, len(matches))
	for _, path := range matches {
		data, err := LoadLevel(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		levels[data.Name] = data
		names = append(names, data.Name)
	}

	sort.Strings(names)
	return levels, names, nil
}

// projection maps TMX pixel coordinates onto the world X/Z plane.
type projection struct {
	sx, sz       float64
	halfW, halfD float64
}

func (p projection) x(px float64) float64 { return px*p.sx - p.halfW }
func (p projection) z(py float64) float64 { return py*p.sz - p.halfD }

func (p projection) box(o *tiled.Object) (Box, error) {
	if o.Width <= 0 || o.Height <= 0 {
		return Box{}, fmt.Errorf("rectangle %q has no area", o.Name)
	}
	elevation, err := floatProperty(o.Properties, "elevation", 0)
	if err != nil {
		return Box{}, err
	}
	height, err := floatProperty(o.Properties, "height", 1)
	if err != nil {
		return Box{}, err
	}
	if height <= 0 {
		return Box{}, fmt.Errorf("rectangle %q has height %v", o.Name, height)
	}

	w := o.Width * p.sx
	d := o.Height * p.sz
	return Box{
		Name:        o.Name,
		Center:      mgl64.Vec3{p.x(o.X) + w/2, elevation + height/2, p.z(o.Y) + d/2},
		HalfExtents: mgl64.Vec3{w / 2, height / 2, d / 2},
	}, nil
}

func floatProperty(props tiled.Properties, name string, def float64) (float64, error) {
	raw := props.GetString(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("property %s: %w", name, err)
	}
	return v, nil
}
