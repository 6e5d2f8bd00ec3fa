package usecases

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	da "github.com/lintang-b-s/roadfinder/pkg/datastructure"
	"github.com/lintang-b-s/roadfinder/pkg/engine/planner"
	"github.com/lintang-b-s/roadfinder/pkg/metrics"
	"github.com/lintang-b-s/roadfinder/pkg/spatialindex"
	"github.com/lintang-b-s/roadfinder/pkg/util"
	"go.uber.org/zap"
)

type storedMap struct {
	name       string
	generation uint64
	grid       *da.OccupancyGrid
	index      SpatialIndex

	// free region label of every vertex, endpoints in different regions have no path.
	graph      *da.Graph
	regions    []da.Index
	numRegions int

	vehicle *da.VehicleSpec
}

// sameRegion reports whether a and b are free cells of the same connected region.
func (m *storedMap) sameRegion(a, b da.GridCell) bool {
	u, ok := m.graph.GetVertexIndex(a)
	if !ok {
		return false
	}
	v, ok := m.graph.GetVertexIndex(b)
	if !ok {
		return false
	}
	return m.regions[u] == m.regions[v]
}

type MapInfo struct {
	Name      string `json:"name"`
	Rows      int    `json:"rows"`
	Cols      int    `json:"cols"`
	FreeCells int    `json:"free_cells"`
	Regions   int    `json:"regions"`
}

// RegisterMap stores grid under name, replacing any previous map of that name.
func (ps *PlanningService) RegisterMap(name string, grid *da.OccupancyGrid) error {
	return ps.registerMap(name, grid, nil)
}

func (ps *PlanningService) registerMap(name string, grid *da.OccupancyGrid, vehicle *da.VehicleSpec) error {
	if name == "" {
		return util.WrapErrorf(ErrEmptyMapName, util.ErrBadParamInput, "register map")
	}
	if grid == nil || grid.NumberOfFreeCells() == 0 {
		return util.WrapErrorf(fmt.Errorf("%w: grid has no free cells", da.ErrInvalidMap), util.ErrBadParamInput,
			"register map %q", name)
	}

	graph, err := planner.BuildGraph(grid)
	if err != nil {
		return util.WrapErrorf(err, util.ErrBadParamInput, "register map %q", name)
	}
	regions, numRegions := graph.StronglyConnectedComponents()

	index := spatialindex.NewRtree()
	index.Build(grid, ps.log)

	ps.mu.Lock()
	ps.generation++
	ps.maps[name] = &storedMap{
		name:       name,
		generation: ps.generation,
		grid:       grid,
		index:      index,
		graph:      graph,
		regions:    regions,
		numRegions: numRegions,
		vehicle:    vehicle,
	}
	numMaps := len(ps.maps)
	ps.mu.Unlock()

	ps.purgeCache(name)
	metrics.SetStoredMaps(numMaps)
	ps.log.Info("registered map", zap.String("name", name), zap.Int("rows", grid.Rows()),
		zap.Int("cols", grid.Cols()), zap.Int("free_cells", grid.NumberOfFreeCells()),
		zap.Int("regions", numRegions))
	return nil
}

func (ps *PlanningService) getMap(name string) (*storedMap, error) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	m, ok := ps.maps[name]
	if !ok {
		return nil, util.WrapErrorf(ErrMapNotFound, util.ErrNotFound, "map %q", name)
	}
	return m, nil
}

// Maps lists the stored maps sorted by name.
func (ps *PlanningService) Maps() []MapInfo {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	infos := make([]MapInfo, 0, len(ps.maps))
	for _, m := range ps.maps {
		infos = append(infos, MapInfo{
			Name:      m.name,
			Rows:      m.grid.Rows(),
			Cols:      m.grid.Cols(),
			FreeCells: m.grid.NumberOfFreeCells(),
			Regions:   m.numRegions,
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// LoadMaps registers every map file in dir: "<name>.map", "<name>.map.bz2" and yaml map specs
// ("<name>.yaml" / "<name>.yml", named by their name field if set). returns the number of maps loaded.
func (ps *PlanningService) LoadMaps(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		filename := filepath.Join(dir, entry.Name())

		var (
			name    string
			grid    *da.OccupancyGrid
			vehicle *da.VehicleSpec
		)
		switch {
		case strings.HasSuffix(entry.Name(), ".map.bz2"):
			name = strings.TrimSuffix(entry.Name(), ".map.bz2")
			grid, err = da.ReadGrid(filename)
		case strings.HasSuffix(entry.Name(), ".map"):
			name = strings.TrimSuffix(entry.Name(), ".map")
			grid, err = da.ReadGrid(filename)
		case strings.HasSuffix(entry.Name(), ".yaml"), strings.HasSuffix(entry.Name(), ".yml"):
			name = strings.TrimSuffix(strings.TrimSuffix(entry.Name(), ".yaml"), ".yml")
			var spec *da.MapSpec
			spec, err = da.ReadMapSpec(filename)
			if err == nil {
				if spec.Name != "" {
					name = spec.Name
				}
				vehicle = spec.Vehicle
				grid, err = spec.Grid()
			}
		default:
			continue
		}
		if err != nil {
			return loaded, fmt.Errorf("load map %s: %w", filename, err)
		}

		if err := ps.registerMap(name, grid, vehicle); err != nil {
			return loaded, err
		}
		loaded++
	}
	return loaded, nil
}
