package usecases

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/roadfinder/pkg"
	"github.com/lintang-b-s/roadfinder/pkg/concurrent"
	da "github.com/lintang-b-s/roadfinder/pkg/datastructure"
	"github.com/lintang-b-s/roadfinder/pkg/engine/planner"
	"github.com/lintang-b-s/roadfinder/pkg/geo"
	"github.com/lintang-b-s/roadfinder/pkg/guidance"
	"github.com/lintang-b-s/roadfinder/pkg/metrics"
	"github.com/lintang-b-s/roadfinder/pkg/spatialindex"
	"github.com/lintang-b-s/roadfinder/pkg/util"
	"go.uber.org/zap"
)

// PlanRequest. either MapName or Grid selects the map, MapName wins if both are set.
type PlanRequest struct {
	MapName string
	Grid    *da.OccupancyGrid

	Start, End da.GridCell
	Solver     planner.SolverKind

	// Snap moves a blocked or out of grid endpoint to the nearest free cell within SnapRadius
	// (the service default if zero).
	Snap       bool
	SnapRadius float64

	// InitialBearing is the vehicle heading before the first move, nil means the first move's own heading.
	InitialBearing *float64
}

type PlanResponse struct {
	Start    da.GridCell   `json:"start"`
	End      da.GridCell   `json:"end"`
	Path     []da.GridCell `json:"path"`
	Distance float64       `json:"distance"`
	Found    bool          `json:"found"`
	Polyline string        `json:"polyline"`
	Commands []pkg.Command `json:"commands"`
	Rendered string        `json:"rendered"`
}

// clone copies the slices so a cached response is never shared with a caller.
func (r PlanResponse) clone() PlanResponse {
	r.Path = slices.Clone(r.Path)
	r.Commands = slices.Clone(r.Commands)
	return r
}

type BatchResult struct {
	Response PlanResponse
	Err      error
}

// planCacheKey. generation is the stored map's registration number, so a plan computed on a map that
// was replaced meanwhile never answers for its replacement.
type planCacheKey struct {
	mapName    string
	generation uint64
	start, end da.GridCell
	solver     planner.SolverKind
	hasBearing bool
	bearing    float64
}

type PlanningService struct {
	log *zap.Logger

	mu         sync.RWMutex
	maps       map[string]*storedMap
	generation uint64

	cache *lru.Cache[planCacheKey, PlanResponse]

	defaultSolver planner.SolverKind
	snapRadius    float64
	numWorkers    int
}

type Config struct {
	CacheSize  int
	SnapRadius float64
	NumWorkers int
	Solver     planner.SolverKind
}

func NewPlanningService(log *zap.Logger, config Config) (*PlanningService, error) {
	if log == nil {
		log = zap.NewNop()
	}
	solver, err := planner.ParseSolverKind(string(config.Solver))
	if err != nil {
		return nil, err
	}
	cacheSize := config.CacheSize
	if cacheSize <= 0 {
		cacheSize = 1
	}
	cache, err := lru.New[planCacheKey, PlanResponse](cacheSize)
	if err != nil {
		return nil, err
	}

	return &PlanningService{
		log:           log,
		maps:          make(map[string]*storedMap),
		cache:         cache,
		defaultSolver: solver,
		snapRadius:    config.SnapRadius,
		numWorkers:    config.NumWorkers,
	}, nil
}

func (ps *PlanningService) purgeCache(mapName string) {
	for _, key := range ps.cache.Keys() {
		if key.mapName == mapName {
			ps.cache.Remove(key)
		}
	}
}

// Plan. shortest path for one request. an unreachable end is a response with Found false, not an error.
// errors carry util.ErrBadParamInput (invalid grid, endpoint or solver), util.ErrNotFound (unknown map)
// or util.ErrInternalServerError (cancelled).
func (ps *PlanningService) Plan(ctx context.Context, req PlanRequest) (PlanResponse, error) {
	startTime := time.Now()

	solver := req.Solver
	if solver == "" {
		solver = ps.defaultSolver
	}
	if _, err := planner.ParseSolverKind(string(solver)); err != nil {
		ps.recordPlan(solver, metrics.StatusError, startTime, 0)
		return PlanResponse{}, util.WrapErrorf(err, util.ErrBadParamInput, "plan")
	}

	resp, err := ps.plan(ctx, req, solver)
	if err != nil {
		ps.recordPlan(solver, metrics.StatusError, startTime, 0)
		return PlanResponse{}, err
	}

	status := metrics.StatusNotFound
	if resp.Found {
		status = metrics.StatusFound
	}
	ps.recordPlan(solver, status, startTime, len(resp.Path))
	return resp, nil
}

func (ps *PlanningService) recordPlan(solver planner.SolverKind, status string, startTime time.Time, cells int) {
	metrics.RecordPlan(string(solver), status, time.Since(startTime).Seconds(), cells)
}

func (ps *PlanningService) plan(ctx context.Context, req PlanRequest, solver planner.SolverKind) (PlanResponse, error) {
	var (
		grid    *da.OccupancyGrid
		index   SpatialIndex
		vehicle *da.VehicleSpec
		stored  *storedMap
		cached  bool
	)
	switch {
	case req.MapName != "":
		m, err := ps.getMap(req.MapName)
		if err != nil {
			return PlanResponse{}, err
		}
		grid, index, vehicle, stored, cached = m.grid, m.index, m.vehicle, m, true
	case req.Grid != nil:
		grid = req.Grid
	default:
		return PlanResponse{}, util.WrapErrorf(ErrMissingGrid, util.ErrBadParamInput, "plan")
	}

	start, end := req.Start, req.End
	if req.Snap {
		if index == nil {
			rt := spatialindex.NewRtree()
			rt.Build(grid, ps.log)
			index = rt
		}
		radius := req.SnapRadius
		if radius <= 0 {
			radius = ps.snapRadius
		}
		var err error
		if start, err = snapEndpoint(index, "start", start, radius); err != nil {
			return PlanResponse{}, err
		}
		if end, err = snapEndpoint(index, "end", end, radius); err != nil {
			return PlanResponse{}, err
		}
	}

	var key planCacheKey
	if cached {
		key = newPlanCacheKey(stored, start, end, solver, req.InitialBearing)
		if resp, ok := ps.cache.Get(key); ok {
			metrics.RecordCacheLookup(true)
			return resp.clone(), nil
		}
		metrics.RecordCacheLookup(false)
	}

	opts := []planner.Option{planner.WithSolver(solver), planner.WithLogger(ps.log)}
	if vehicle != nil {
		opts = append(opts, planner.WithVehicle(vehicle.Length, vehicle.Width))
	}
	p, err := planner.NewPathPlanner(grid, start, end, opts...)
	if err != nil {
		return PlanResponse{}, util.WrapErrorf(err, util.ErrBadParamInput, "plan %v -> %v", start, end)
	}

	result := planner.PathResult{Cells: []da.GridCell{}}
	if stored != nil && !stored.sameRegion(start, end) {
		ps.log.Debug("endpoints in different regions", zap.String("map", stored.name),
			zap.Stringer("start", start), zap.Stringer("end", end))
	} else {
		result, err = p.FindPath(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return PlanResponse{}, util.WrapErrorf(err, util.ErrInternalServerError, "plan %v -> %v", start, end)
			}
			return PlanResponse{}, util.WrapErrorf(err, util.ErrBadParamInput, "plan %v -> %v", start, end)
		}
	}

	var dirOpts []guidance.DirectionOption
	if req.InitialBearing != nil {
		dirOpts = append(dirOpts, guidance.WithInitialBearing(*req.InitialBearing))
	}
	resp := PlanResponse{
		Start:    start,
		End:      end,
		Path:     result.Cells,
		Distance: result.Distance,
		Found:    result.Found(),
		Polyline: geo.EncodePath(result.Cells),
		Commands: guidance.NewDirectionBuilder(dirOpts...).GetDirections(result.Cells),
		Rendered: result.String(),
	}

	if cached {
		ps.cache.Add(key, resp.clone())
	}
	return resp, nil
}

func newPlanCacheKey(m *storedMap, start, end da.GridCell, solver planner.SolverKind, bearing *float64) planCacheKey {
	key := planCacheKey{mapName: m.name, generation: m.generation, start: start, end: end, solver: solver}
	if bearing != nil {
		key.hasBearing, key.bearing = true, *bearing
	}
	return key
}

func snapEndpoint(index SpatialIndex, name string, cell da.GridCell, radius float64) (da.GridCell, error) {
	snapped, ok := index.Snap(cell, radius)
	if !ok {
		return da.GridCell{}, util.WrapErrorf(fmt.Errorf("%w: %w", da.ErrInvalidEndpoint, ErrNoFreeCellNear),
			util.ErrBadParamInput, "snap %s %v within %.1f cells", name, cell, radius)
	}
	return snapped, nil
}

// PlanBatch plans every request on the worker pool. results are in the order of reqs.
func (ps *PlanningService) PlanBatch(ctx context.Context, reqs []PlanRequest) []BatchResult {
	return concurrent.Run[PlanRequest, BatchResult](ctx, ps.numWorkers, reqs,
		func(ctx context.Context, req PlanRequest) BatchResult {
			resp, err := ps.Plan(ctx, req)
			return BatchResult{Response: resp, Err: err}
		})
}
