// Package planner finds shortest 8-connected paths between two free cells of an occupancy grid.
//
// Each FindPath call builds the graph of free cells, runs the configured single-source shortest path
// solver (Bellman-Ford by default) from the start cell and walks the predecessors back from the end cell.
// Nothing is cached between calls.
//
// Errors:
//
//   - datastructure.ErrInvalidMap: nil, empty or entirely blocked grid.
//   - datastructure.ErrInvalidEndpoint: start/end out of bounds or on a blocked cell.
//   - ErrUnknownSolver: unsupported WithSolver value.
//
// An unreachable end cell is not an error, FindPath returns an empty PathResult.
package planner

import (
	"context"
	"fmt"
	"strings"
	"sync"

	da "github.com/lintang-b-s/roadfinder/pkg/datastructure"
	"github.com/lintang-b-s/roadfinder/pkg/util"
	"go.uber.org/zap"
)

type PathResult struct {
	Cells    []da.GridCell
	Distance float64
}

func (pr PathResult) Found() bool {
	return len(pr.Cells) > 0
}

func (pr PathResult) String() string {
	return renderPath(pr.Cells)
}

type PathPlanner struct {
	grid       da.OccupancyMap
	start, end da.GridCell
	options    Options

	mu   sync.Mutex
	path []da.GridCell
}

// NewPathPlanner validates grid, start and end. the grid must not change while the planner is in use.
func NewPathPlanner(grid da.OccupancyMap, start, end da.GridCell, opts ...Option) (*PathPlanner, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	kind, err := ParseSolverKind(string(cfg.Solver))
	if err != nil {
		return nil, err
	}
	cfg.Solver = kind

	if err := validateMap(grid); err != nil {
		return nil, err
	}
	if err := validateEndpoint(grid, "start", start); err != nil {
		return nil, err
	}
	if err := validateEndpoint(grid, "end", end); err != nil {
		return nil, err
	}

	return &PathPlanner{
		grid:    grid,
		start:   start,
		end:     end,
		options: cfg,
		path:    make([]da.GridCell, 0),
	}, nil
}

func validateMap(grid da.OccupancyMap) error {
	if grid == nil {
		return fmt.Errorf("%w: grid is nil", da.ErrInvalidMap)
	}
	rows, cols := grid.Rows(), grid.Cols()
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: grid must have at least one row and one column", da.ErrInvalidMap)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if grid.IsFree(r, c) {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: grid has no free cells", da.ErrInvalidMap)
}

func validateEndpoint(grid da.OccupancyMap, name string, cell da.GridCell) error {
	if !da.InMapBounds(grid, cell) {
		return fmt.Errorf("%w: %s %v is outside the %dx%d grid", da.ErrInvalidEndpoint, name, cell,
			grid.Rows(), grid.Cols())
	}
	if !grid.IsFree(cell.Row, cell.Col) {
		return fmt.Errorf("%w: %s %v is blocked", da.ErrInvalidEndpoint, name, cell)
	}
	return nil
}

// FindPath. shortest path from start to end inclusive. returns an empty result with a nil error if end is
// unreachable. the only error on a validated planner is ctx cancellation.
func (p *PathPlanner) FindPath(ctx context.Context) (PathResult, error) {
	log := p.options.Logger

	graph, err := BuildGraph(p.grid)
	if err != nil {
		return PathResult{}, err
	}
	log.Debug("built grid graph", zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()))

	s, ok := graph.GetVertexIndex(p.start)
	util.AssertPanic(ok, fmt.Sprintf("planner: validated start %v is not a graph vertex", p.start))
	t, ok := graph.GetVertexIndex(p.end)
	util.AssertPanic(ok, fmt.Sprintf("planner: validated end %v is not a graph vertex", p.end))

	solver, err := NewSolver(p.options.Solver, graph)
	if err != nil {
		return PathResult{}, err
	}
	tree, err := solver.ShortestPath(ctx, s)
	if err != nil {
		return PathResult{}, err
	}

	result := PathResult{Cells: []da.GridCell{}}
	if tree.Reachable(t) {
		pathIndices := tree.PathTo(t)
		if len(pathIndices) > 0 {
			result.Cells = graph.GetCells(pathIndices)
			result.Distance = tree.GetDistance(t)
		}
	}

	if result.Found() {
		log.Debug("path found", zap.Stringer("start", p.start), zap.Stringer("end", p.end),
			zap.Int("cells", len(result.Cells)), zap.Float64("distance", result.Distance))
	} else {
		log.Debug("no path found", zap.Stringer("start", p.start), zap.Stringer("end", p.end))
	}

	p.mu.Lock()
	p.path = result.Cells
	p.mu.Unlock()

	return result, nil
}

func (p *PathPlanner) GetStart() da.GridCell {
	return p.start
}

func (p *PathPlanner) GetEnd() da.GridCell {
	return p.end
}

func (p *PathPlanner) GetVehicle() (length, width float64) {
	return p.options.CarLength, p.options.CarWidth
}

func (p *PathPlanner) GetSolver() SolverKind {
	return p.options.Solver
}

// String renders the path of the last FindPath call, e.g. "[(0, 0) -> (1, 1)]".
func (p *PathPlanner) String() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return renderPath(p.path)
}

func renderPath(cells []da.GridCell) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " -> ") + "]"
}
