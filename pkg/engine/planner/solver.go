package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/lintang-b-s/roadfinder/pkg"
	da "github.com/lintang-b-s/roadfinder/pkg/datastructure"
)

type SolverKind string

const (
	SolverBellmanFord SolverKind = "bellman-ford"
	SolverDijkstra    SolverKind = "dijkstra"
)

var ErrUnknownSolver = errors.New("unknown shortest path solver")

func ParseSolverKind(s string) (SolverKind, error) {
	switch SolverKind(s) {
	case "", SolverBellmanFord:
		return SolverBellmanFord, nil
	case SolverDijkstra:
		return SolverDijkstra, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSolver, s)
	}
}

// Solver computes single-source shortest paths over a built graph.
type Solver interface {
	ShortestPath(ctx context.Context, s da.Index) (*ShortestPathTree, error)
}

func NewSolver(kind SolverKind, graph *da.Graph) (Solver, error) {
	switch kind {
	case SolverBellmanFord:
		return NewBellmanFord(graph), nil
	case SolverDijkstra:
		return NewDijkstra(graph), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSolver, kind)
	}
}

// ShortestPathTree. distances from source (INF_WEIGHT if unreachable) and predecessors
// (INVALID_VERTEX_ID for the source and unreachable vertices).
type ShortestPathTree struct {
	source da.Index
	dist   []float64
	pred   []da.Index
}

func newShortestPathTree(s da.Index, n int) *ShortestPathTree {
	dist := make([]float64, n)
	pred := make([]da.Index, n)
	for i := 0; i < n; i++ {
		dist[i] = pkg.INF_WEIGHT
		pred[i] = da.INVALID_VERTEX_ID
	}
	dist[s] = 0
	return &ShortestPathTree{
		source: s,
		dist:   dist,
		pred:   pred,
	}
}

func (t *ShortestPathTree) GetSource() da.Index {
	return t.source
}

func (t *ShortestPathTree) GetDistance(v da.Index) float64 {
	return t.dist[v]
}

func (t *ShortestPathTree) GetPredecessor(v da.Index) da.Index {
	return t.pred[v]
}

func (t *ShortestPathTree) Reachable(v da.Index) bool {
	return t.dist[v] != pkg.INF_WEIGHT
}

func (t *ShortestPathTree) Distances() []float64 {
	return t.dist
}

func (t *ShortestPathTree) Predecessors() []da.Index {
	return t.pred
}

// PathTo reconstructs the shortest path from the source to v, empty if v is unreachable.
func (t *ShortestPathTree) PathTo(v da.Index) []da.Index {
	return ReconstructPath(t.pred, t.source, v)
}
