package planner

import (
	"context"

	da "github.com/lintang-b-s/roadfinder/pkg/datastructure"
	"github.com/lintang-b-s/roadfinder/pkg/util"
)

// BellmanFord. classic Bellman-Ford relaxation. every edge weight of a grid graph is positive, so there is
// no negative cycle pass.
type BellmanFord struct {
	graph *da.Graph

	numPasses      int
	numRelaxations int
}

func NewBellmanFord(graph *da.Graph) *BellmanFord {
	return &BellmanFord{
		graph: graph,
	}
}

// ShortestPath. single-source shortest paths from s to all other vertices.
// runs at most |V|-1 passes over the out edges of every vertex in index order, relaxing in place.
// a pass that improves nothing has reached the fixpoint, so the remaining passes are skipped.
// ctx is checked once per pass. O(V*E).
func (bf *BellmanFord) ShortestPath(ctx context.Context, s da.Index) (*ShortestPathTree, error) {
	n := bf.graph.NumberOfVertices()
	tree := newShortestPathTree(s, n)
	dist, pred := tree.dist, tree.pred

	bf.numPasses, bf.numRelaxations = 0, 0

	for pass := 0; pass < n-1; pass++ {
		if util.StopConcurrentOperation(ctx) {
			return nil, ctx.Err()
		}
		bf.numPasses++

		relaxed := false
		for u := da.Index(0); u < da.Index(n); u++ {
			du := dist[u]
			bf.graph.ForOutEdgesOf(u, func(e *da.OutEdge) {
				v := e.GetHead()
				newDist := du + e.GetWeight()
				if newDist < dist[v] {
					dist[v] = newDist
					pred[v] = u
					relaxed = true
					bf.numRelaxations++
				}
			})
		}

		if !relaxed {
			break
		}
	}

	return tree, nil
}

func (bf *BellmanFord) GetNumPasses() int {
	return bf.numPasses
}

func (bf *BellmanFord) GetNumRelaxations() int {
	return bf.numRelaxations
}
