package planner

import (
	"context"

	da "github.com/lintang-b-s/roadfinder/pkg/datastructure"
	"github.com/lintang-b-s/roadfinder/pkg/util"
)

const dijkstraCancelCheckInterval = 1024

// Dijkstra. priority queue alternative to BellmanFord with the same distances. the heap breaks rank ties
// by vertex index and a predecessor only changes on a strictly shorter distance, so results are
// deterministic, but when several paths share the shortest distance the one returned can differ from
// BellmanFord's, whose predecessors follow its in-place relaxation order.
type Dijkstra struct {
	graph *da.Graph
	pq    *da.MinHeap[da.Index]

	numSettledNodes int
}

func NewDijkstra(graph *da.Graph) *Dijkstra {
	return &Dijkstra{
		graph: graph,
		pq:    da.NewFourAryHeap[da.Index](),
	}
}

// ShortestPath. single-source shortest paths from s to all other vertices. O((V+E) log V).
func (us *Dijkstra) ShortestPath(ctx context.Context, s da.Index) (*ShortestPathTree, error) {
	n := us.graph.NumberOfVertices()
	tree := newShortestPathTree(s, n)
	dist, pred := tree.dist, tree.pred

	heapNodes := make([]*da.PriorityQueueNode[da.Index], n)
	settled := make([]bool, n)

	us.pq.Preallocate(n)
	us.numSettledNodes = 0

	heapNodes[s] = da.NewPriorityQueueNode(0, int(s), s)
	us.pq.Insert(heapNodes[s])

	for !us.pq.IsEmpty() {
		if us.numSettledNodes%dijkstraCancelCheckInterval == 0 && util.StopConcurrentOperation(ctx) {
			return nil, ctx.Err()
		}

		node, err := us.pq.ExtractMin()
		if err != nil {
			return nil, err
		}
		u := node.GetItem()
		settled[u] = true
		us.numSettledNodes++

		du := dist[u]
		us.graph.ForOutEdgesOf(u, func(e *da.OutEdge) {
			v := e.GetHead()
			if settled[v] {
				return
			}
			newDist := du + e.GetWeight()
			if !(newDist < dist[v]) {
				return
			}

			dist[v] = newDist
			pred[v] = u
			if heapNodes[v] == nil {
				heapNodes[v] = da.NewPriorityQueueNode(newDist, int(v), v)
				us.pq.Insert(heapNodes[v])
				return
			}
			// v is labelled but not settled, so it is still in the heap
			err := us.pq.DecreaseKey(heapNodes[v], newDist)
			util.AssertPanic(err == nil, "dijkstra: decrease key of a vertex that is not in the heap")
		})
	}

	return tree, nil
}

func (us *Dijkstra) GetNumSettledNodes() int {
	return us.numSettledNodes
}
