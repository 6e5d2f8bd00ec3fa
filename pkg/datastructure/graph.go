package datastructure

import (
	"math"
)

type Index uint32

const (
	INVALID_VERTEX_ID Index = math.MaxUint32
	INVALID_EDGE_ID   Index = math.MaxUint32
)

// Vertex. a free grid cell.
type Vertex struct {
	cell     GridCell
	firstOut Index // index of the first outEdge of this vertex in the flattened graph.outEdges array
	id       Index
}

func NewVertex(cell GridCell, id Index) *Vertex {
	return &Vertex{
		cell: cell,
		id:   id,
	}
}

func (v *Vertex) SetFirstOut(firstOut Index) {
	v.firstOut = firstOut
}

func (v *Vertex) GetID() Index {
	return v.id
}

func (v *Vertex) GetCell() GridCell {
	return v.cell
}

func (v *Vertex) GetFirstOut() Index {
	return v.firstOut
}

type OutEdge struct {
	edgeId Index
	head   Index
	weight float64
}

func NewOutEdge(edgeId, head Index, weight float64) *OutEdge {
	return &OutEdge{
		edgeId: edgeId,
		head:   head,
		weight: weight,
	}
}

func (e *OutEdge) GetWeight() float64 {
	return e.weight
}

func (e *OutEdge) GetHead() Index {
	return e.head
}

func (e *OutEdge) GetEdgeId() Index {
	return e.edgeId
}

// Graph. adjacency list of the free cells of an occupancy map, flattened like a compressed sparse row:
// out edges of vertex u are outEdges[vertices[u].firstOut : vertices[u+1].firstOut].
// vertices are numbered in row-major order of their cells, out edges keep the neighbor offset order they were added in.
type Graph struct {
	vertices []*Vertex
	outEdges []*OutEdge

	rows, cols  int
	cellToIndex []Index // row-major, INVALID_VERTEX_ID for blocked cells
}

// NewGraph. vertices must carry a sentinel vertex at the end whose firstOut == len(outEdges).
func NewGraph(vertices []*Vertex, outEdges []*OutEdge, rows, cols int) *Graph {
	cellToIndex := make([]Index, rows*cols)
	for i := range cellToIndex {
		cellToIndex[i] = INVALID_VERTEX_ID
	}
	for i := 0; i < len(vertices)-1; i++ {
		c := vertices[i].cell
		cellToIndex[c.Row*cols+c.Col] = vertices[i].id
	}
	return &Graph{
		vertices:    vertices,
		outEdges:    outEdges,
		rows:        rows,
		cols:        cols,
		cellToIndex: cellToIndex,
	}
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices) - 1
}

func (g *Graph) NumberOfEdges() int {
	return len(g.outEdges)
}

func (g *Graph) GetOutDegree(u Index) Index {
	return g.vertices[u+1].firstOut - g.vertices[u].firstOut
}

func (g *Graph) GetExitOffset(u Index) Index {
	return g.vertices[u].firstOut
}

func (g *Graph) GetOutEdge(e Index) *OutEdge {
	return g.outEdges[e]
}

func (g *Graph) GetVertex(u Index) *Vertex {
	return g.vertices[u]
}

func (g *Graph) GetCell(u Index) GridCell {
	return g.vertices[u].cell
}

// GetVertexIndex. reverse lookup cell -> vertex index. O(1).
func (g *Graph) GetVertexIndex(cell GridCell) (Index, bool) {
	if cell.Row < 0 || cell.Row >= g.rows || cell.Col < 0 || cell.Col >= g.cols {
		return INVALID_VERTEX_ID, false
	}
	id := g.cellToIndex[cell.Row*g.cols+cell.Col]
	return id, id != INVALID_VERTEX_ID
}

// ForOutEdgesOf iterates the out edges of u in insertion order.
func (g *Graph) ForOutEdgesOf(u Index, handle func(e *OutEdge)) {
	for e := g.vertices[u].firstOut; e < g.vertices[u+1].firstOut; e++ {
		handle(g.outEdges[e])
	}
}

// GetNeighbors returns the heads of the out edges of u in insertion order.
func (g *Graph) GetNeighbors(u Index) []Index {
	neighbors := make([]Index, 0, g.GetOutDegree(u))
	g.ForOutEdgesOf(u, func(e *OutEdge) {
		neighbors = append(neighbors, e.head)
	})
	return neighbors
}

// EdgeWeight. weight of the ordered edge (u,v). ok is false if there is no such edge.
func (g *Graph) EdgeWeight(u, v Index) (float64, bool) {
	for e := g.vertices[u].firstOut; e < g.vertices[u+1].firstOut; e++ {
		if g.outEdges[e].head == v {
			return g.outEdges[e].weight, true
		}
	}
	return 0, false
}

func (g *Graph) GetCells(path []Index) []GridCell {
	cells := make([]GridCell, len(path))
	for i, u := range path {
		cells[i] = g.vertices[u].cell
	}
	return cells
}
