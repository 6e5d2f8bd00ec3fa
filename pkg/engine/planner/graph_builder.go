package planner

import (
	"fmt"

	"github.com/lintang-b-s/roadfinder/pkg"
	da "github.com/lintang-b-s/roadfinder/pkg/datastructure"
	"github.com/lintang-b-s/roadfinder/pkg/util"
)

// neighborOffsets. (dRow, dCol) in the order out edges are added: axis-aligned moves first, then diagonals.
// the order decides which of several equal-cost paths wins, do not reorder.
var neighborOffsets = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// BuildGraph. build the 8-connected graph over the free cells of m.
// vertices are numbered in row-major order. a diagonal move only needs its target cell to be free,
// the two orthogonal cells it passes between may be blocked.
func BuildGraph(m da.OccupancyMap) (*da.Graph, error) {
	rows, cols := m.Rows(), m.Cols()
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: grid must have at least one row and one column", da.ErrInvalidMap)
	}

	vertices := make([]*da.Vertex, 0, rows*cols)
	cellToIndex := make([]da.Index, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if !m.IsFree(r, c) {
				cellToIndex[r*cols+c] = da.INVALID_VERTEX_ID
				continue
			}
			id := da.Index(len(vertices))
			cellToIndex[r*cols+c] = id
			vertices = append(vertices, da.NewVertex(da.NewGridCell(r, c), id))
		}
	}

	if len(vertices) == 0 {
		return nil, fmt.Errorf("%w: grid has no free cells", da.ErrInvalidMap)
	}

	outEdges := make([]*da.OutEdge, 0, len(vertices)*len(neighborOffsets))
	for _, v := range vertices {
		v.SetFirstOut(da.Index(len(outEdges)))
		cell := v.GetCell()
		for _, d := range neighborOffsets {
			nr, nc := cell.Row+d[0], cell.Col+d[1]
			if nr < 0 || nr >= rows || nc < 0 || nc >= cols || !m.IsFree(nr, nc) {
				continue
			}
			head := cellToIndex[nr*cols+nc]
			if head == da.INVALID_VERTEX_ID {
				continue
			}

			outEdges = append(outEdges, da.NewOutEdge(da.Index(len(outEdges)), head, moveWeight(d[0], d[1])))
		}
	}

	// sentinel, so out edges of the last vertex end at len(outEdges)
	sentinel := da.NewVertex(da.GridCell{}, da.INVALID_VERTEX_ID)
	sentinel.SetFirstOut(da.Index(len(outEdges)))
	vertices = append(vertices, sentinel)

	return da.NewGraph(vertices, outEdges, rows, cols), nil
}

func moveWeight(dRow, dCol int) float64 {
	if util.Abs(dRow)+util.Abs(dCol) == 1 {
		return pkg.AXIS_ALIGNED_WEIGHT
	}
	return pkg.DIAGONAL_WEIGHT
}

// PathLength. sum of move weights along consecutive cells, accumulated from the first cell.
func PathLength(cells []da.GridCell) float64 {
	length := 0.0
	for i := 1; i < len(cells); i++ {
		length += moveWeight(cells[i].Row-cells[i-1].Row, cells[i].Col-cells[i-1].Col)
	}
	return length
}
