package spatialindex

import (
	"math"

	da "github.com/lintang-b-s/roadfinder/pkg/datastructure"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// Rtree. point index over the free cells of a map, used to snap request endpoints onto free cells.
// points are stored as (col, row).
type Rtree struct {
	tr   *rtree.RTreeG[da.GridCell]
	grid da.OccupancyMap
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[da.GridCell]
	return &Rtree{
		tr: &tr,
	}
}

// Build. index every free cell of grid.
func (rt *Rtree) Build(grid da.OccupancyMap, log *zap.Logger) {
	rt.grid = grid
	for r := 0; r < grid.Rows(); r++ {
		for c := 0; c < grid.Cols(); c++ {
			if !grid.IsFree(r, c) {
				continue
			}
			p := [2]float64{float64(c), float64(r)}
			rt.tr.Insert(p, p, da.NewGridCell(r, c))
		}
	}
	log.Debug("R-tree spatial index built.", zap.Int("free_cells", rt.tr.Len()))
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// SearchWithinRadius. all free cells whose euclidean distance to cell is at most radius (in cells).
func (rt *Rtree) SearchWithinRadius(cell da.GridCell, radius float64) []da.GridCell {
	results := make([]da.GridCell, 0, 8)
	lower := [2]float64{float64(cell.Col) - radius, float64(cell.Row) - radius}
	upper := [2]float64{float64(cell.Col) + radius, float64(cell.Row) + radius}
	rt.tr.Search(lower, upper, func(min, max [2]float64, data da.GridCell) bool {
		if da.Le(cellDistance(cell, data), radius) {
			results = append(results, data)
		}
		return true
	})
	return results
}

// Snap. cell itself if it is free, else the nearest free cell within radius. ties are broken by row then col
// so the result does not depend on the tree layout. ok is false if no free cell is close enough.
func (rt *Rtree) Snap(cell da.GridCell, radius float64) (da.GridCell, bool) {
	if rt.grid != nil && rt.grid.IsFree(cell.Row, cell.Col) {
		return cell, true
	}

	best, found := da.GridCell{}, false
	bestDist := math.Inf(1)
	for _, cand := range rt.SearchWithinRadius(cell, radius) {
		d := cellDistance(cell, cand)
		if !found || da.Lt(d, bestDist) || (da.Eq(d, bestDist) && lessCell(cand, best)) {
			best, bestDist, found = cand, d, true
		}
	}
	return best, found
}

func cellDistance(a, b da.GridCell) float64 {
	return math.Hypot(float64(a.Row-b.Row), float64(a.Col-b.Col))
}

func lessCell(a, b da.GridCell) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}
