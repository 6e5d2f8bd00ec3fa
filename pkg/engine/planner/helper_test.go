package planner

import (
	"math/rand"
	"testing"

	da "github.com/lintang-b-s/roadfinder/pkg/datastructure"
	"github.com/stretchr/testify/require"
)

func newGrid(t *testing.T, values [][]int) *da.OccupancyGrid {
	t.Helper()
	grid, err := da.NewOccupancyGrid(values)
	require.NoError(t, err)
	return grid
}

func cells(rc ...[2]int) []da.GridCell {
	res := make([]da.GridCell, len(rc))
	for i, p := range rc {
		res[i] = da.NewGridCell(p[0], p[1])
	}
	return res
}

// randomGrid. rows x cols grid with roughly blockedRatio blocked cells, (0,0) always free.
func randomGrid(t *testing.T, rng *rand.Rand, rows, cols int, blockedRatio float64) *da.OccupancyGrid {
	t.Helper()
	values := make([][]int, rows)
	for r := 0; r < rows; r++ {
		values[r] = make([]int, cols)
		for c := 0; c < cols; c++ {
			if rng.Float64() < blockedRatio {
				values[r][c] = 1
			}
		}
	}
	values[0][0] = 0
	return newGrid(t, values)
}

func edgeWeightSum(t *testing.T, graph *da.Graph, path []da.Index) float64 {
	t.Helper()
	sum := 0.0
	for i := 1; i < len(path); i++ {
		w, ok := graph.EdgeWeight(path[i-1], path[i])
		require.Truef(t, ok, "no edge %d -> %d", path[i-1], path[i])
		sum += w
	}
	return sum
}
