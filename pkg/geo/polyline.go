package geo

import (
	"fmt"
	"math"

	da "github.com/lintang-b-s/roadfinder/pkg/datastructure"
	"github.com/twpayne/go-polyline"
)

// EncodePath. google encoded polyline of a grid path, row as latitude and col as longitude.
func EncodePath(path []da.GridCell) string {
	coords := make([][]float64, len(path))
	for i, c := range path {
		coords[i] = []float64{float64(c.Row), float64(c.Col)}
	}
	return string(polyline.EncodeCoords(coords))
}

func DecodePath(encoded string) ([]da.GridCell, error) {
	coords, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("polyline: %d trailing bytes", len(rest))
	}
	path := make([]da.GridCell, len(coords))
	for i, c := range coords {
		path[i] = da.NewGridCell(int(math.Round(c[0])), int(math.Round(c[1])))
	}
	return path, nil
}
