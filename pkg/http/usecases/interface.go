package usecases

import (
	da "github.com/lintang-b-s/roadfinder/pkg/datastructure"
)

type SpatialIndex interface {
	Snap(cell da.GridCell, radius float64) (da.GridCell, bool)
	Len() int
}
