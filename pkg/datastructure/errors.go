package datastructure

import "errors"

var (
	// ErrInvalidMap indicates an empty, non-rectangular or entirely blocked grid.
	ErrInvalidMap = errors.New("invalid map")
	// ErrInvalidEndpoint indicates a start/end cell that is out of bounds, blocked,
	// or not present among the graph vertices.
	ErrInvalidEndpoint = errors.New("invalid endpoint")
)
