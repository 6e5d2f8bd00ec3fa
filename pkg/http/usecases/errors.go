package usecases

import "errors"

var (
	ErrMapNotFound    = errors.New("map not found")
	ErrMissingGrid    = errors.New("request names no map and carries no grid")
	ErrEmptyMapName   = errors.New("map name must not be empty")
	ErrNoFreeCellNear = errors.New("no free cell within snap radius")
)
