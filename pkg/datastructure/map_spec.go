package datastructure

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// MapSpec. yaml description of a named map with an optional default request, e.g.
//
//	name: warehouse
//	rows:
//	  - "0000"
//	  - "0110"
//	start: [0, 0]
//	end: [2, 3]
//	vehicle: {length: 1.5, width: 0.5}
type MapSpec struct {
	Name    string       `yaml:"name"`
	Rows    []string     `yaml:"rows"`
	Start   []int        `yaml:"start,omitempty"`
	End     []int        `yaml:"end,omitempty"`
	Vehicle *VehicleSpec `yaml:"vehicle,omitempty"`
}

type VehicleSpec struct {
	Length float64 `yaml:"length"`
	Width  float64 `yaml:"width"`
}

func ReadMapSpec(filename string) (*MapSpec, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeMapSpec(f)
}

func DecodeMapSpec(r io.Reader) (*MapSpec, error) {
	spec := &MapSpec{}
	if err := yaml.NewDecoder(r).Decode(spec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMap, err)
	}
	return spec, nil
}

func (ms *MapSpec) Grid() (*OccupancyGrid, error) {
	return NewOccupancyGridFromStrings(ms.Rows)
}

// StartCell returns the default start cell, ok is false if the map file sets none.
func (ms *MapSpec) StartCell() (GridCell, bool, error) {
	return parseCell("start", ms.Start)
}

func (ms *MapSpec) EndCell() (GridCell, bool, error) {
	return parseCell("end", ms.End)
}

func parseCell(field string, rc []int) (GridCell, bool, error) {
	if len(rc) == 0 {
		return GridCell{}, false, nil
	}
	if len(rc) != 2 {
		return GridCell{}, false, fmt.Errorf("%w: %s must be [row, col], got %v", ErrInvalidEndpoint, field, rc)
	}
	return NewGridCell(rc[0], rc[1]), true, nil
}
