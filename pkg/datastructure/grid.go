package datastructure

import (
	"fmt"
	"strings"

	"github.com/lintang-b-s/roadfinder/pkg"
)

// OccupancyMap is the read capability the planner needs from a map: its dimensions and
// whether a cell can be traversed.
type OccupancyMap interface {
	Rows() int
	Cols() int
	IsFree(row, col int) bool
}

type GridCell struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

func NewGridCell(row, col int) GridCell {
	return GridCell{Row: row, Col: col}
}

func (c GridCell) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

func (c GridCell) Add(dRow, dCol int) GridCell {
	return GridCell{Row: c.Row + dRow, Col: c.Col + dCol}
}

// OccupancyGrid. rectangular free/blocked map. immutable after construction, so it can be
// shared by any number of planners without locking.
type OccupancyGrid struct {
	rows, cols int
	free       []bool // row-major
	numFree    int
}

// NewOccupancyGrid builds a grid from 0/1 values (0 = free, anything else = blocked).
// values is deep-copied.
func NewOccupancyGrid(values [][]int) (*OccupancyGrid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, fmt.Errorf("%w: grid must have at least one row and one column", ErrInvalidMap)
	}
	rows, cols := len(values), len(values[0])
	free := make([]bool, 0, rows*cols)
	numFree := 0
	for r, row := range values {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidMap, r, len(row), cols)
		}
		for _, v := range row {
			isFree := v == pkg.FREE_CELL
			if isFree {
				numFree++
			}
			free = append(free, isFree)
		}
	}

	return &OccupancyGrid{
		rows:    rows,
		cols:    cols,
		free:    free,
		numFree: numFree,
	}, nil
}

// NewOccupancyGridFromStrings builds a grid from rows of '0'/'1' characters. whitespace is ignored.
func NewOccupancyGridFromStrings(lines []string) (*OccupancyGrid, error) {
	values := make([][]int, 0, len(lines))
	for i, line := range lines {
		row := make([]int, 0, len(line))
		for _, ch := range line {
			switch ch {
			case '0':
				row = append(row, 0)
			case '1':
				row = append(row, 1)
			case ' ', '\t', '\r':
			default:
				return nil, fmt.Errorf("%w: unexpected character %q in row %d", ErrInvalidMap, ch, i)
			}
		}
		values = append(values, row)
	}
	return NewOccupancyGrid(values)
}

func (g *OccupancyGrid) Rows() int {
	return g.rows
}

func (g *OccupancyGrid) Cols() int {
	return g.cols
}

func (g *OccupancyGrid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// IsFree reports whether (row, col) is inside the grid and free.
func (g *OccupancyGrid) IsFree(row, col int) bool {
	if !g.InBounds(row, col) {
		return false
	}
	return g.free[row*g.cols+col]
}

func (g *OccupancyGrid) NumberOfFreeCells() int {
	return g.numFree
}

// Values returns a fresh 0/1 copy of the grid.
func (g *OccupancyGrid) Values() [][]int {
	values := make([][]int, g.rows)
	for r := 0; r < g.rows; r++ {
		values[r] = make([]int, g.cols)
		for c := 0; c < g.cols; c++ {
			if !g.free[r*g.cols+c] {
				values[r][c] = 1
			}
		}
	}
	return values
}

func (g *OccupancyGrid) String() string {
	var sb strings.Builder
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.free[r*g.cols+c] {
				sb.WriteByte('0')
			} else {
				sb.WriteByte('1')
			}
		}
		if r != g.rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// InMapBounds reports whether cell lies inside any OccupancyMap.
func InMapBounds(m OccupancyMap, cell GridCell) bool {
	return cell.Row >= 0 && cell.Row < m.Rows() && cell.Col >= 0 && cell.Col < m.Cols()
}
