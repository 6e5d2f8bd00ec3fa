package datastructure

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/roadfinder/pkg/util"
)

// MAX_GRID_CELLS bounds rows*cols of a decoded map file.
const MAX_GRID_CELLS = 1 << 24

// grid file format:
//
//	<rows> <cols>
//	<cols characters of 0/1>   (rows times)
//
// files ending in .bz2 are bzip2 compressed.

func (g *OccupancyGrid) WriteGrid(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if !strings.HasSuffix(filename, ".bz2") {
		return g.Encode(f)
	}

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	if err := g.Encode(bz); err != nil {
		bz.Close()
		return err
	}
	return bz.Close()
}

func (g *OccupancyGrid) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", g.rows, g.cols)
	fmt.Fprintf(bw, "%s\n", g.String())
	return bw.Flush()
}

func ReadGrid(filename string) (*OccupancyGrid, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !strings.HasSuffix(filename, ".bz2") {
		return DecodeGrid(f)
	}

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}
	defer bz.Close()
	return DecodeGrid(bz)
}

func DecodeGrid(r io.Reader) (*OccupancyGrid, error) {
	br := bufio.NewReader(r)

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, fmt.Errorf("%w: missing header: %v", ErrInvalidMap, err)
	}
	tokens := strings.Fields(line)
	if len(tokens) != 2 {
		return nil, fmt.Errorf("%w: header must be \"<rows> <cols>\", got %q", ErrInvalidMap, line)
	}
	rows, err := strconv.Atoi(tokens[0])
	if err != nil {
		return nil, fmt.Errorf("%w: rows: %v", ErrInvalidMap, err)
	}
	cols, err := strconv.Atoi(tokens[1])
	if err != nil {
		return nil, fmt.Errorf("%w: cols: %v", ErrInvalidMap, err)
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: grid must have at least one row and one column", ErrInvalidMap)
	}
	if rows > MAX_GRID_CELLS/cols {
		return nil, fmt.Errorf("%w: %dx%d grid exceeds %d cells", ErrInvalidMap, rows, cols, MAX_GRID_CELLS)
	}

	lines := make([]string, 0, rows)
	for i := 0; i < rows; i++ {
		line, err = util.ReadLine(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidMap, rows, i)
			}
			return nil, err
		}
		lines = append(lines, line)
	}
	for {
		line, err = util.ReadLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(line) != "" {
			return nil, fmt.Errorf("%w: rows after the %d declared in the header", ErrInvalidMap, rows)
		}
	}

	grid, err := NewOccupancyGridFromStrings(lines)
	if err != nil {
		return nil, err
	}
	if grid.Cols() != cols {
		return nil, fmt.Errorf("%w: header says %d columns, rows have %d", ErrInvalidMap, cols, grid.Cols())
	}
	return grid, nil
}
