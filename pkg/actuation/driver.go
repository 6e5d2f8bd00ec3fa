package actuation

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lintang-b-s/roadfinder/pkg"
)

type Level uint8

const (
	LOW Level = iota
	HIGH
)

var (
	ErrDriverReleased = errors.New("line driver already released")
	ErrUnknownLine    = errors.New("unknown output line")
)

// LineDriver. digital output bus the actuator board is wired to, one line per drive command.
type LineDriver interface {
	Setup(lines []pkg.Command) error
	Write(states map[pkg.Command]Level) error
	Release() error
}

// MemoryDriver keeps line levels in memory. used for dry runs and tests.
type MemoryDriver struct {
	mu       sync.Mutex
	lines    map[pkg.Command]Level
	writes   int
	released int
}

func NewMemoryDriver() *MemoryDriver {
	return &MemoryDriver{
		lines: make(map[pkg.Command]Level),
	}
}

func (d *MemoryDriver) Setup(lines []pkg.Command) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released > 0 {
		return ErrDriverReleased
	}
	for _, line := range lines {
		d.lines[line] = LOW
	}
	return nil
}

func (d *MemoryDriver) Write(states map[pkg.Command]Level) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released > 0 {
		return ErrDriverReleased
	}
	for line, level := range states {
		if _, ok := d.lines[line]; !ok {
			return fmt.Errorf("%w: %v", ErrUnknownLine, line)
		}
		d.lines[line] = level
	}
	d.writes++
	return nil
}

func (d *MemoryDriver) Release() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.released++
	return nil
}

// Level returns the current level of line, LOW if it was never set up.
func (d *MemoryDriver) Level(line pkg.Command) Level {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lines[line]
}

func (d *MemoryDriver) NumWrites() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writes
}

func (d *MemoryDriver) NumReleases() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.released
}
