// Package actuation turns drive commands into output line levels.
package actuation

import (
	"sync"

	"github.com/lintang-b-s/roadfinder/pkg"
	"go.uber.org/zap"
)

// OutputLines are the command lines owned by an OutputHandler, in board order. STOP has no line of its own.
var OutputLines = []pkg.Command{pkg.GO_FORWARD, pkg.GO_LEFT, pkg.GO_RIGHT, pkg.GO_BACKWARD}

// OutputHandler owns a LineDriver from NewOutputHandler until Close.
type OutputHandler struct {
	driver LineDriver
	log    *zap.Logger

	mu        sync.Mutex
	current   pkg.Command
	closeOnce sync.Once
	closeErr  error
}

// NewOutputHandler sets up the output lines and drives all of them low.
func NewOutputHandler(driver LineDriver, log *zap.Logger) (*OutputHandler, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := driver.Setup(OutputLines); err != nil {
		return nil, err
	}
	h := &OutputHandler{
		driver:  driver,
		log:     log,
		current: pkg.STOP,
	}
	if err := driver.Write(allLow()); err != nil {
		driver.Release()
		return nil, err
	}
	return h, nil
}

func allLow() map[pkg.Command]Level {
	states := make(map[pkg.Command]Level, len(OutputLines))
	for _, line := range OutputLines {
		states[line] = LOW
	}
	return states
}

func isOutputLine(cmd pkg.Command) bool {
	for _, line := range OutputLines {
		if line == cmd {
			return true
		}
	}
	return false
}

// Update drives the line of cmd high and every other line low. STOP drives all lines low, an unknown
// command drives all lines low and is logged.
func (h *OutputHandler) Update(cmd pkg.Command) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	states := allLow()
	if isOutputLine(cmd) {
		states[cmd] = HIGH
	} else if cmd != pkg.STOP {
		h.log.Warn("invalid drive command, all lines low", zap.Uint8("command", uint8(cmd)))
	}

	if err := h.driver.Write(states); err != nil {
		return err
	}
	if isOutputLine(cmd) {
		h.current = cmd
	} else {
		h.current = pkg.STOP
	}
	return nil
}

// Run feeds commands to Update in order.
func (h *OutputHandler) Run(commands []pkg.Command) error {
	for _, cmd := range commands {
		if err := h.Update(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (h *OutputHandler) Current() pkg.Command {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Close releases the driver. calling it again is a no-op returning the first result.
func (h *OutputHandler) Close() error {
	h.closeOnce.Do(func() {
		h.closeErr = h.driver.Release()
		h.log.Debug("released output lines")
	})
	return h.closeErr
}
