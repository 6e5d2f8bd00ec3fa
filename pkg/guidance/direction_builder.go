package guidance

import (
	"github.com/lintang-b-s/roadfinder/pkg"
	da "github.com/lintang-b-s/roadfinder/pkg/datastructure"
	"go.uber.org/zap"
)

// Instruction. one move of a path and the command that starts it.
type Instruction struct {
	Command   pkg.Command `json:"command"`
	From      da.GridCell `json:"from"`
	To        da.GridCell `json:"to"`
	Bearing   float64     `json:"bearing"`
	TurnAngle float64     `json:"turn_angle"`
}

type DirectionBuilder struct {
	initialBearing    float64
	hasInitialBearing bool
	log               *zap.Logger
}

type DirectionOption func(*DirectionBuilder)

// WithInitialBearing sets the heading of the vehicle before the first move, in degrees clockwise from north.
func WithInitialBearing(bearing float64) DirectionOption {
	return func(db *DirectionBuilder) {
		db.initialBearing = bearing
		db.hasInitialBearing = true
	}
}

func WithLogger(log *zap.Logger) DirectionOption {
	return func(db *DirectionBuilder) {
		if log != nil {
			db.log = log
		}
	}
}

func NewDirectionBuilder(opts ...DirectionOption) *DirectionBuilder {
	db := &DirectionBuilder{log: zap.NewNop()}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// GetInstructions. one instruction per move of path. without an initial bearing the first move is GO_FORWARD.
func (db *DirectionBuilder) GetInstructions(path []da.GridCell) []Instruction {
	if len(path) < 2 {
		return []Instruction{}
	}

	instructions := make([]Instruction, 0, len(path)-1)
	prevBearing := computeBearing(path[0], path[1])
	if db.hasInitialBearing {
		prevBearing = db.initialBearing
	}

	for i := 1; i < len(path); i++ {
		bearing := computeBearing(path[i-1], path[i])
		delta := computeDeltaBearing(prevBearing, bearing)
		instructions = append(instructions, Instruction{
			Command:   getTurnCommand(delta),
			From:      path[i-1],
			To:        path[i],
			Bearing:   bearing,
			TurnAngle: delta,
		})
		prevBearing = bearing
	}
	return instructions
}

// GetDirections. the command sequence for path, always terminated by STOP.
func (db *DirectionBuilder) GetDirections(path []da.GridCell) []pkg.Command {
	instructions := db.GetInstructions(path)
	commands := make([]pkg.Command, 0, len(instructions)+1)
	for _, ins := range instructions {
		commands = append(commands, ins.Command)
	}
	commands = append(commands, pkg.STOP)

	db.log.Debug("built directions", zap.Int("moves", len(instructions)), zap.Int("commands", len(commands)))
	return commands
}
