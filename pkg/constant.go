package pkg

import "math"

// enum of drive command, values follow the output line numbering of the actuator board
type Command uint8

const (
	GO_FORWARD Command = iota + 1
	GO_LEFT
	GO_RIGHT
	GO_BACKWARD
	STOP
)

func (c Command) String() string {
	switch c {
	case GO_FORWARD:
		return "forward"
	case GO_LEFT:
		return "left"
	case GO_RIGHT:
		return "right"
	case GO_BACKWARD:
		return "backward"
	case STOP:
		return "stop"
	default:
		return "unknown"
	}
}

func GetCommand(name string) Command {
	switch name {
	case "forward":
		return GO_FORWARD
	case "left":
		return GO_LEFT
	case "right":
		return GO_RIGHT
	case "backward":
		return GO_BACKWARD
	case "stop":
		return STOP
	default:
		return 0
	}
}

func (c Command) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Command) UnmarshalText(text []byte) error {
	*c = GetCommand(string(text))
	return nil
}

var (
	INF_WEIGHT = math.Inf(1)
)

const (
	AXIS_ALIGNED_WEIGHT float64 = 1.0
	DIAGONAL_WEIGHT     float64 = math.Sqrt2

	// cells with this value are free, everything else is blocked
	FREE_CELL = 0

	DEFAULT_CAR_LENGTH = 1.5
	DEFAULT_CAR_WIDTH  = 0.5
)

const (
	DEBUG = false
)
