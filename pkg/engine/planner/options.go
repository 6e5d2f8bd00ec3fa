package planner

import (
	"github.com/lintang-b-s/roadfinder/pkg"
	"go.uber.org/zap"
)

type Options struct {
	Solver    SolverKind
	CarLength float64
	CarWidth  float64
	Logger    *zap.Logger
}

type Option func(*Options)

func DefaultOptions() Options {
	return Options{
		Solver:    SolverBellmanFord,
		CarLength: pkg.DEFAULT_CAR_LENGTH,
		CarWidth:  pkg.DEFAULT_CAR_WIDTH,
		Logger:    zap.NewNop(),
	}
}

func WithSolver(kind SolverKind) Option {
	return func(o *Options) {
		o.Solver = kind
	}
}

// WithVehicle records the vehicle footprint. it is kept for clearance checks and does not change the search.
func WithVehicle(length, width float64) Option {
	return func(o *Options) {
		o.CarLength = length
		o.CarWidth = width
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(o *Options) {
		if log != nil {
			o.Logger = log
		}
	}
}
