package engine

import (
	"math"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/cxd309/greenlight-engine/internal/intersection"
	"github.com/cxd309/greenlight-engine/internal/road"
	"github.com/cxd309/greenlight-engine/internal/signal"
	"github.com/cxd309/greenlight-engine/internal/vehicle"
)

// DefaultTimeTick is the simulation step in seconds.
const DefaultTimeTick = 0.1

var (
	ErrRunTimeTooShort   = errors.New("run time is shorter than one tick")
	ErrRouteMismatch     = errors.New("routes do not match the signal's roads")
	ErrNegativeSpeed     = errors.New("car speed must not be negative")
	ErrNegativeCountdown = errors.New("yellow countdown must not be negative")
)

// SignalComputer chooses the signal state of the tick after slice.
type SignalComputer interface {
	NextSignal(slice TimeSlice) (signal.State, error)
}

// Simulation owns an intersection, its signal, the computer driving the
// signal, and the tick-indexed history of the run. Slices()[0] is the
// initial state.
type Simulation struct {
	intersection *intersection.Intersection
	signal       *signal.Signal
	computer     SignalComputer
	runTime      float64
	timeTick     float64
	slices       []TimeSlice
	ran          bool
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithSimulationTimeTick overrides DefaultTimeTick.
func WithSimulationTimeTick(dt float64) Option {
	return func(s *Simulation) {
		s.timeTick = dt
	}
}

// NewSimulation validates the initial slice against the intersection and
// signal. The initial slice needs exactly one route per signal road, each
// road belonging to the intersection.
func NewSimulation(in *intersection.Intersection, sig *signal.Signal, computer SignalComputer, runTime float64, initial TimeSlice, options ...Option) (*Simulation, error) {
	s := &Simulation{
		intersection: in,
		signal:       sig,
		computer:     computer,
		runTime:      runTime,
		timeTick:     DefaultTimeTick,
	}
	for _, option := range options {
		option(s)
	}
	if s.timeTick <= 0 || runTime < s.timeTick {
		return nil, errors.Wrapf(ErrRunTimeTooShort, "run time %g, tick %g", runTime, s.timeTick)
	}
	if err := s.checkRoutes(initial.Routes); err != nil {
		return nil, err
	}
	if len(initial.Signal.Colors) != len(sig.Lights()) {
		return nil, errors.Wrapf(signal.ErrStateSizeMismatch, "initial state has %d colours, signal has %d lights", len(initial.Signal.Colors), len(sig.Lights()))
	}

	initial.Time = 0
	s.slices = []TimeSlice{initial}
	return s, nil
}

func (s *Simulation) checkRoutes(routes []vehicle.RouteSlice) error {
	names := lo.Map(routes, func(rs vehicle.RouteSlice, _ int) road.ID { return rs.Road.Name() })
	if dups := lo.FindDuplicates(names); len(dups) > 0 {
		return errors.Wrapf(ErrRouteMismatch, "repeated routes %v", dups)
	}
	if len(routes) != len(s.signal.Roads()) {
		return errors.Wrapf(ErrRouteMismatch, "%d routes for %d signal roads", len(routes), len(s.signal.Roads()))
	}
	for _, name := range names {
		if _, ok := s.signal.IndexOf(name); !ok {
			return errors.Wrapf(ErrRouteMismatch, "road %q has no light", name)
		}
		if _, ok := s.intersection.Road(name); !ok {
			return errors.Wrapf(ErrRouteMismatch, "road %q is not part of the intersection", name)
		}
	}
	return nil
}

func (s *Simulation) ticks() int {
	return int(math.Round(s.runTime / s.timeTick))
}

// Run advances the simulation to its run time. Each tick asks the computer
// for the next signal state and moves every road under it. Run executes
// once; later calls return nil without doing anything. On error the history
// holds the ticks completed so far.
func (s *Simulation) Run() error {
	if s.ran {
		return nil
	}
	s.ran = true

	for i := 1; i <= s.ticks(); i++ {
		prev := s.slices[len(s.slices)-1]
		next, err := s.computer.NextSignal(prev)
		if err != nil {
			return errors.Wrapf(err, "choosing signal at t=%.2f", prev.Time)
		}
		slice, err := prev.Advanced(s.timeTick, next, s.signal)
		if err != nil {
			return errors.Wrapf(err, "advancing at t=%.2f", prev.Time)
		}
		slice.Time = float64(i) * s.timeTick
		s.slices = append(s.slices, slice)
	}
	return nil
}

func (s *Simulation) Intersection() *intersection.Intersection { return s.intersection }
func (s *Simulation) Signal() *signal.Signal                   { return s.signal }
func (s *Simulation) RunTime() float64                         { return s.runTime }
func (s *Simulation) TimeTick() float64                        { return s.timeTick }

// Slices returns a copy of the history, one slice per tick starting with the
// initial one.
func (s *Simulation) Slices() []TimeSlice {
	return append([]TimeSlice(nil), s.slices...)
}

// Len is the number of slices recorded so far.
func (s *Simulation) Len() int { return len(s.slices) }

// Slice returns slice i of the history without copying it. It panics when i
// is out of range, like indexing Slices.
func (s *Simulation) Slice(i int) TimeSlice { return s.slices[i] }
