// Package engine implements the signalised-intersection simulation loop and
// the controllers that drive its signal.
//
// The simulation advances in fixed ticks. Each tick has two passes:
//
//  1. Signal pass - the SignalComputer looks at the previous TimeSlice and
//     returns the signal state for the new tick. MaxFwdAccComputer does this
//     by simulating every legal phase choice forward and keeping the one
//     that gains the most total car speed.
//
//  2. Motion pass - every road's cars advance, lead car first, under the
//     colour the new signal state shows that road.
package engine

import (
	"cmp"
	"encoding/json"
	"slices"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/cxd309/greenlight-engine/internal/intersection"
	"github.com/cxd309/greenlight-engine/internal/road"
	"github.com/cxd309/greenlight-engine/internal/signal"
	"github.com/cxd309/greenlight-engine/internal/vehicle"
)

// withDefaults fills the meta fields the input left at zero.
func (m SimulationMeta) withDefaults() SimulationMeta {
	if m.SimulationID == "" {
		m.SimulationID = uuid.NewString()
	}
	if m.TimeStep <= 0 {
		m.TimeStep = DefaultTimeTick
	}
	if m.ForwardLookingTime <= 0 {
		m.ForwardLookingTime = DefaultForwardLookingTime
	}
	return m
}

// NewSimulationFromInput builds the roads, intersection, signal, computer
// and initial slice described by input. The returned meta has its defaults
// filled in.
func NewSimulationFromInput(input SimulationInput) (*Simulation, SimulationMeta, error) {
	meta := input.Meta.withDefaults()

	roads := make([]*road.Road, 0, len(input.Intersection.Roads))
	for _, d := range input.Intersection.Roads {
		r, err := road.FromData(d)
		if err != nil {
			return nil, meta, errors.Wrapf(err, "building road %q", d.Name)
		}
		roads = append(roads, r)
	}
	in, err := intersection.New(input.Intersection.Center, roads, input.Intersection.Bounds)
	if err != nil {
		return nil, meta, errors.Wrap(err, "building intersection")
	}

	sig, err := newSignal(in, input.Signal)
	if err != nil {
		return nil, meta, errors.Wrap(err, "building signal")
	}

	initial, err := initialSlice(sig, input.Signal, input.Routes)
	if err != nil {
		return nil, meta, err
	}

	var computer SignalComputer
	switch input.Computer.Model {
	case "", MaxFwdAccModelName:
		computer = NewMaxFwdAccComputer(sig,
			WithTimeTick(meta.TimeStep),
			WithForwardLookingTime(meta.ForwardLookingTime),
			WithParallelBranches(meta.ParallelLookahead),
		)
	case FixedCycleModelName:
		var greenTime float64
		if input.Computer.FixedCycle != nil {
			greenTime = input.Computer.FixedCycle.GreenTime
		}
		computer = NewFixedCycleComputer(sig, greenTime, meta.TimeStep)
	default:
		return nil, meta, errors.Wrapf(ErrUnknownComputer, "%q", input.Computer.Model)
	}

	sim, err := NewSimulation(in, sig, computer, meta.RunTime, initial, WithSimulationTimeTick(meta.TimeStep))
	if err != nil {
		return nil, meta, err
	}
	return sim, meta, nil
}

func newSignal(in *intersection.Intersection, d SignalData) (*signal.Signal, error) {
	roads := make([]*road.Road, 0, len(d.Lights))
	lights := make([]signal.Light, 0, len(d.Lights))
	for _, l := range d.Lights {
		r, ok := in.Road(l.Road)
		if !ok {
			return nil, errors.Wrapf(signal.ErrUnknownRoad, "light for road %q", l.Road)
		}
		roads = append(roads, r)
		lights = append(lights, signal.Light{Location: l.Location})
	}
	return signal.New(roads, lights, d.Combinations)
}

// initialSlice orders every road's cars lead first. Signal roads without a
// route start empty.
func initialSlice(sig *signal.Signal, d SignalData, routes []RouteData) (TimeSlice, error) {
	if d.YellowCountdown < 0 {
		return TimeSlice{}, errors.Wrapf(ErrNegativeCountdown, "yellow countdown %f", d.YellowCountdown)
	}
	if c, ok := lo.Find(d.InitialColors, func(c signal.LightColor) bool { return !c.Valid() }); ok {
		return TimeSlice{}, errors.Wrapf(signal.ErrUnknownColor, "initial colour %q", c)
	}
	state := sig.AllRed()
	if len(d.InitialColors) > 0 {
		state = signal.NewState(d.InitialColors, d.YellowCountdown)
	}

	byRoad := lo.KeyBy(routes, func(rd RouteData) road.ID { return rd.Road })
	for id := range byRoad {
		if _, ok := sig.IndexOf(id); !ok {
			return TimeSlice{}, errors.Wrapf(ErrRouteMismatch, "road %q has no light", id)
		}
	}
	if len(byRoad) != len(routes) {
		return TimeSlice{}, errors.Wrap(ErrRouteMismatch, "roads listed more than once")
	}

	slice := TimeSlice{Signal: state}
	for _, r := range sig.Roads() {
		cars := append([]vehicle.Car{}, byRoad[r.Name()].Cars...)
		if car, ok := lo.Find(cars, func(c vehicle.Car) bool { return c.Speed < 0 }); ok {
			return TimeSlice{}, errors.Wrapf(ErrNegativeSpeed, "road %q car at %f has speed %f", r.Name(), car.Position, car.Speed)
		}
		slices.SortStableFunc(cars, func(a, b vehicle.Car) int { return cmp.Compare(b.Position, a.Position) })
		slice.Routes = append(slice.Routes, vehicle.RouteSlice{Road: r, Cars: cars})
	}
	return slice, nil
}

// Log renders the simulation history.
func Log(sim *Simulation, meta SimulationMeta) SimulationLog {
	rows := lo.Map(sim.Slices(), func(ts TimeSlice, _ int) SimulationLogRow {
		return SimulationLogRow{
			Timestamp: ts.Time,
			Signal:    ts.Signal,
			Routes: lo.Map(ts.Routes, func(rs vehicle.RouteSlice, _ int) RouteData {
				return RouteData{Road: rs.Road.Name(), Cars: append([]vehicle.Car{}, rs.Cars...)}
			}),
			TotalSpeed: ts.TotalSpeed(),
		}
	})
	return SimulationLog{Meta: meta, Output: rows}
}

// RunJSON is the primary entry point for the CLI and WASM targets.
// It accepts a JSON-encoded SimulationInput, runs the simulation, and returns a
// JSON-encoded SimulationLog.
func RunJSON(jsonInput string) (string, error) {
	var input SimulationInput
	if err := json.Unmarshal([]byte(jsonInput), &input); err != nil {
		return "", errors.Wrap(err, "invalid input JSON")
	}

	sim, meta, err := NewSimulationFromInput(input)
	if err != nil {
		return "", err
	}
	if err := sim.Run(); err != nil {
		return "", err
	}

	out, err := json.Marshal(Log(sim, meta))
	if err != nil {
		return "", errors.Wrap(err, "marshaling output")
	}
	return string(out), nil
}
