// Package signal models a traffic signal: the lights bound to each
// controlled road, the catalog of road combinations allowed to move at the
// same time, and the phase-transition rules between signal states.
//
// A transition is only chosen from a stable state (no yellow showing). The
// per-road rule, old moving -> new moving, is:
//
//	moving  -> moving   green (continues)
//	moving  -> stopped  yellow (clearing)
//	stopped -> moving   waiting red (goes green once the yellows clear)
//	stopped -> stopped  red
//
// Every transition starts one shared countdown equal to the longest yellow
// duration of the controlled roads.
package signal

import (
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/cxd309/greenlight-engine/internal/road"
)

var (
	ErrNoRoads            = errors.New("signal controls no roads")
	ErrDuplicateRoad      = errors.New("signal has repeated roads")
	ErrDuplicateLight     = errors.New("signal has repeated light locations")
	ErrLightCountMismatch = errors.New("signal has different numbers of roads and lights")
	ErrUnknownRoad        = errors.New("road is not controlled by this signal")
	ErrEmptyCombination   = errors.New("road combination names no roads")
	ErrNoCombinations     = errors.New("signal has no road combinations")
	ErrStateSizeMismatch  = errors.New("signal state has the wrong number of lights")
	ErrUnknownColor       = errors.New("unknown light colour")
)

// Signal binds a fixed set of roads to lights and a fixed catalog of legal
// phases. It is immutable after New.
type Signal struct {
	roads     []*road.Road
	lights    []Light
	index     map[road.ID]int
	phases    []Phase
	maxYellow float64
}

// New builds a Signal. lights[i] controls roads[i]; every combination lists
// the roads that may move together.
func New(roads []*road.Road, lights []Light, combinations [][]road.ID) (*Signal, error) {
	if len(roads) == 0 {
		return nil, ErrNoRoads
	}
	names := lo.Map(roads, func(r *road.Road, _ int) road.ID { return r.Name() })
	if dups := lo.FindDuplicates(names); len(dups) > 0 {
		return nil, errors.Wrapf(ErrDuplicateRoad, "only %d of the %d roads are unique: %v", len(lo.Uniq(names)), len(names), dups)
	}
	locations := lo.Map(lights, func(l Light, _ int) orb.Point { return l.Location })
	if dups := lo.FindDuplicates(locations); len(dups) > 0 {
		return nil, errors.Wrapf(ErrDuplicateLight, "only %d of the %d lights are unique: %v", len(lo.Uniq(locations)), len(locations), dups)
	}
	if len(roads) != len(lights) {
		return nil, errors.Wrapf(ErrLightCountMismatch, "%d roads, %d lights", len(roads), len(lights))
	}
	if len(combinations) == 0 {
		return nil, ErrNoCombinations
	}

	s := &Signal{
		roads:  append([]*road.Road(nil), roads...),
		lights: append([]Light(nil), lights...),
		index:  make(map[road.ID]int, len(roads)),
	}
	for i, name := range names {
		s.index[name] = i
	}
	for i, combination := range combinations {
		phase, err := s.PhaseOf(combination...)
		if err != nil {
			return nil, errors.Wrapf(err, "combination %d", i)
		}
		s.phases = append(s.phases, phase)
	}
	s.maxYellow = lo.Max(lo.Map(roads, func(r *road.Road, _ int) float64 { return r.YellowLightDuration() }))
	return s, nil
}

// PhaseOf returns the phase in which exactly the named roads move.
func (s *Signal) PhaseOf(moving ...road.ID) (Phase, error) {
	if len(moving) == 0 {
		return nil, ErrEmptyCombination
	}
	phase := make(Phase, len(s.roads))
	for _, id := range moving {
		i, ok := s.index[id]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownRoad, "road %q", id)
		}
		phase[i] = true
	}
	return phase, nil
}

// Roads returns the controlled roads in light order.
func (s *Signal) Roads() []*road.Road { return append([]*road.Road(nil), s.roads...) }

// Lights returns the lights in road order.
func (s *Signal) Lights() []Light { return append([]Light(nil), s.lights...) }

// Phases returns the catalog of legal phases in construction order.
func (s *Signal) Phases() []Phase {
	return lo.Map(s.phases, func(p Phase, _ int) Phase { return append(Phase(nil), p...) })
}

// MaxYellowTime is the longest yellow duration among the controlled roads.
func (s *Signal) MaxYellowTime() float64 { return s.maxYellow }

// AllRed returns the all-red state for this signal.
func (s *Signal) AllRed() State { return AllRed(len(s.lights)) }

// IndexOf returns the light index controlling the road.
func (s *Signal) IndexOf(id road.ID) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// LightFor returns the light controlling the road.
func (s *Signal) LightFor(id road.ID) (Light, bool) {
	i, ok := s.index[id]
	if !ok {
		return Light{}, false
	}
	return s.lights[i], true
}

func (s *Signal) checkState(state State) error {
	if len(state.Colors) != len(s.lights) {
		return errors.Wrapf(ErrStateSizeMismatch, "has %d, this signal expects %d", len(state.Colors), len(s.lights))
	}
	return nil
}

func (s *Signal) transition(from, to Phase) State {
	colors := make([]LightColor, len(from))
	for i := range from {
		switch {
		case from[i] && to[i]:
			colors[i] = Green
		case from[i]:
			colors[i] = Yellow
		case to[i]:
			colors[i] = WaitingRed
		default:
			colors[i] = Red
		}
	}
	return State{Colors: colors, YellowCountdown: s.maxYellow}
}

// PossibleStates returns the candidate successors of current: current itself
// while a yellow is showing, otherwise one transition per catalog phase in
// catalog order.
func (s *Signal) PossibleStates(current State) ([]State, error) {
	if err := s.checkState(current); err != nil {
		return nil, err
	}
	if current.HasYellow() {
		return []State{NewState(current.Colors, current.YellowCountdown)}, nil
	}
	from := current.Phase()
	return lo.Map(s.phases, func(to Phase, _ int) State { return s.transition(from, to) }), nil
}

// Next returns the state one tick after current while steering towards
// target: a yellow in progress just counts down, otherwise current
// transitions to target and the new interval starts counting down at once.
func (s *Signal) Next(current State, target Phase, dt float64) (State, error) {
	if err := s.checkState(current); err != nil {
		return State{}, err
	}
	if len(target) != len(s.lights) {
		return State{}, errors.Wrapf(ErrStateSizeMismatch, "target phase has %d, this signal expects %d", len(target), len(s.lights))
	}
	if current.HasYellow() {
		return current.Advanced(dt), nil
	}
	return s.transition(current.Phase(), target).Advanced(dt), nil
}

// Read returns the colour shown to the road in state.
func (s *Signal) Read(state State, id road.ID) (LightColor, error) {
	if err := s.checkState(state); err != nil {
		return "", err
	}
	i, ok := s.index[id]
	if !ok {
		return "", errors.Wrapf(ErrUnknownRoad, "road %q", id)
	}
	return state.Colors[i], nil
}
