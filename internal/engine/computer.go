package engine

import (
	"math"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/cxd309/greenlight-engine/internal/signal"
)

// DefaultForwardLookingTime is the look-ahead horizon in seconds.
const DefaultForwardLookingTime = 10.0

// MaxFwdAccComputer chooses the next signal state by simulating every legal
// phase choice over a fixed horizon and keeping the one whose cars gain the
// most total speed. It is a greedy one-level search: only the first tick of
// the winning branch is committed.
type MaxFwdAccComputer struct {
	signal             *signal.Signal
	timeTick           float64
	forwardLookingTime float64
	parallel           bool
}

// ComputerOption configures a MaxFwdAccComputer.
type ComputerOption func(*MaxFwdAccComputer)

// WithTimeTick sets the step used inside look-ahead branches.
func WithTimeTick(dt float64) ComputerOption {
	return func(c *MaxFwdAccComputer) {
		c.timeTick = dt
	}
}

// WithForwardLookingTime sets the look-ahead horizon in seconds.
func WithForwardLookingTime(seconds float64) ComputerOption {
	return func(c *MaxFwdAccComputer) {
		c.forwardLookingTime = seconds
	}
}

// WithParallelBranches evaluates the branches concurrently. Branches only
// read the shared starting slice, so the result is the same either way.
func WithParallelBranches(parallel bool) ComputerOption {
	return func(c *MaxFwdAccComputer) {
		c.parallel = parallel
	}
}

func NewMaxFwdAccComputer(sig *signal.Signal, options ...ComputerOption) *MaxFwdAccComputer {
	c := &MaxFwdAccComputer{
		signal:             sig,
		timeTick:           DefaultTimeTick,
		forwardLookingTime: DefaultForwardLookingTime,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// branch is the outcome of one simulated phase choice.
type branch struct {
	first signal.State // state committed if this branch wins
	last  TimeSlice
}

// steps is the number of ticks simulated per branch, at least one.
func (c *MaxFwdAccComputer) steps() int {
	return max(1, int(math.Round(c.forwardLookingTime/c.timeTick)))
}

// simulate runs slice forward while steering the signal towards target.
func (c *MaxFwdAccComputer) simulate(slice TimeSlice, target signal.Phase) (branch, error) {
	var b branch
	current := slice
	for k := 0; k < c.steps(); k++ {
		next, err := c.signal.Next(current.Signal, target, c.timeTick)
		if err != nil {
			return branch{}, err
		}
		if current, err = current.Advanced(c.timeTick, next, c.signal); err != nil {
			return branch{}, err
		}
		if k == 0 {
			b.first = next
		}
	}
	b.last = current
	return b, nil
}

// NextSignal returns the first state of the branch with the strictly largest
// speed gain; ties go to the earliest candidate in catalog order. While a
// yellow is showing the only candidate is to let it run out.
func (c *MaxFwdAccComputer) NextSignal(slice TimeSlice) (signal.State, error) {
	candidates, err := c.signal.PossibleStates(slice.Signal)
	if err != nil {
		return signal.State{}, err
	}

	branches := make([]branch, len(candidates))
	evaluate := func(i int) error {
		b, err := c.simulate(slice, candidates[i].Target())
		if err != nil {
			return errors.Wrapf(err, "look-ahead branch %d", i)
		}
		branches[i] = b
		return nil
	}

	if c.parallel {
		var g errgroup.Group
		for i := range candidates {
			i := i
			g.Go(func() error { return evaluate(i) })
		}
		if err := g.Wait(); err != nil {
			return signal.State{}, err
		}
	} else {
		for i := range candidates {
			if err := evaluate(i); err != nil {
				return signal.State{}, err
			}
		}
	}

	origin := slice.TotalSpeed()
	best, bestGain := 0, math.Inf(-1)
	for i, b := range branches {
		if gain := b.last.TotalSpeed() - origin; gain > bestGain {
			best, bestGain = i, gain
		}
	}
	return branches[best].first, nil
}
