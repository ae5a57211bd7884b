package engine

import (
	"github.com/cxd309/greenlight-engine/internal/signal"
)

// DefaultGreenTime is the green time per phase of a FixedCycleComputer.
const DefaultGreenTime = 30.0

// FixedCycleComputer is a pre-timed controller: it serves the signal's
// phases in catalog order, each for its green time plus the clearance that
// precedes it. It only depends on the slice's time, so it is stateless.
type FixedCycleComputer struct {
	signal    *signal.Signal
	greenTime float64
	timeTick  float64
}

func NewFixedCycleComputer(sig *signal.Signal, greenTime, timeTick float64) *FixedCycleComputer {
	if greenTime <= 0 {
		greenTime = DefaultGreenTime
	}
	if timeTick <= 0 {
		timeTick = DefaultTimeTick
	}
	return &FixedCycleComputer{signal: sig, greenTime: greenTime, timeTick: timeTick}
}

// Period is the time each phase is held, clearance included.
func (c *FixedCycleComputer) Period() float64 {
	return c.greenTime + c.signal.MaxYellowTime()
}

// TargetAt returns the phase the cycle serves at time t.
func (c *FixedCycleComputer) TargetAt(t float64) signal.Phase {
	phases := c.signal.Phases()
	return phases[int(t/c.Period())%len(phases)]
}

func (c *FixedCycleComputer) NextSignal(slice TimeSlice) (signal.State, error) {
	return c.signal.Next(slice.Signal, c.TargetAt(slice.Time), c.timeTick)
}
