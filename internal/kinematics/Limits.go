package kinematics

import "math"

// Limits is the physical envelope a car's acceleration is held to, plus the
// speed under which a braking car is considered stopped.
type Limits struct {
	MaxDeceleration float64 `json:"max_deceleration"` // m/s², positive
	StandstillSpeed float64 `json:"standstill_speed"` // m/s
}

// Clamp floors a at -MaxDeceleration. Positive values pass through.
func (l Limits) Clamp(a float64) float64 {
	return math.Max(a, -l.MaxDeceleration)
}

// Step integrates one tick of length dt with a semi-implicit Euler scheme:
// the speed is updated first and the new speed moves the position.
//
// Cars never reverse, so the speed is floored at 0, and a braking car whose
// new speed drops under StandstillSpeed stops outright instead of creeping
// towards its target forever.
func (l Limits) Step(pos, v, a, dt float64) (newPos, newV float64) {
	newV = v + a*dt
	if newV < 0 || (a < 0 && newV < l.StandstillSpeed) {
		newV = 0
	}
	return pos + newV*dt, newV
}
