// Package kinematics holds the one-dimensional motion formulas shared by
// roads and cars: braking distances and times, the acceleration needed to
// stop at a point ahead, and the per-tick integrator.
//
// All distances are metres along a road, speeds m/s, accelerations m/s² and
// times seconds. Decelerations passed in are positive magnitudes; returned
// accelerations are signed (negative = braking).
package kinematics

import "math"

// StoppingTime returns how long it takes to stop from v at a constant
// deceleration decel. ΔV = a·t, so t = ΔV/a.
func StoppingTime(v, decel float64) float64 {
	if decel <= 0 {
		return math.Inf(1)
	}
	return v / decel
}

// StoppingDistance returns the distance covered while stopping from v at a
// constant deceleration decel.
func StoppingDistance(v, decel float64) float64 {
	if decel <= 0 {
		return math.Inf(1)
	}
	return (v * v) / (2 * decel)
}

// AccelerationToStop returns the constant (negative) acceleration that brings
// a car moving at v to rest after exactly gap metres.
//
// The formula is singular at gap == 0 and callers are expected to only ask
// for targets strictly ahead. At or past the target the result is 0 for a
// car that is already stationary and -Inf for a moving one, which Limits.Clamp
// turns into the physical braking cap. The result is never NaN.
func AccelerationToStop(v, gap float64) float64 {
	if v == 0 {
		return 0
	}
	if gap <= 0 {
		return math.Inf(-1)
	}
	return -(v * v) / (2 * gap)
}

// SafeSpeed returns the highest speed from which a car that reacts after
// reaction seconds and then brakes at decel still stops gap metres behind
// where a leader moving at leaderSpeed and braking at decel comes to rest.
// It is -Inf when even a stationary car is already too close.
func SafeSpeed(leaderSpeed, gap, decel, reaction float64) float64 {
	d := decel*decel*reaction*reaction + leaderSpeed*leaderSpeed + 2*decel*gap
	if d < 0 {
		return math.Inf(-1)
	}
	return -decel*reaction + math.Sqrt(d)
}
