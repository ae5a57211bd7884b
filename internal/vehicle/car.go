// Package vehicle holds the car model: a car's kinematic state, the
// acceleration policy that reacts to the car ahead, the signal and the
// speed limit, and RouteSlice, the ordered cars of one road at one tick.
package vehicle

import (
	"math"

	"github.com/cxd309/greenlight-engine/internal/geometry"
	"github.com/cxd309/greenlight-engine/internal/kinematics"
	"github.com/cxd309/greenlight-engine/internal/road"
	"github.com/cxd309/greenlight-engine/internal/signal"
)

// Car behaviour constants.
const (
	DecelerationGs          = 0.4
	MaxAcceleration         = DecelerationGs * road.Gravity // m/s², physical cap in either direction
	NormalAcceleration      = 0.1 * road.Gravity            // m/s², cruise acceleration
	SpeedLimitMultiplier    = 1.1
	NormalFollowingDistance = 30.0                          // metres
	MinimumGap              = 2.0                           // metres kept to a stopped leader
	CarIgnoreDistance       = 1320 * geometry.MetersPerFoot // metres, 1/4 mile
	LightIgnoreDistance     = CarIgnoreDistance / 2         // metres
	StandstillSpeed         = 0.05                          // m/s
)

// Car footprint in feet.
const (
	TeslaWidth  = 82.2 / 12
	TeslaLength = 184.8 / 12
)

var limits = kinematics.Limits{
	MaxDeceleration: MaxAcceleration,
	StandstillSpeed: StandstillSpeed,
}

// Car is the kinematic state of one car on its road. Cars are values: every
// tick produces a new Car.
type Car struct {
	Position float64 `json:"position"` // metres along the road
	Speed    float64 `json:"speed"`    // m/s, never negative
}

// TimeToTravel returns how long the car needs to cover distance at its
// current speed. A stationary car never arrives.
func (c Car) TimeToTravel(distance float64) float64 {
	return distance / c.Speed
}

// FollowingTime is the time until the car reaches other's current position.
func (c Car) FollowingTime(other Car) float64 {
	return c.TimeToTravel(other.Position - c.Position)
}

// RelativeSpeed is other's speed as seen from this car; negative when closing.
func (c Car) RelativeSpeed(other Car) float64 {
	return other.Speed - c.Speed
}

// AccelerationToStop returns the acceleration that stops the car gap metres ahead.
func (c Car) AccelerationToStop(gap float64) float64 {
	return kinematics.AccelerationToStop(c.Speed, gap)
}

// Speeding reports whether the car is over the road's speed limit by more
// than SpeedLimitMultiplier allows.
func (c Car) Speeding(r *road.Road) bool {
	return c.Speed > r.SpeedLimit()*SpeedLimitMultiplier
}

// Acceleration returns the acceleration the car applies this tick on road r,
// behind leader (nil when no car is ahead), while seeing color for its road.
//
// The result is the smallest of the active limits, floored at
// -MaxAcceleration:
//  1. NormalAcceleration.
//  2. Behind a leader: stay under the safe speed, from which the car can
//     still stop MinimumGap behind the point where the leader would stop
//     braking as hard as it can. Close behind, also match the leader's
//     speed by the time the gap would be used up.
//  3. Red (or waiting red) ahead and in range: brake for the stop line, gently
//     before the decision threshold and fully after it. Yellow only brakes
//     a car that cannot stop comfortably.
//  4. Reach the speed limit within about a second, or slow down to it.
func (c Car) Acceleration(r *road.Road, leader *Car, color signal.LightColor) float64 {
	acceleration := NormalAcceleration
	limit := func(a float64) {
		acceleration = math.Min(acceleration, a)
	}

	// Following
	if leader != nil {
		gap := leader.Position - c.Position
		limit(c.safeFollowingLimit(*leader, gap))
		if gap < NormalFollowingDistance {
			limit(c.followingLimit(*leader, gap))
		}
	}

	// Light
	toStopLine := r.StopLinePosition() - c.Position
	if toStopLine >= 0 && toStopLine < LightIgnoreDistance {
		canStopOnYellow := -c.AccelerationToStop(toStopLine) <= road.YellowDecelerationRate
		stopForYellow := color == signal.Yellow && !canStopOnYellow
		if color == signal.Red || color == signal.WaitingRed || stopForYellow {
			limit(c.stopLineLimit(r, toStopLine))
		}
	}

	// Speed limit
	limit(r.SpeedLimit() - c.Speed)

	return limits.Clamp(acceleration)
}

// followingLimit closes the speed difference to leader over the time it
// would take to reach it.
func (c Car) followingLimit(leader Car, gap float64) float64 {
	relative := c.RelativeSpeed(leader)
	switch {
	case gap <= 0:
		return math.Inf(-1)
	case c.Speed > 0:
		return relative / c.FollowingTime(leader)
	case relative > 0:
		// stopped behind a leader that is pulling away
		return math.Inf(1)
	default:
		return 0
	}
}

// safeFollowingLimit reaches the safe speed behind leader within one
// driver reaction time.
func (c Car) safeFollowingLimit(leader Car, gap float64) float64 {
	safe := kinematics.SafeSpeed(leader.Speed, gap-MinimumGap, MaxAcceleration, road.DriverReactionTime)
	return (safe - c.Speed) / road.DriverReactionTime
}

// stopLineLimit brakes for the stop line. Before the decision threshold the
// target is eased beyond the line, by StoppingDistance/toStopLine, and it
// closes onto the line as the car reaches the threshold.
func (c Car) stopLineLimit(r *road.Road, toStopLine float64) float64 {
	easing := 1.0
	if c.Position < r.DecisionThreshold() {
		easing = r.StoppingDistance() / toStopLine
	}
	return c.AccelerationToStop(toStopLine / easing)
}

// Advanced returns the car dt seconds later, with leader already advanced.
// A car that started too close and too fast to stop behind its leader ends
// the tick bumper to bumper with it instead of passing it.
func (c Car) Advanced(dt float64, r *road.Road, leader *Car, color signal.LightColor) Car {
	a := c.Acceleration(r, leader, color)
	position, speed := limits.Step(c.Position, c.Speed, a, dt)
	if leader != nil && position > leader.Position {
		return *leader
	}
	return Car{Position: position, Speed: speed}
}
