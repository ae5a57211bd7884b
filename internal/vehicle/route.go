package vehicle

import (
	"github.com/samber/lo"

	"github.com/cxd309/greenlight-engine/internal/road"
	"github.com/cxd309/greenlight-engine/internal/signal"
)

// RouteSlice is the cars of one road at one tick, oldest first: index 0 is
// the most advanced car and every other car follows the one before it.
type RouteSlice struct {
	Road *road.Road
	Cars []Car
}

// TotalSpeed is the sum of the speeds of all cars on the road.
func (rs RouteSlice) TotalSpeed() float64 {
	return lo.SumBy(rs.Cars, func(c Car) float64 { return c.Speed })
}

// Advanced returns the road dt seconds later with every car seeing color.
// Cars move from the lead car back, each one following the car ahead as it
// is after this tick.
func (rs RouteSlice) Advanced(dt float64, color signal.LightColor) RouteSlice {
	cars := make([]Car, len(rs.Cars))
	var leader *Car
	for i, car := range rs.Cars {
		cars[i] = car.Advanced(dt, rs.Road, leader, color)
		leader = &cars[i]
	}
	return RouteSlice{Road: rs.Road, Cars: cars}
}
