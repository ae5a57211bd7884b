package engine

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/cxd309/greenlight-engine/internal/signal"
	"github.com/cxd309/greenlight-engine/internal/vehicle"
)

// TimeSlice is the complete state of the system at one tick: the cars of
// every controlled road and the signal state.
type TimeSlice struct {
	Time   float64 // seconds since the start of the run
	Routes []vehicle.RouteSlice
	Signal signal.State
}

// Advanced returns the slice dt seconds later. Every road moves under the
// colour next shows it, and next becomes the slice's signal state. The
// receiver is left untouched so look-ahead branches can share it.
func (ts TimeSlice) Advanced(dt float64, next signal.State, sig *signal.Signal) (TimeSlice, error) {
	routes := make([]vehicle.RouteSlice, len(ts.Routes))
	for i, rs := range ts.Routes {
		color, err := sig.Read(next, rs.Road.Name())
		if err != nil {
			return TimeSlice{}, errors.Wrapf(err, "reading light for road %q", rs.Road.Name())
		}
		routes[i] = rs.Advanced(dt, color)
	}
	return TimeSlice{Time: ts.Time + dt, Routes: routes, Signal: next}, nil
}

// TotalSpeed is the sum of the speeds of every car in the slice.
func (ts TimeSlice) TotalSpeed() float64 {
	return lo.SumBy(ts.Routes, func(rs vehicle.RouteSlice) float64 { return rs.TotalSpeed() })
}
