// Package player reads a finished simulation back at an arbitrary time:
// which slice is showing, where each car is on the map, what every light
// shows, and a GeoJSON snapshot of all of it.
package player

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/cxd309/greenlight-engine/internal/engine"
	"github.com/cxd309/greenlight-engine/internal/geometry"
	"github.com/cxd309/greenlight-engine/internal/road"
	"github.com/cxd309/greenlight-engine/internal/signal"
	"github.com/cxd309/greenlight-engine/internal/vehicle"
)

// Player is a cursor over a simulation's history.
type Player struct {
	sim  *engine.Simulation
	time float64
}

func New(sim *engine.Simulation) *Player {
	return &Player{sim: sim}
}

// MaxTime is the simulation's run time.
func (p *Player) MaxTime() float64 { return p.sim.RunTime() }

func (p *Player) Time() float64 { return p.time }

// Seek moves the cursor to t, clamped to [0, MaxTime].
func (p *Player) Seek(t float64) {
	p.time = math.Max(0, math.Min(t, p.MaxTime()))
}

// Index is the slice index showing at the current time. It never points past
// the recorded history, so a player over a simulation that has not run
// shows the initial slice.
func (p *Player) Index() int {
	// the epsilon keeps t = k*tick on slice k despite rounding
	i := int(math.Floor(p.time/p.sim.TimeTick() + 1e-9))
	return min(i, p.sim.Len()-1)
}

func (p *Player) TimeSlice() engine.TimeSlice {
	return p.sim.Slice(p.Index())
}

// RoadCars is the cars of one road, lead car first.
type RoadCars struct {
	Road *road.Road
	Cars []vehicle.Car
}

func (p *Player) CarsByRoad() []RoadCars {
	return lo.Map(p.TimeSlice().Routes, func(rs vehicle.RouteSlice, _ int) RoadCars {
		return RoadCars{Road: rs.Road, Cars: rs.Cars}
	})
}

// LightView is one light as it shows at the current time.
type LightView struct {
	Road     road.ID
	Location orb.Point
	Color    signal.LightColor
}

func (p *Player) Lights() ([]LightView, error) {
	sig := p.sim.Signal()
	state := p.TimeSlice().Signal
	views := make([]LightView, 0, len(sig.Roads()))
	for i, r := range sig.Roads() {
		color, err := sig.Read(state, r.Name())
		if err != nil {
			return nil, err
		}
		views = append(views, LightView{Road: r.Name(), Location: sig.Lights()[i].Location, Color: color})
	}
	return views, nil
}

// CarView is one car placed on the map.
type CarView struct {
	Road           road.ID
	Index          int // position in the road's queue, 0 = lead car
	Car            vehicle.Car
	Location       orb.Point
	Heading        float64 // compass degrees
	Footprint      orb.Polygon
	Speeding       bool
	InIntersection bool
}

// Cars places every car of the current slice. Cars that have driven past
// the end of their road have no location and are left out.
func (p *Player) Cars() ([]CarView, error) {
	in := p.sim.Intersection()
	var views []CarView
	for _, rc := range p.CarsByRoad() {
		for i, car := range rc.Cars {
			if car.Position < 0 || car.Position > rc.Road.MaxDistance() {
				continue
			}
			location, err := rc.Road.Location(car.Position)
			if err != nil {
				return nil, errors.Wrapf(err, "car %d on road %q", i, rc.Road.Name())
			}
			heading, err := rc.Road.Direction(car.Position)
			if err != nil {
				return nil, errors.Wrapf(err, "car %d on road %q", i, rc.Road.Name())
			}
			views = append(views, CarView{
				Road:           rc.Road.Name(),
				Index:          i,
				Car:            car,
				Location:       location,
				Heading:        heading,
				Footprint:      Footprint(location, heading),
				Speeding:       car.Speeding(rc.Road),
				InIntersection: in.Contains(location),
			})
		}
	}
	return views, nil
}

// Footprint returns the outline of a car centred on location and facing
// heading, corners clockwise from front right.
func Footprint(location orb.Point, heading float64) orb.Polygon {
	halfWidth, halfLength := vehicle.TeslaWidth/2, vehicle.TeslaLength/2
	corners := [][2]float64{
		{halfWidth, halfLength},
		{halfWidth, -halfLength},
		{-halfWidth, -halfLength},
		{-halfWidth, halfLength},
		{halfWidth, halfLength},
	}

	sin, cos := math.Sincos(heading * math.Pi / 180)
	ring := make(orb.Ring, len(corners))
	for i, c := range corners {
		// c is (right, forward) in feet; rotate clockwise onto (east, north)
		east := c[0]*cos + c[1]*sin
		north := -c[0]*sin + c[1]*cos
		ring[i] = geometry.OffsetFeet(location, north, east)
	}
	return orb.Polygon{ring}
}
