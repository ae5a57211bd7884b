// Package scenario holds ready-made intersections with their signal and
// starting traffic, expressed as engine input so they can be run directly
// or written out as JSON.
package scenario

import (
	"slices"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/cxd309/greenlight-engine/internal/engine"
	"github.com/cxd309/greenlight-engine/internal/geometry"
	"github.com/cxd309/greenlight-engine/internal/road"
	"github.com/cxd309/greenlight-engine/internal/vehicle"
)

var ErrUnknownScenario = errors.New("unknown scenario")

// Houghton & Stine layout, in feet unless noted.
const (
	LaneWidth    = 12.0
	LanesWide    = 2.0
	RoadWidth    = LaneWidth * LanesWide
	LaneCenter   = LaneWidth / 2
	HalfRoad     = RoadWidth / 2
	PlotDistance = 1320.0 // 1/4 mile
	CurbRadius   = 25.0
	Resolution   = 1.0  // metres between road samples
	RunTime      = 10.0 // seconds

	HoughtonAndStineName = "houghton-stine"
	NorthboundName       = "Stine-NB"
	EastboundName        = "Houghton-EB"
)

// HoughtonAndStineCenter is the centre of the junction of Houghton Road and
// Stine Road, Bakersfield.
var HoughtonAndStineCenter = orb.Point{-119.05679, 35.23794}

var scenarios = map[string]func() engine.SimulationInput{
	HoughtonAndStineName: HoughtonAndStine,
}

// Names lists the built-in scenarios.
func Names() []string {
	names := lo.Keys(scenarios)
	slices.Sort(names)
	return names
}

// ByName returns the input of a built-in scenario.
func ByName(name string) (engine.SimulationInput, error) {
	build, ok := scenarios[name]
	if !ok {
		return engine.SimulationInput{}, errors.Wrapf(ErrUnknownScenario, "%q, have %v", name, Names())
	}
	return build(), nil
}

// stopLine is where both approaches stop, half a lane short of the far end
// of the plot.
func stopLine() float64 {
	return geometry.MetersFromFeet(PlotDistance) - geometry.MetersFromFeet(LaneCenter)
}

// roads returns the northbound Stine and eastbound Houghton approaches, each
// running a quarter mile either side of the centre in the right-hand lane.
func roads() []road.Data {
	c := HoughtonAndStineCenter
	return []road.Data{
		{
			Name:             NorthboundName,
			SpeedLimit:       geometry.MPSFromMPH(55),
			StopLinePosition: stopLine(),
			Line: &road.LineData{
				From:       geometry.OffsetFeet(c, -PlotDistance, LaneCenter),
				To:         geometry.OffsetFeet(c, PlotDistance, LaneCenter),
				Resolution: Resolution,
			},
		},
		{
			Name:             EastboundName,
			SpeedLimit:       geometry.MPSFromMPH(55),
			StopLinePosition: stopLine(),
			Line: &road.LineData{
				From:       geometry.OffsetFeet(c, -LaneCenter, -PlotDistance),
				To:         geometry.OffsetFeet(c, -LaneCenter, PlotDistance),
				Resolution: Resolution,
			},
		},
	}
}

// Bounds traces the curb line: the north-east corner (two straight curbs
// joined by a curb return) mirrored into the other three quadrants.
func Bounds() orb.Ring {
	c := HoughtonAndStineCenter
	arcCenter := geometry.OffsetFeet(c, HalfRoad+CurbRadius, HalfRoad+CurbRadius)

	var northEast []orb.Point
	northEast = append(northEast,
		geometry.OffsetFeet(c, HalfRoad, PlotDistance),
		geometry.OffsetFeet(c, HalfRoad, HalfRoad+CurbRadius),
	)
	northEast = append(northEast, geometry.Arc(arcCenter, geometry.MetersFromFeet(CurbRadius), 180, 270, Resolution)...)
	northEast = append(northEast,
		geometry.OffsetFeet(c, HalfRoad+CurbRadius, HalfRoad),
		geometry.OffsetFeet(c, PlotDistance, HalfRoad),
	)

	mirror := func(points []orb.Point, f func(orb.Point) orb.Point) []orb.Point {
		out := lo.Map(points, func(p orb.Point, _ int) orb.Point { return f(p) })
		slices.Reverse(out)
		return out
	}
	acrossLon := func(p orb.Point) orb.Point { return geometry.MirrorAcrossLongitude(p, c.Lon()) }
	acrossLat := func(p orb.Point) orb.Point { return geometry.MirrorAcrossLatitude(p, c.Lat()) }

	northWest := mirror(northEast, acrossLon)
	southWest := mirror(northWest, acrossLat)
	southEast := mirror(northEast, acrossLat)

	ring := orb.Ring(lo.Flatten([][]orb.Point{northEast, northWest, southWest, southEast}))
	return append(ring, ring[0])
}

// HoughtonAndStine is the Houghton & Stine intersection with one car
// northbound, already at the junction and speeding, and two eastbound cars
// closing on the stop line. All lights start red.
func HoughtonAndStine() engine.SimulationInput {
	eastbound := func(lengths float64) float64 {
		return geometry.MetersFromFeet(PlotDistance - LaneCenter - vehicle.TeslaLength*lengths)
	}

	return engine.SimulationInput{
		Meta: engine.SimulationMeta{RunTime: RunTime},
		Intersection: engine.IntersectionData{
			Center: HoughtonAndStineCenter,
			Bounds: Bounds(),
			Roads:  roads(),
		},
		Signal: engine.SignalData{
			Lights: []engine.LightData{
				{Road: NorthboundName, Location: orb.Point{-119.05677, 35.23800}},
				{Road: EastboundName, Location: orb.Point{-119.05672, 35.23792}},
			},
			Combinations: [][]road.ID{{NorthboundName}, {EastboundName}},
		},
		Routes: []engine.RouteData{
			{Road: NorthboundName, Cars: []vehicle.Car{
				{Position: geometry.MetersFromFeet(PlotDistance), Speed: geometry.MPSFromMPH(60)},
			}},
			{Road: EastboundName, Cars: []vehicle.Car{
				{Position: eastbound(1.5), Speed: geometry.MPSFromMPH(45)},
				{Position: eastbound(3), Speed: geometry.MPSFromMPH(55)},
			}},
		},
		Computer: engine.ComputerData{Model: engine.MaxFwdAccModelName},
	}
}
