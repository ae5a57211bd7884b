// Package geometry holds the geographic helpers used to lay out roads and
// intersections: distances and bearings between lon/lat points, offsets in
// metres, mirroring, and resolution-based line and arc sampling.
//
// Points are orb.Point values ([lon, lat] in degrees). Distances are metres
// and bearings are compass degrees in [0, 360), 0 = north, 90 = east.
//
// Nothing in this package is used while a simulation is running; roads
// convert their samples into arc-length and heading tables once at
// construction time.
package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Distance returns the great-circle distance between p and q in metres.
func Distance(p, q orb.Point) float64 {
	return geo.Distance(p, q)
}

// Bearing returns the initial compass bearing from p to q in degrees [0, 360).
func Bearing(p, q orb.Point) float64 {
	return NormalizeBearing(geo.Bearing(p, q))
}

// NormalizeBearing wraps a bearing in degrees into [0, 360).
func NormalizeBearing(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Destination returns the point reached by travelling distance metres from p
// along the given compass bearing.
func Destination(p orb.Point, bearing, distance float64) orb.Point {
	if distance < 0 {
		bearing += 180
		distance = -distance
	}
	return geo.PointAtBearingAndDistance(p, NormalizeBearing(bearing), distance)
}

// Offset moves p north by north metres and then east by east metres.
// Negative values move south and west respectively.
func Offset(p orb.Point, north, east float64) orb.Point {
	return Destination(Destination(p, 0, north), 90, east)
}

// OffsetFeet is Offset with both displacements given in feet.
func OffsetFeet(p orb.Point, northFeet, eastFeet float64) orb.Point {
	return Offset(p, MetersFromFeet(northFeet), MetersFromFeet(eastFeet))
}

// MirrorAcrossLatitude reflects p across the parallel at lat.
func MirrorAcrossLatitude(p orb.Point, lat float64) orb.Point {
	return orb.Point{p.Lon(), lat - (p.Lat() - lat)}
}

// MirrorAcrossLongitude reflects p across the meridian at lon.
func MirrorAcrossLongitude(p orb.Point, lon float64) orb.Point {
	return orb.Point{lon - (p.Lon() - lon), p.Lat()}
}
