package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// maxArcStep caps the angular step of Arc when the resolution is not small
// compared to the radius.
const maxArcStep = 45.0

// Line samples the straight segment from -> to so that consecutive points are
// at most resolution metres apart. Both endpoints are included. A zero-length
// segment yields the single point from.
func Line(from, to orb.Point, resolution float64) orb.LineString {
	dist := Distance(from, to)
	if dist == 0 || resolution <= 0 {
		if dist == 0 {
			return orb.LineString{from}
		}
		return orb.LineString{from, to}
	}

	n := int(math.Ceil(dist/resolution)) + 1
	dLon := to.Lon() - from.Lon()
	dLat := to.Lat() - from.Lat()

	line := make(orb.LineString, n)
	for i := 0; i < n-1; i++ {
		ratio := float64(i) / float64(n-1)
		line[i] = orb.Point{from.Lon() + dLon*ratio, from.Lat() + dLat*ratio}
	}
	line[n-1] = to
	return line
}

// Arc samples a circular arc of radius metres around center, sweeping from
// the start bearing to the end bearing (degrees, either direction). The
// chord between consecutive points is at most resolution metres. Both end
// bearings are included.
func Arc(center orb.Point, radius, start, end, resolution float64) orb.LineString {
	step := maxArcStep
	if radius > 0 && resolution > 0 && resolution < radius {
		step = math.Min(step, math.Asin(resolution/radius)*180/math.Pi)
	}

	total := end - start
	n := int(math.Ceil(math.Abs(total)/step)) + 1
	if n < 2 {
		n = 2
	}

	arc := make(orb.LineString, n)
	for i := 0; i < n; i++ {
		theta := start + total*float64(i)/float64(n-1)
		arc[i] = Destination(center, theta, radius)
	}
	return arc
}
