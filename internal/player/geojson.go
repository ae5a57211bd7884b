package player

import (
	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
)

func coordinates(line []orb.Point) [][]float64 {
	coords := make([][]float64, len(line))
	for i, pt := range line {
		coords[i] = []float64{pt.Lon(), pt.Lat()}
	}
	return coords
}

func polygonCoordinates(poly orb.Polygon) [][][]float64 {
	rings := make([][][]float64, len(poly))
	for i, ring := range poly {
		rings[i] = coordinates(ring)
	}
	return rings
}

// FeatureCollection renders the intersection at the current time: one line
// per road, the curb boundary, a point per light and a footprint per car.
// Every feature has a "kind" property.
func (p *Player) FeatureCollection() (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	in := p.sim.Intersection()

	for _, r := range in.Roads() {
		f := geojson.NewLineStringFeature(coordinates(r.Points()))
		f.SetProperty("kind", "road")
		f.SetProperty("name", r.Name())
		f.SetProperty("speed_limit", r.SpeedLimit())
		f.SetProperty("stop_line_position", r.StopLinePosition())
		fc.AddFeature(f)
	}

	if bounds := in.Bounds(); len(bounds) > 0 {
		f := geojson.NewPolygonFeature(polygonCoordinates(orb.Polygon{bounds}))
		f.SetProperty("kind", "bounds")
		fc.AddFeature(f)
	}

	lights, err := p.Lights()
	if err != nil {
		return nil, err
	}
	for _, l := range lights {
		f := geojson.NewPointFeature([]float64{l.Location.Lon(), l.Location.Lat()})
		f.SetProperty("kind", "light")
		f.SetProperty("road", l.Road)
		f.SetProperty("color", string(l.Color))
		fc.AddFeature(f)
	}

	cars, err := p.Cars()
	if err != nil {
		return nil, err
	}
	for _, c := range cars {
		f := geojson.NewPolygonFeature(polygonCoordinates(c.Footprint))
		f.SetProperty("kind", "car")
		f.SetProperty("road", c.Road)
		f.SetProperty("index", c.Index)
		f.SetProperty("position", c.Car.Position)
		f.SetProperty("speed", c.Car.Speed)
		f.SetProperty("heading", c.Heading)
		f.SetProperty("speeding", c.Speeding)
		f.SetProperty("in_intersection", c.InIntersection)
		fc.AddFeature(f)
	}

	f := geojson.NewPointFeature([]float64{in.Center().Lon(), in.Center().Lat()})
	f.SetProperty("kind", "center")
	slice := p.TimeSlice()
	f.SetProperty("time", slice.Time)
	f.SetProperty("total_speed", slice.TotalSpeed())
	fc.AddFeature(f)

	return fc, nil
}
