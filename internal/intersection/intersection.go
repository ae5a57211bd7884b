// Package intersection holds the geometric container of a junction: its
// centre, the approach roads and the curb boundary drawn around it.
package intersection

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/cxd309/greenlight-engine/internal/road"
)

var ErrDuplicateRoad = errors.New("intersection has repeated roads")

// Intersection is immutable after New.
type Intersection struct {
	center orb.Point
	roads  []*road.Road
	bounds orb.Ring
}

// New builds an Intersection. An open boundary ring is closed; an empty one
// is allowed and simply has no area.
func New(center orb.Point, roads []*road.Road, bounds orb.Ring) (*Intersection, error) {
	names := lo.Map(roads, func(r *road.Road, _ int) road.ID { return r.Name() })
	if dups := lo.FindDuplicates(names); len(dups) > 0 {
		return nil, errors.Wrapf(ErrDuplicateRoad, "%v", dups)
	}

	ring := append(orb.Ring(nil), bounds...)
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return &Intersection{
		center: center,
		roads:  append([]*road.Road(nil), roads...),
		bounds: ring,
	}, nil
}

func (in *Intersection) Center() orb.Point   { return in.center }
func (in *Intersection) Roads() []*road.Road { return append([]*road.Road(nil), in.roads...) }
func (in *Intersection) Bounds() orb.Ring    { return in.bounds.Clone() }
func (in *Intersection) Bound() orb.Bound    { return in.bounds.Bound() }

// Road looks a road up by name.
func (in *Intersection) Road(id road.ID) (*road.Road, bool) {
	return lo.Find(in.roads, func(r *road.Road) bool { return r.Name() == id })
}

// Contains reports whether p lies inside the curb boundary.
func (in *Intersection) Contains(p orb.Point) bool {
	if len(in.bounds) < 4 {
		return false
	}
	return planar.RingContains(in.bounds, p)
}
