package road

import (
	"slices"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// index returns the first sample whose cumulative distance is >= position.
func (r *Road) index(position float64) (int, error) {
	if position > r.MaxDistance() {
		return 0, errors.Wrapf(ErrPositionOutOfRange, "road %q: position %f > %f", r.name, position, r.MaxDistance())
	}
	i, _ := slices.BinarySearch(r.distances, position)
	if i == len(r.distances) {
		// unreachable while distances is strictly increasing and position <= MaxDistance
		return 0, errors.Errorf("road %q: no sample at or after %f", r.name, position)
	}
	return i, nil
}

// Location returns the road sample at the 1-D position.
func (r *Road) Location(position float64) (orb.Point, error) {
	i, err := r.index(position)
	if err != nil {
		return orb.Point{}, err
	}
	return r.points[i], nil
}

// Direction returns the heading (compass degrees) at the 1-D position.
func (r *Road) Direction(position float64) (float64, error) {
	i, err := r.index(position)
	if err != nil {
		return 0, err
	}
	return r.headings[i], nil
}
