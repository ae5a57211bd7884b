package intersection

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"github.com/cxd309/greenlight-engine/internal/geometry"
	"github.com/cxd309/greenlight-engine/internal/road"
)

var center = orb.Point{-119.05679, 35.23794}

func testRoad(t *testing.T, name string) *road.Road {
	t.Helper()
	from := geometry.Offset(center, -100, 0)
	to := geometry.Offset(center, 100, 0)
	r, err := road.New(name, geometry.MPSFromMPH(30), 90, geometry.Line(from, to, 1))
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func square(size float64) orb.Ring {
	return orb.Ring{
		geometry.Offset(center, size, size),
		geometry.Offset(center, size, -size),
		geometry.Offset(center, -size, -size),
		geometry.Offset(center, -size, size),
	}
}

func TestNew(t *testing.T) {
	a, b := testRoad(t, "A"), testRoad(t, "B")

	in, err := New(center, []*road.Road{a, b}, square(10))
	if err != nil {
		t.Fatal(err)
	}
	if !in.Bounds().Closed() || len(in.Bounds()) != 5 {
		t.Errorf("open boundary must be closed, but got %d points", len(in.Bounds()))
	}
	if in.Center() != center || len(in.Roads()) != 2 {
		t.Errorf("centre and roads must be kept as given")
	}
	if r, ok := in.Road("B"); !ok || r != b {
		t.Errorf("road B must be found by name")
	}
	if _, ok := in.Road("C"); ok {
		t.Errorf("road C is not part of the intersection")
	}

	if _, err := New(center, []*road.Road{a, a}, nil); !errors.Is(err, ErrDuplicateRoad) {
		t.Errorf("repeated roads must fail with ErrDuplicateRoad, but got %v", err)
	}
}

func TestContains(t *testing.T) {
	in, err := New(center, nil, square(10))
	if err != nil {
		t.Fatal(err)
	}
	if !in.Contains(center) {
		t.Errorf("centre must lie inside the boundary")
	}
	if in.Contains(geometry.Offset(center, 50, 0)) {
		t.Errorf("a point 50 m north must lie outside the boundary")
	}

	empty, err := New(center, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if empty.Contains(center) {
		t.Errorf("an intersection without a boundary contains nothing")
	}
}
