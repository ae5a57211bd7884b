package road

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"github.com/cxd309/greenlight-engine/internal/geometry"
)

var start = orb.Point{-119.05679, 35.23794}

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// quarterMile returns a straight northbound road 1320 ft long.
func quarterMile(t *testing.T, options ...Option) *Road {
	t.Helper()
	end := geometry.Offset(start, geometry.MetersFromFeet(1320), 0)
	r, err := New("NB", geometry.MPSFromMPH(55), 300, geometry.Line(start, end, 1), options...)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestDerivedPhysics(t *testing.T) {
	r := quarterMile(t)

	if !approxEqual(r.GradedDeceleration(), 3.048, 1e-3) {
		t.Errorf("graded deceleration must be 3.048, but got %f", r.GradedDeceleration())
	}
	if !approxEqual(r.StoppingTime(), 8.0667, 1e-3) {
		t.Errorf("stopping time must be 8.0667, but got %f", r.StoppingTime())
	}
	if !approxEqual(r.YellowLightDuration(), 9.0667, 1e-3) {
		t.Errorf("yellow duration must be 9.0667, but got %f", r.YellowLightDuration())
	}
	if !approxEqual(r.StoppingDistance(), 99.17, 1e-2) {
		t.Errorf("stopping distance must be 99.17, but got %f", r.StoppingDistance())
	}
	if !approxEqual(r.DecisionThreshold(), 300-r.StoppingDistance(), 1e-9) {
		t.Errorf("decision threshold must be stop line minus stopping distance, but got %f", r.DecisionThreshold())
	}

	uphill := quarterMile(t, WithApproachGrade(0.05))
	if uphill.GradedDeceleration() <= r.GradedDeceleration() || uphill.YellowLightDuration() >= r.YellowLightDuration() {
		t.Errorf("uphill approach must brake harder and need a shorter yellow")
	}
}

func TestLookup(t *testing.T) {
	r := quarterMile(t)
	points := r.Points()

	if !approxEqual(r.MaxDistance(), geometry.MetersFromFeet(1320), 0.5) {
		t.Errorf("max distance must be about 402.3 m, but got %f", r.MaxDistance())
	}

	loc, err := r.Location(0)
	if err != nil || loc != points[0] {
		t.Errorf("location at 0 must be the first sample, got %v (%v)", loc, err)
	}

	loc, err = r.Location(r.MaxDistance())
	if err != nil || loc != points[len(points)-1] {
		t.Errorf("location at max distance must be the last sample, got %v (%v)", loc, err)
	}

	loc, err = r.Location(10.5)
	if err != nil {
		t.Fatal(err)
	}
	if d := geometry.Distance(start, loc); d < 10.5 || d > 11.6 {
		t.Errorf("location at 10.5 m must be the first sample at or after it, but it is %f m from the start", d)
	}

	dir, err := r.Direction(200)
	if err != nil {
		t.Fatal(err)
	}
	if !approxEqual(dir, 0, 0.01) && !approxEqual(dir, 360, 0.01) {
		t.Errorf("northbound direction must be 0, but got %f", dir)
	}

	if _, err := r.Location(r.MaxDistance() + 0.01); !errors.Is(err, ErrPositionOutOfRange) {
		t.Errorf("location past the end must be ErrPositionOutOfRange, but got %v", err)
	}
	if _, err := r.Direction(r.MaxDistance() + 1); !errors.Is(err, ErrPositionOutOfRange) {
		t.Errorf("direction past the end must be ErrPositionOutOfRange, but got %v", err)
	}
}

func TestNewValidation(t *testing.T) {
	end := geometry.Offset(start, 100, 0)
	line := orb.LineString{start, end}

	tests := []struct {
		name    string
		build   func() (*Road, error)
		wantErr error
	}{
		{"missing name", func() (*Road, error) { return New("", 10, 50, line) }, ErrMissingName},
		{"single point", func() (*Road, error) { return New("A", 10, 0, orb.LineString{start}) }, ErrTooFewPoints},
		{"repeated point", func() (*Road, error) { return New("A", 10, 0, orb.LineString{start, start, end}) }, ErrNonIncreasingDistance},
		{"zero speed limit", func() (*Road, error) { return New("A", 0, 50, line) }, ErrInvalidSpeedLimit},
		{"stop line past end", func() (*Road, error) { return New("A", 10, 150, line) }, ErrStopLineOutOfRange},
		{"negative stop line", func() (*Road, error) { return New("A", 10, -1, line) }, ErrStopLineOutOfRange},
		{"steep downhill", func() (*Road, error) { return New("A", 10, 50, line, WithApproachGrade(-0.5)) }, ErrNonPositiveDeceleration},
	}
	for _, tt := range tests {
		if _, err := tt.build(); !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: must fail with %v, but got %v", tt.name, tt.wantErr, err)
		}
	}
}

func TestFromData(t *testing.T) {
	end := geometry.Offset(start, 0, 200)
	r, err := FromData(Data{
		Name:             "EB",
		SpeedLimit:       20,
		StopLinePosition: 150,
		Line:             &LineData{From: start, To: end, Resolution: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Points()) < 200 {
		t.Errorf("line data must be sampled at 1 m, but got %d points", len(r.Points()))
	}
	if r.StartPosition() != start {
		t.Errorf("road must start at %v, but got %v", start, r.StartPosition())
	}

	again, err := FromData(r.Data())
	if err != nil {
		t.Fatal(err)
	}
	if again.MaxDistance() != r.MaxDistance() || again.Name() != r.Name() {
		t.Errorf("Data round trip must preserve the road")
	}

	for _, res := range []float64{1e-12, 0.05, 0.001} {
		_, err := FromData(Data{
			Name:             "EB",
			SpeedLimit:       20,
			StopLinePosition: 150,
			Line:             &LineData{From: start, To: end, Resolution: res},
		})
		if !errors.Is(err, ErrResolutionTooFine) {
			t.Errorf("resolution %g must fail with ErrResolutionTooFine, but got %v", res, err)
		}
	}
	far := geometry.Offset(start, 0, 20_000)
	if _, err := FromData(Data{Name: "EB", SpeedLimit: 20, StopLinePosition: 150, Line: &LineData{From: start, To: far, Resolution: 0.1}}); !errors.Is(err, ErrResolutionTooFine) {
		t.Errorf("a line of more than %d samples must fail with ErrResolutionTooFine, but got %v", MaxLinePoints, err)
	}
}
