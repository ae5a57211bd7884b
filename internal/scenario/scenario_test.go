package scenario

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/pkg/errors"

	"github.com/cxd309/greenlight-engine/internal/engine"
	"github.com/cxd309/greenlight-engine/internal/geometry"
	"github.com/cxd309/greenlight-engine/internal/signal"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestByName(t *testing.T) {
	if _, err := ByName(HoughtonAndStineName); err != nil {
		t.Fatal(err)
	}
	if _, err := ByName("main-and-first"); !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("an unknown scenario must fail with ErrUnknownScenario, but got %v", err)
	}
	if names := Names(); len(names) != 1 || names[0] != HoughtonAndStineName {
		t.Errorf("names must list houghton-stine, but got %v", names)
	}
}

func TestBounds(t *testing.T) {
	ring := Bounds()
	if !ring.Closed() {
		t.Fatalf("the curb line must be closed")
	}
	// four quadrants of two straight curbs, a curb return and two more points
	if len(ring) < 4*6+1 {
		t.Errorf("the curb line has too few points: %d", len(ring))
	}
	reach := geometry.MetersFromFeet(math.Hypot(PlotDistance, HalfRoad)) + 1
	for _, p := range ring {
		if geometry.Distance(HoughtonAndStineCenter, p) > reach {
			t.Fatalf("curb point %v lies outside the plot", p)
		}
	}
}

func TestHoughtonAndStineRuns(t *testing.T) {
	sim, meta, err := engine.NewSimulationFromInput(HoughtonAndStine())
	if err != nil {
		t.Fatal(err)
	}
	if meta.RunTime != RunTime || meta.SimulationID == "" {
		t.Errorf("meta must carry the run time and a generated id, but got %+v", meta)
	}

	in := sim.Intersection()
	if !in.Contains(HoughtonAndStineCenter) {
		t.Errorf("the centre must lie inside the curb line")
	}
	for _, r := range in.Roads() {
		if !approxEqual(r.StopLinePosition(), 400.508, 1e-3) {
			t.Errorf("road %s stop line must be at 400.508 m, but got %f", r.Name(), r.StopLinePosition())
		}
		if !approxEqual(r.MaxDistance(), geometry.MetersFromFeet(2*PlotDistance), 1) {
			t.Errorf("road %s must be half a mile long, but got %f", r.Name(), r.MaxDistance())
		}
	}

	if err := sim.Run(); err != nil {
		t.Fatal(err)
	}
	history := sim.Slices()
	if len(history) != 101 {
		t.Fatalf("10 s must give 101 slices, but got %d", len(history))
	}
	for _, slice := range history {
		green := 0
		for _, c := range slice.Signal.Colors {
			if c == signal.Green {
				green++
			}
		}
		if green > 1 {
			t.Fatalf("t=%.1f: both roads are green", slice.Time)
		}
		for _, rs := range slice.Routes {
			for j := 1; j < len(rs.Cars); j++ {
				if rs.Cars[j].Position > rs.Cars[j-1].Position {
					t.Fatalf("t=%.1f: road %s car %d overtook the car ahead", slice.Time, rs.Road.Name(), j)
				}
			}
		}
	}
}

func TestHoughtonAndStineJSON(t *testing.T) {
	data, err := json.Marshal(HoughtonAndStine())
	if err != nil {
		t.Fatal(err)
	}
	out, err := engine.RunJSON(string(data))
	if err != nil {
		t.Fatal(err)
	}
	var simLog engine.SimulationLog
	if err := json.Unmarshal([]byte(out), &simLog); err != nil {
		t.Fatal(err)
	}
	if len(simLog.Output) != 101 {
		t.Errorf("10 s must give 101 rows, but got %d", len(simLog.Output))
	}
}
