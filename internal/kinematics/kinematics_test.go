package kinematics

import (
	"math"
	"testing"
)

func TestStoppingFormulas(t *testing.T) {
	if got := StoppingTime(20, 4); got != 5 {
		t.Errorf("StoppingTime must be 5, but got %f", got)
	}
	if got := StoppingDistance(20, 4); got != 50 {
		t.Errorf("StoppingDistance must be 50, but got %f", got)
	}
	if !math.IsInf(StoppingDistance(20, 0), 1) || !math.IsInf(StoppingTime(20, -1), 1) {
		t.Errorf("non-positive deceleration must give infinite stopping distance and time")
	}
}

func TestAccelerationToStop(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		gap  float64
		want float64
	}{
		{"target ahead", 20, 50, -4},
		{"stationary before target", 0, 10, 0},
		{"stationary at target", 0, 0, 0},
		{"stationary past target", 0, -3, 0},
		{"moving at target", 5, 0, math.Inf(-1)},
		{"moving past target", 5, -1, math.Inf(-1)},
	}
	for _, tt := range tests {
		got := AccelerationToStop(tt.v, tt.gap)
		if math.IsNaN(got) {
			t.Errorf("%s: got NaN", tt.name)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: AccelerationToStop(%f, %f) must be %f, but got %f", tt.name, tt.v, tt.gap, tt.want, got)
		}
	}
}

func TestLimits(t *testing.T) {
	l := Limits{MaxDeceleration: 3.92, StandstillSpeed: 0.05}

	if got := l.Clamp(math.Inf(-1)); got != -3.92 {
		t.Errorf("Clamp(-Inf) must be -3.92, but got %f", got)
	}
	if got := l.Clamp(0.98); got != 0.98 {
		t.Errorf("Clamp must pass positive values through, but got %f", got)
	}

	pos, v := l.Step(10, 10, 1, 0.1)
	if math.Abs(v-10.1) > 1e-12 || math.Abs(pos-11.01) > 1e-12 {
		t.Errorf("semi-implicit step: got pos %f v %f", pos, v)
	}

	pos, v = l.Step(10, 0.2, -3, 0.1)
	if v != 0 || pos != 10 {
		t.Errorf("braking below standstill must stop in place, got pos %f v %f", pos, v)
	}

	pos, v = l.Step(10, 0, 0.2, 0.1)
	if v <= 0 || pos <= 10 {
		t.Errorf("pulling away from rest must not be snapped, got pos %f v %f", pos, v)
	}
}

func TestSafeSpeed(t *testing.T) {
	if got := SafeSpeed(0, 50, 4, 0); math.Abs(got-20) > 1e-12 {
		t.Errorf("without reaction time the safe speed is the one that stops in the gap, 20, but got %f", got)
	}

	v := SafeSpeed(0, 50, 4, 1)
	if covered := v*1 + StoppingDistance(v, 4); math.Abs(covered-50) > 1e-9 {
		t.Errorf("reacting for 1 s then braking from %f must cover exactly 50 m, but covers %f", v, covered)
	}

	if got := SafeSpeed(15, 0, 4, 0); math.Abs(got-15) > 1e-12 {
		t.Errorf("right behind a leader braking just as hard the safe speed is the leader's, but got %f", got)
	}
	if got := SafeSpeed(0, -5, 2, 1); !math.IsInf(got, -1) {
		t.Errorf("inside the gap of a stopped leader no speed is safe, but got %f", got)
	}
}
