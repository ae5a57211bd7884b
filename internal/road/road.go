// Package road provides the immutable Road type: a named polyline with
// derived arc-length and heading tables, its stop line, and the dilemma-zone
// physics (yellow duration, stopping distance, decision threshold) that
// follow from its speed limit and approach grade.
package road

import (
	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"github.com/cxd309/greenlight-engine/internal/geometry"
	"github.com/cxd309/greenlight-engine/internal/kinematics"
)

// ID identifies a road. Names must be unique within an intersection and a signal.
type ID = string

// Physics constants for yellow timing.
const (
	Gravity                = 9.8                         // m/s²
	YellowDecelerationRate = 10 * geometry.MetersPerFoot // m/s², 10 ft/s² comfortable braking
	DriverReactionTime     = 1.0                         // seconds
)

// Limits on generated line samples.
const (
	MinLineResolution = 0.1 // metres
	MaxLinePoints     = 100_000
)

var (
	ErrMissingName             = errors.New("road has no name")
	ErrTooFewPoints            = errors.New("road needs at least two points")
	ErrNonIncreasingDistance   = errors.New("road points must have strictly increasing arc-length")
	ErrInvalidSpeedLimit       = errors.New("speed limit must be positive")
	ErrStopLineOutOfRange      = errors.New("stop line must lie on the road")
	ErrNonPositiveDeceleration = errors.New("graded deceleration must be positive")
	ErrPositionOutOfRange      = errors.New("position is beyond the end of the road")
	ErrResolutionTooFine       = errors.New("line resolution is too fine")
)

// LineData generates road points by sampling a straight line.
type LineData struct {
	From       orb.Point `json:"from"`
	To         orb.Point `json:"to"`
	Resolution float64   `json:"resolution"` // metres
}

// Data is the serialisable definition of a road. Exactly one of Points or
// Line should be set; literal points win when both are present.
type Data struct {
	Name             ID             `json:"name"`
	SpeedLimit       float64        `json:"speed_limit"`              // m/s
	ApproachGrade    float64        `json:"approach_grade,omitempty"` // m/m, positive is uphill
	StopLinePosition float64        `json:"stop_line_position"`       // metres along the road
	Points           orb.LineString `json:"points,omitempty"`
	Line             *LineData      `json:"line,omitempty"`
}

// Road is an immutable polyline addressed by a 1-D arc-length position.
type Road struct {
	name          ID
	speedLimit    float64
	approachGrade float64
	stopLine      float64
	points        orb.LineString
	distances     []float64 // cumulative arc-length, strictly increasing
	headings      []float64 // compass degrees towards the next point
}

// Option configures optional road attributes.
type Option func(*Road)

// WithApproachGrade sets the approach grade (m/m, positive is uphill).
func WithApproachGrade(grade float64) Option {
	return func(r *Road) {
		r.approachGrade = grade
	}
}

// New builds a Road from its samples, deriving the arc-length and heading
// tables. It returns an error if the geometry or physics would be degenerate.
func New(name ID, speedLimit, stopLinePosition float64, points orb.LineString, options ...Option) (*Road, error) {
	r := &Road{
		name:       name,
		speedLimit: speedLimit,
		stopLine:   stopLinePosition,
		points:     points.Clone(),
	}
	for _, option := range options {
		option(r)
	}

	if name == "" {
		return nil, ErrMissingName
	}
	if len(points) < 2 {
		return nil, errors.Wrapf(ErrTooFewPoints, "road %q has %d", name, len(points))
	}
	if speedLimit <= 0 {
		return nil, errors.Wrapf(ErrInvalidSpeedLimit, "road %q: %f", name, speedLimit)
	}

	r.distances = geometry.CumulativeDistances(r.points)
	r.headings = geometry.Headings(r.points)
	if len(r.points) != len(r.distances) || len(r.points) != len(r.headings) {
		return nil, errors.Errorf("road %q: %d points, %d distances, %d headings", name, len(r.points), len(r.distances), len(r.headings))
	}
	for i := 1; i < len(r.distances); i++ {
		if r.distances[i] <= r.distances[i-1] {
			return nil, errors.Wrapf(ErrNonIncreasingDistance, "road %q at point %d", name, i)
		}
	}

	if stopLinePosition < 0 || stopLinePosition > r.MaxDistance() {
		return nil, errors.Wrapf(ErrStopLineOutOfRange, "road %q: stop line %f, length %f", name, stopLinePosition, r.MaxDistance())
	}
	if r.GradedDeceleration() <= 0 {
		return nil, errors.Wrapf(ErrNonPositiveDeceleration, "road %q: grade %f", name, r.approachGrade)
	}
	return r, nil
}

// FromData builds a Road from its serialisable definition.
func FromData(d Data) (*Road, error) {
	points := d.Points
	if len(points) == 0 && d.Line != nil {
		res := d.Line.Resolution
		if res > 0 && (res < MinLineResolution || geometry.Distance(d.Line.From, d.Line.To)/res > MaxLinePoints) {
			return nil, errors.Wrapf(ErrResolutionTooFine, "road %q resolution %g m", d.Name, res)
		}
		points = geometry.Line(d.Line.From, d.Line.To, res)
	}
	return New(d.Name, d.SpeedLimit, d.StopLinePosition, points, WithApproachGrade(d.ApproachGrade))
}

// Data returns the serialisable definition of r with literal points.
func (r *Road) Data() Data {
	return Data{
		Name:             r.name,
		SpeedLimit:       r.speedLimit,
		ApproachGrade:    r.approachGrade,
		StopLinePosition: r.stopLine,
		Points:           r.points.Clone(),
	}
}

func (r *Road) Name() ID                  { return r.name }
func (r *Road) SpeedLimit() float64       { return r.speedLimit }
func (r *Road) ApproachGrade() float64    { return r.approachGrade }
func (r *Road) StopLinePosition() float64 { return r.stopLine }
func (r *Road) Points() orb.LineString    { return r.points.Clone() }
func (r *Road) StartPosition() orb.Point  { return r.points[0] }
func (r *Road) MaxDistance() float64      { return r.distances[len(r.distances)-1] }

// GradedDeceleration is the comfortable yellow-light deceleration corrected
// for the approach grade: uphill helps braking, downhill hurts it.
func (r *Road) GradedDeceleration() float64 {
	return YellowDecelerationRate + Gravity*r.approachGrade
}

// StoppingTime is the time to brake from the speed limit at GradedDeceleration.
func (r *Road) StoppingTime() float64 {
	return kinematics.StoppingTime(r.speedLimit, r.GradedDeceleration())
}

// YellowLightDuration is the reaction time plus StoppingTime, assuming the
// approach speed is the speed limit.
func (r *Road) YellowLightDuration() float64 {
	return DriverReactionTime + r.StoppingTime()
}

// StoppingDistance is the distance to brake from the speed limit at GradedDeceleration.
func (r *Road) StoppingDistance() float64 {
	return kinematics.StoppingDistance(r.speedLimit, r.GradedDeceleration())
}

// DecisionThreshold is the position after which a car at the speed limit can
// no longer stop comfortably before the stop line.
func (r *Road) DecisionThreshold() float64 {
	return r.stopLine - r.StoppingDistance()
}
