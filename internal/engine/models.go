package engine

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"github.com/cxd309/greenlight-engine/internal/road"
	"github.com/cxd309/greenlight-engine/internal/signal"
	"github.com/cxd309/greenlight-engine/internal/vehicle"
)

// Signal computer model names accepted in SimulationInput.
const (
	MaxFwdAccModelName  = "max_forward_acceleration"
	FixedCycleModelName = "fixed_cycle"
)

var ErrUnknownComputer = errors.New("unknown signal computer model")

// SimulationMeta holds the identity and timing parameters for a simulation run.
type SimulationMeta struct {
	SimulationID       string  `json:"simulation_id"`
	RunTime            float64 `json:"run_time"`                       // seconds
	TimeStep           float64 `json:"time_step"`                      // seconds
	ForwardLookingTime float64 `json:"forward_looking_time,omitempty"` // seconds
	ParallelLookahead  bool    `json:"parallel_lookahead,omitempty"`
}

// IntersectionData describes the junction geometry and its roads.
type IntersectionData struct {
	Center orb.Point   `json:"center"`
	Bounds orb.Ring    `json:"bounds,omitempty"`
	Roads  []road.Data `json:"roads"`
}

// LightData places the light controlling one road.
type LightData struct {
	Road     road.ID   `json:"road"`
	Location orb.Point `json:"location"`
}

// SignalData describes the signal. The order of Lights fixes the order of
// the colours in every signal state. InitialColors defaults to all red.
type SignalData struct {
	Lights          []LightData         `json:"lights"`
	Combinations    [][]road.ID         `json:"combinations"`
	InitialColors   []signal.LightColor `json:"initial_colors,omitempty"`
	YellowCountdown float64             `json:"yellow_countdown,omitempty"` // seconds
}

// RouteData lists the cars on one road. Cars may be given in any order.
type RouteData struct {
	Road road.ID       `json:"road"`
	Cars []vehicle.Car `json:"cars"`
}

// FixedCycleData configures a FixedCycleComputer.
type FixedCycleData struct {
	GreenTime float64 `json:"green_time"` // seconds
}

// ComputerData selects the signal computer.
type ComputerData struct {
	Model      string          `json:"model"`
	FixedCycle *FixedCycleData `json:"-"` // set by UnmarshalJSON
}

// computerDisc is the minimum JSON structure needed to read the model discriminator.
type computerDisc struct {
	Model string `json:"model"`
}

// UnmarshalJSON implements json.Unmarshaler for ComputerData.
// The "model" key selects the computer and the rest of the object is
// forwarded to that model's own settings.
//
// Supported models:
//   - "max_forward_acceleration" (default): look-ahead optimiser.
//   - "fixed_cycle": pre-timed phases, "green_time" seconds each.
func (c *ComputerData) UnmarshalJSON(data []byte) error {
	var disc computerDisc
	if err := json.Unmarshal(data, &disc); err != nil {
		return errors.Wrap(err, "reading computer model discriminator")
	}

	switch disc.Model {
	case "", MaxFwdAccModelName:
		*c = ComputerData{Model: MaxFwdAccModelName}
	case FixedCycleModelName:
		var fc FixedCycleData
		if err := json.Unmarshal(data, &fc); err != nil {
			return errors.Wrap(err, "parsing fixed cycle computer")
		}
		*c = ComputerData{Model: FixedCycleModelName, FixedCycle: &fc}
	default:
		return errors.Wrapf(ErrUnknownComputer, "%q", disc.Model)
	}
	return nil
}

// SimulationInput is the JSON-serialisable input to the engine.
type SimulationInput struct {
	Meta         SimulationMeta   `json:"simulation_meta"`
	Intersection IntersectionData `json:"intersection"`
	Signal       SignalData       `json:"signal"`
	Routes       []RouteData      `json:"routes"`
	Computer     ComputerData     `json:"computer"`
}

// SimulationLogRow is the state of the intersection at a single tick.
type SimulationLogRow struct {
	Timestamp  float64      `json:"timestamp"` // seconds
	Signal     signal.State `json:"signal"`
	Routes     []RouteData  `json:"routes"`
	TotalSpeed float64      `json:"total_speed"` // m/s, summed over all cars
}

// SimulationLog is the complete output of a simulation run.
type SimulationLog struct {
	Meta   SimulationMeta     `json:"simulation_meta"`
	Output []SimulationLogRow `json:"output"`
}
