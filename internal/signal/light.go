package signal

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// LightColor is the colour a light shows for its road.
type LightColor string

const (
	Green  LightColor = "green"
	Yellow LightColor = "yellow"
	Red    LightColor = "red"
	// WaitingRed is red that turns green as soon as the concurrent yellow
	// clearance interval elapses.
	WaitingRed LightColor = "waiting_red"
)

var lightColors = []LightColor{Green, Yellow, Red, WaitingRed}

// Valid reports whether c is one of the four light colours.
func (c LightColor) Valid() bool {
	return lo.Contains(lightColors, c)
}

// UnmarshalJSON rejects anything but the four light colours.
func (c *LightColor) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !LightColor(s).Valid() {
		return errors.Wrapf(ErrUnknownColor, "%q", s)
	}
	*c = LightColor(s)
	return nil
}

// Light is a signal head. Lights are identified by their location.
type Light struct {
	Location orb.Point `json:"location"`
}
