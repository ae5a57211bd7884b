package signal

import (
	"math"
	"slices"

	"github.com/samber/lo"
)

// Phase is one combination of moving (true) and stopped (false) roads,
// index-aligned with the roads of a Signal.
type Phase []bool

// GreenRed renders the phase as plain green/red colours.
func (p Phase) GreenRed() []LightColor {
	return lo.Map(p, func(moving bool, _ int) LightColor {
		if moving {
			return Green
		}
		return Red
	})
}

// State is the colour of every light of a Signal at one instant, plus the
// shared countdown until the current yellow/waiting-red interval resolves.
//
// States are values: every method returns a new State and never modifies
// the receiver's colours.
type State struct {
	Colors          []LightColor `json:"colors"`
	YellowCountdown float64      `json:"yellow_countdown"` // seconds
}

// NewState returns a State holding a copy of colors.
func NewState(colors []LightColor, yellowCountdown float64) State {
	return State{Colors: slices.Clone(colors), YellowCountdown: yellowCountdown}
}

// AllRed returns a stable state with n red lights.
func AllRed(n int) State {
	colors := make([]LightColor, n)
	for i := range colors {
		colors[i] = Red
	}
	return State{Colors: colors}
}

// HasYellow reports whether any light is mid-clearance.
func (s State) HasYellow() bool {
	return lo.Contains(s.Colors, Yellow)
}

// Phase returns which roads are currently moving. Only red counts as
// stopped, so a yellow road is still moving and a waiting-red road already is.
func (s State) Phase() Phase {
	return lo.Map(s.Colors, func(c LightColor, _ int) bool { return c != Red })
}

// Target returns the phase the state settles into once its countdown ends.
func (s State) Target() Phase {
	return lo.Map(s.Colors, func(c LightColor, _ int) bool { return c == Green || c == WaitingRed })
}

// Advanced returns the state dt seconds later. The countdown never goes
// below zero; when it reaches zero every yellow turns red and every waiting
// red turns green in the same step. Green and red never change here.
func (s State) Advanced(dt float64) State {
	countdown := math.Max(0, s.YellowCountdown-dt)
	if countdown > 0 {
		return NewState(s.Colors, countdown)
	}

	colors := lo.Map(s.Colors, func(c LightColor, _ int) LightColor {
		switch c {
		case Yellow:
			return Red
		case WaitingRed:
			return Green
		default:
			return c
		}
	})
	return State{Colors: colors, YellowCountdown: 0}
}

// Equal reports whether both states show the same colours and countdown.
func (s State) Equal(other State) bool {
	return s.YellowCountdown == other.YellowCountdown && slices.Equal(s.Colors, other.Colors)
}
