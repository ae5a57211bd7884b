package config

import (
	"testing"

	"github.com/cxd309/greenlight-engine/internal/engine"
)

func TestLoad(t *testing.T) {
	t.Setenv("GREENLIGHT_SCENARIO", "houghton-stine")
	t.Setenv("GREENLIGHT_RUN_TIME", "30")
	t.Setenv("GREENLIGHT_TIME_TICK", "not a number")
	t.Setenv("GREENLIGHT_PARALLEL_LOOKAHEAD", "true")

	cfg := Load()
	if cfg.Scenario != "houghton-stine" || cfg.RunTime != 30 || !cfg.ParallelLookahead {
		t.Errorf("set variables must be read, but got %+v", cfg)
	}
	if cfg.TimeTick != 0 || cfg.Computer != "" {
		t.Errorf("unset or malformed variables must keep their defaults, but got %+v", cfg)
	}
}

func TestApply(t *testing.T) {
	input := engine.SimulationInput{
		Meta:     engine.SimulationMeta{RunTime: 10, TimeStep: 0.1},
		Computer: engine.ComputerData{Model: engine.MaxFwdAccModelName},
	}

	got := (&Config{}).Apply(input)
	if got.Meta != input.Meta || got.Computer.Model != engine.MaxFwdAccModelName {
		t.Errorf("an empty config must leave the input alone, but got %+v", got)
	}

	cfg := &Config{RunTime: 60, ForwardLookingTime: 5, Computer: engine.FixedCycleModelName, GreenTime: 20}
	got = cfg.Apply(input)
	if got.Meta.RunTime != 60 || got.Meta.TimeStep != 0.1 || got.Meta.ForwardLookingTime != 5 {
		t.Errorf("set timings must override the input, but got %+v", got.Meta)
	}
	if got.Computer.Model != engine.FixedCycleModelName || got.Computer.FixedCycle == nil || got.Computer.FixedCycle.GreenTime != 20 {
		t.Errorf("the computer must switch to a 20 s fixed cycle, but got %+v", got.Computer)
	}

	fixed := engine.SimulationInput{
		Computer: engine.ComputerData{
			Model:      engine.FixedCycleModelName,
			FixedCycle: &engine.FixedCycleData{GreenTime: 45},
		},
	}
	got = (&Config{Computer: engine.FixedCycleModelName}).Apply(fixed)
	if got.Computer.FixedCycle == nil || got.Computer.FixedCycle.GreenTime != 45 {
		t.Errorf("naming the same computer must keep the input's green time, but got %+v", got.Computer)
	}
}
