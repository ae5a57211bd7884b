package config

import (
	"os"
	"strconv"

	"github.com/cxd309/greenlight-engine/internal/engine"
)

// Config holds the run settings read from the environment. Zero values mean
// "not set" and leave the simulation input alone.
type Config struct {
	// Input
	Scenario string

	// Timing
	RunTime            float64
	TimeTick           float64
	ForwardLookingTime float64

	// Signal computer
	Computer          string
	GreenTime         float64
	ParallelLookahead bool
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		Scenario: getEnv("GREENLIGHT_SCENARIO", ""),

		RunTime:            getEnvFloat("GREENLIGHT_RUN_TIME", 0),
		TimeTick:           getEnvFloat("GREENLIGHT_TIME_TICK", 0),
		ForwardLookingTime: getEnvFloat("GREENLIGHT_FORWARD_LOOKING_TIME", 0),

		Computer:          getEnv("GREENLIGHT_COMPUTER", ""),
		GreenTime:         getEnvFloat("GREENLIGHT_GREEN_TIME", 0),
		ParallelLookahead: getEnvBool("GREENLIGHT_PARALLEL_LOOKAHEAD", false),
	}
}

// Apply returns input with every setting that is set overriding it.
func (c *Config) Apply(input engine.SimulationInput) engine.SimulationInput {
	if c.RunTime > 0 {
		input.Meta.RunTime = c.RunTime
	}
	if c.TimeTick > 0 {
		input.Meta.TimeStep = c.TimeTick
	}
	if c.ForwardLookingTime > 0 {
		input.Meta.ForwardLookingTime = c.ForwardLookingTime
	}
	if c.ParallelLookahead {
		input.Meta.ParallelLookahead = true
	}
	if c.Computer != "" {
		// keeps the input's fixed-cycle settings
		input.Computer.Model = c.Computer
	}
	if input.Computer.Model == engine.FixedCycleModelName && c.GreenTime > 0 {
		input.Computer.FixedCycle = &engine.FixedCycleData{GreenTime: c.GreenTime}
	}
	return input
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
