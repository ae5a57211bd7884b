// Command greenlight reads a SimulationInput JSON from a file argument (or
// stdin), or builds a named scenario, runs the simulation, and writes the
// SimulationLog JSON to stdout. With -geojson-at it writes a GeoJSON
// snapshot of the intersection at that time instead.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/cxd309/greenlight-engine/internal/config"
	"github.com/cxd309/greenlight-engine/internal/engine"
	"github.com/cxd309/greenlight-engine/internal/player"
	"github.com/cxd309/greenlight-engine/internal/scenario"
)

func main() {
	_ = godotenv.Load()
	log.SetFlags(0)
	log.SetPrefix("greenlight: ")

	cfg := config.Load()
	scenarioName := flag.String("scenario", cfg.Scenario, fmt.Sprintf("built-in scenario to run instead of reading input %v", scenario.Names()))
	geojsonAt := flag.Float64("geojson-at", -1, "write a GeoJSON snapshot at this time (seconds) instead of the log")
	dumpInput := flag.Bool("dump-input", false, "write the resolved input JSON and exit")
	flag.Parse()

	input, err := readInput(*scenarioName, flag.Arg(0))
	if err != nil {
		log.Fatalf("error reading input: %v", err)
	}
	input = cfg.Apply(input)

	if *dumpInput {
		writeJSON(input)
		return
	}

	sim, meta, err := engine.NewSimulationFromInput(input)
	if err != nil {
		log.Fatalf("simulation error: %v", err)
	}
	log.Printf("run %s: %.1fs at %.2fs ticks, computer %q", meta.SimulationID, meta.RunTime, meta.TimeStep, input.Computer.Model)

	start := time.Now()
	if err := sim.Run(); err != nil {
		log.Fatalf("simulation error: %v", err)
	}
	log.Printf("simulated %d ticks in %s", len(sim.Slices())-1, time.Since(start))

	if *geojsonAt < 0 {
		writeJSON(engine.Log(sim, meta))
		return
	}

	p := player.New(sim)
	p.Seek(*geojsonAt)
	fc, err := p.FeatureCollection()
	if err != nil {
		log.Fatalf("snapshot error: %v", err)
	}
	writeJSON(fc)
}

// readInput builds the named scenario, or decodes the JSON file at path
// (stdin when path is empty).
func readInput(scenarioName, path string) (engine.SimulationInput, error) {
	if scenarioName != "" {
		return scenario.ByName(scenarioName)
	}

	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return engine.SimulationInput{}, err
	}

	var input engine.SimulationInput
	if err := json.Unmarshal(data, &input); err != nil {
		return engine.SimulationInput{}, errors.Wrap(err, "invalid input JSON")
	}
	return input, nil
}

func writeJSON(v any) {
	out, err := json.Marshal(v)
	if err != nil {
		log.Fatalf("error marshaling output: %v", err)
	}
	fmt.Println(string(out))
}
