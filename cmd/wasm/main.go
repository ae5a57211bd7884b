//go:build js && wasm

// Command wasm exposes the Green Light engine to the browser via WebAssembly.
// After loading, it registers two global JavaScript functions:
//
//	runSimulation(jsonString) -> jsonString
//	houghtonAndStine() -> jsonString
//
// runSimulation takes a JSON-encoded SimulationInput and returns the
// SimulationLog, matching the contract used by the CLI. houghtonAndStine
// returns the built-in scenario's input as a starting point for editing.
package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/cxd309/greenlight-engine/internal/engine"
	"github.com/cxd309/greenlight-engine/internal/scenario"
)

func main() {
	js.Global().Set("runSimulation", js.FuncOf(runSimulation))
	js.Global().Set("houghtonAndStine", js.FuncOf(houghtonAndStine))
	select {} // keep the WASM module alive until the page is closed
}

func runSimulation(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return map[string]any{"error": "no input provided"}
	}

	result, err := engine.RunJSON(args[0].String())
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return result
}

func houghtonAndStine(_ js.Value, _ []js.Value) any {
	out, err := json.Marshal(scenario.HoughtonAndStine())
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return string(out)
}
