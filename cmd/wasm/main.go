//go:build js && wasm

// Command wasm exposes the tyre engine to the browser via WebAssembly.
// After loading, it registers two global JavaScript functions:
//
//	evaluateScenario(jsonString) -> jsonString
//	evaluateScenarioYAML(yamlString) -> jsonString
//
// Inputs are a Scenario document and the output is the EvaluationLog JSON,
// decoded with the same strict rules as the CLI. Failures are returned as
// {error: message}.
package main

import (
	"syscall/js"

	"github.com/cxd309/tyre-engine/internal/config"
)

func main() {
	js.Global().Set("evaluateScenario", js.FuncOf(documentFunc(config.FormatJSON)))
	js.Global().Set("evaluateScenarioYAML", js.FuncOf(documentFunc(config.FormatYAML)))
	select {} // keep the WASM module alive until the page is closed
}

func documentFunc(format config.Format) func(js.Value, []js.Value) any {
	return func(_ js.Value, args []js.Value) any {
		if len(args) < 1 {
			return map[string]any{"error": "no input provided"}
		}
		result, err := config.Run([]byte(args[0].String()), format)
		if err != nil {
			return map[string]any{"error": err.Error()}
		}
		return result
	}
}
