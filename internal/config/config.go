// Package config loads evaluation scenarios from YAML or JSON documents.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/cxd309/tyre-engine/internal/engine"
)

// Format names a scenario document encoding.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a flag value onto a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want auto, json or yaml)", s)
	}
}

// FormatForPath picks the format from a file extension, falling back to auto.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// Load reads and parses the scenario file at path.
func Load(path string, format Format) (engine.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.Scenario{}, fmt.Errorf("reading scenario: %w", err)
	}
	if format == FormatAuto {
		format = FormatForPath(path)
	}
	return Parse(data, format)
}

// Parse decodes a scenario document. Unknown keys are rejected and car
// parameters that are omitted keep their defaults. FormatAuto treats input
// starting with '{' as JSON and anything else as YAML.
func Parse(data []byte, format Format) (engine.Scenario, error) {
	if format == FormatAuto {
		format = sniff(data)
	}
	var s engine.Scenario
	switch format {
	case FormatJSON:
		decoded, err := engine.DecodeJSON(data)
		if err != nil {
			return engine.Scenario{}, fmt.Errorf("invalid scenario JSON: %w", err)
		}
		s = decoded
	case FormatYAML:
		s = engine.NewScenario()
		if err := yaml.UnmarshalStrict(data, &s); err != nil {
			return engine.Scenario{}, fmt.Errorf("invalid scenario YAML: %w", err)
		}
	default:
		return engine.Scenario{}, fmt.Errorf("unsupported format %q", format)
	}
	return s, nil
}

func sniff(data []byte) Format {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

// Run parses a scenario document, evaluates it, and returns the JSON-encoded
// EvaluationLog.
func Run(data []byte, format Format) (string, error) {
	s, err := Parse(data, format)
	if err != nil {
		return "", err
	}
	return engine.RunScenario(s)
}
