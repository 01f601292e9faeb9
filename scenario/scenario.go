// Package scenario validates animal descriptors and loads scenario files.
package scenario

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/menagerie/components"
	"github.com/pthm-cable/menagerie/config"
)

//go:embed scenario.schema.json
var scenarioSchema string

// ErrInvalidDescriptor is returned when a descriptor or scenario file fails validation.
var ErrInvalidDescriptor = errors.New("invalid descriptor")

// Descriptor is a user request for a new animal.
type Descriptor struct {
	Species  string `yaml:"species" json:"species"`
	Size     int    `yaml:"size" json:"size"`
	HorSpeed int    `yaml:"hor_speed" json:"hor_speed"`
	VerSpeed int    `yaml:"ver_speed" json:"ver_speed"`
	Color    string `yaml:"color,omitempty" json:"color"`
}

// Scenario is an initial world loaded from a file.
type Scenario struct {
	Background string       `yaml:"background"`
	Food       []string     `yaml:"food"`
	Suspended  bool         `yaml:"suspended"`
	Animals    []Descriptor `yaml:"animals"`
}

// Validator checks descriptors against the configured species and limits.
type Validator struct {
	colors     []string
	descriptor *jsonschema.Schema
	file       *jsonschema.Schema
}

// NewValidator compiles the descriptor schema for cfg's species and limits.
func NewValidator(cfg *config.Config) (*Validator, error) {
	raw, err := json.Marshal(descriptorSchema(cfg))
	if err != nil {
		return nil, fmt.Errorf("building descriptor schema: %w", err)
	}
	desc, err := jsonschema.CompileString("descriptor.schema.json", string(raw))
	if err != nil {
		return nil, fmt.Errorf("compiling descriptor schema: %w", err)
	}
	file, err := jsonschema.CompileString("scenario.schema.json", scenarioSchema)
	if err != nil {
		return nil, fmt.Errorf("compiling scenario schema: %w", err)
	}
	return &Validator{
		colors:     cfg.Limits.Colors,
		descriptor: desc,
		file:       file,
	}, nil
}

func descriptorSchema(cfg *config.Config) map[string]any {
	names := make([]string, len(cfg.Species))
	for i, sp := range cfg.Species {
		names[i] = sp.Name
	}
	l := cfg.Limits
	speed := map[string]any{"type": "integer", "minimum": l.MinSpeed, "maximum": l.MaxSpeed}
	return map[string]any{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"species", "size", "hor_speed", "ver_speed", "color"},
		"properties": map[string]any{
			"species":   map[string]any{"enum": names},
			"size":      map[string]any{"type": "integer", "minimum": l.MinSize, "maximum": l.MaxSize},
			"hor_speed": speed,
			"ver_speed": speed,
			"color":     map[string]any{"enum": l.Colors},
		},
	}
}

// Normalize fills defaults: an empty color becomes the first configured color.
func (v *Validator) Normalize(d Descriptor) Descriptor {
	if d.Color == "" && len(v.colors) > 0 {
		d.Color = v.colors[0]
	}
	return d
}

// Validate normalizes d and checks it. Failures wrap ErrInvalidDescriptor.
func (v *Validator) Validate(d Descriptor) (Descriptor, error) {
	d = v.Normalize(d)
	doc, err := toJSONValue(d)
	if err != nil {
		return d, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}
	if err := v.descriptor.Validate(doc); err != nil {
		return d, fmt.Errorf("%w: %s: %v", ErrInvalidDescriptor, d.Species, err)
	}
	return d, nil
}

// ValidColor reports whether c is one of the configured colors.
func (v *Validator) ValidColor(c string) bool {
	for _, known := range v.colors {
		if known == c {
			return true
		}
	}
	return false
}

// Load reads and validates a YAML scenario file.
func (v *Validator) Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	return v.Parse(data)
}

// Parse validates YAML scenario data and every descriptor in it.
func (v *Validator) Parse(data []byte) (*Scenario, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	doc, err := toJSONValue(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}
	if err := v.file.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding scenario: %w", err)
	}
	if _, err := components.ParseBackground(s.Background); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}
	for _, f := range s.Food {
		if _, err := components.ParseFoodKind(f); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
		}
	}
	for i, d := range s.Animals {
		valid, err := v.Validate(d)
		if err != nil {
			return nil, fmt.Errorf("animal %d: %w", i, err)
		}
		s.Animals[i] = valid
	}
	return &s, nil
}

// toJSONValue converts v into the generic form the schema validator expects.
func toJSONValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
