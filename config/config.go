// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Snapshots SnapshotsConfig `yaml:"snapshots"`
	Diet      DietConfig      `yaml:"diet"`
	Food      FoodConfig      `yaml:"food"`
	Species   []SpeciesConfig `yaml:"species"`
	Limits    LimitsConfig    `yaml:"limits"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Audio     AudioConfig     `yaml:"audio"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the shared world parameters.
type WorldConfig struct {
	MaxAnimals            int     `yaml:"max_animals"`             // Hard cap on animals in the world
	PoolCapacity          int     `yaml:"pool_capacity"`           // Behavior loops allowed to run at once
	EatDistance           float64 `yaml:"eat_distance"`            // Reach for plant/meat feeding
	CycleMS               int     `yaml:"cycle_ms"`                // Behavior loop period
	WeightLoss            float64 `yaml:"weight_loss"`             // Fraction of weight lost per unit travelled
	ArbitrationIntervalMS int     `yaml:"arbitration_interval_ms"` // Headless arbitration cadence
	MaxSpeed              float64 `yaml:"max_speed"`               // Per-axis clamp while steering to food
}

// SnapshotsConfig holds save/restore parameters.
type SnapshotsConfig struct {
	HistorySize int `yaml:"history_size"`
}

// DietConfig holds weight gain fractions per diet.
type DietConfig struct {
	CarnivoreGain float64 `yaml:"carnivore_gain"` // Fraction of own weight gained from meat
	HerbivoreGain float64 `yaml:"herbivore_gain"` // Fraction of own weight gained from vegetables
}

// FoodConfig holds food item parameters.
type FoodConfig struct {
	PlantWeight float64 `yaml:"plant_weight"`
	PlantHeight float64 `yaml:"plant_height"`
	MeatWeight  float64 `yaml:"meat_weight"`
	MeatHeight  float64 `yaml:"meat_height"`
}

// SpeciesConfig describes one animal species.
type SpeciesConfig struct {
	Name         string  `yaml:"name"`
	Diet         string  `yaml:"diet"`          // herbivore, carnivore or omnivore
	FoodType     string  `yaml:"food_type"`     // meat or not_food
	Sound        string  `yaml:"sound"`         // roar or chew
	WeightFactor float64 `yaml:"weight_factor"` // weight = size * weight_factor
	StartX       int     `yaml:"start_x"`
	StartY       int     `yaml:"start_y"`
}

// LimitsConfig bounds user supplied animal descriptors.
type LimitsConfig struct {
	MinSize  int      `yaml:"min_size"`
	MaxSize  int      `yaml:"max_size"`
	MinSpeed int      `yaml:"min_speed"`
	MaxSpeed int      `yaml:"max_speed"`
	Colors   []string `yaml:"colors"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds per stats window
}

// AudioConfig holds make-sound parameters.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 - 1.0
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	CenterX             int
	CenterY             int
	Cycle               time.Duration
	ArbitrationInterval time.Duration
	SpeciesIndex        map[string]int // name -> index into Species
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size %dx%d must be positive", c.Screen.Width, c.Screen.Height)
	}
	if c.World.MaxAnimals < 1 {
		return fmt.Errorf("world.max_animals must be at least 1, got %d", c.World.MaxAnimals)
	}
	if c.World.PoolCapacity < 1 {
		return fmt.Errorf("world.pool_capacity must be at least 1, got %d", c.World.PoolCapacity)
	}
	if c.World.CycleMS < 1 {
		return fmt.Errorf("world.cycle_ms must be at least 1, got %d", c.World.CycleMS)
	}
	if c.Snapshots.HistorySize < 1 {
		return fmt.Errorf("snapshots.history_size must be at least 1, got %d", c.Snapshots.HistorySize)
	}
	if len(c.Species) == 0 {
		return fmt.Errorf("no species configured")
	}
	for _, sp := range c.Species {
		switch sp.Diet {
		case "herbivore", "carnivore", "omnivore":
		default:
			return fmt.Errorf("species %q: unknown diet %q", sp.Name, sp.Diet)
		}
		switch sp.FoodType {
		case "meat", "not_food":
		default:
			return fmt.Errorf("species %q: unknown food type %q", sp.Name, sp.FoodType)
		}
		if sp.WeightFactor <= 0 {
			return fmt.Errorf("species %q: weight_factor must be positive", sp.Name)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.CenterX = c.Screen.Width / 2
	c.Derived.CenterY = c.Screen.Height / 2
	c.Derived.Cycle = time.Duration(c.World.CycleMS) * time.Millisecond
	c.Derived.ArbitrationInterval = time.Duration(c.World.ArbitrationIntervalMS) * time.Millisecond
	if c.Derived.ArbitrationInterval <= 0 {
		c.Derived.ArbitrationInterval = c.Derived.Cycle
	}

	c.Derived.SpeciesIndex = make(map[string]int, len(c.Species))
	for i, sp := range c.Species {
		c.Derived.SpeciesIndex[sp.Name] = i
	}
}

// SpeciesByName returns the species with the given name.
func (c *Config) SpeciesByName(name string) (SpeciesConfig, bool) {
	i, ok := c.Derived.SpeciesIndex[name]
	if !ok {
		return SpeciesConfig{}, false
	}
	return c.Species[i], true
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
