// Package config provides configuration loading and access for the exhibit.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all exhibit configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Agents    AgentsConfig    `yaml:"agents"`
	Touch     TouchConfig     `yaml:"touch"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
	Language  LanguageConfig  `yaml:"language"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds lattice resolutions for the field simulations.
type GridConfig struct {
	ReactionSize   int `yaml:"reaction_size"`   // Gray-Scott lattice width/height
	OscillatorSize int `yaml:"oscillator_size"` // Kuramoto lattice width/height
}

// AgentsConfig holds agent simulation parameters.
type AgentsConfig struct {
	TableSize int     `yaml:"table_size"` // Agent table is TableSize x TableSize (one cell per agent)
	PointSize float64 `yaml:"point_size"` // Trail sprite diameter in pixels
}

// TouchConfig holds pointer interaction parameters.
type TouchConfig struct {
	Radius float64 `yaml:"radius"` // Injection radius in normalized grid units
}

// SnapshotConfig holds postcard export parameters.
type SnapshotConfig struct {
	Endpoint    string `yaml:"endpoint"`     // Assembly service URL (empty = local save only)
	FallbackDir string `yaml:"fallback_dir"` // Directory for local saves on transport failure
	Width       int    `yaml:"width"`        // Print resolution width (300 DPI postcard)
	Height      int    `yaml:"height"`
}

// LanguageConfig holds localization settings.
type LanguageConfig struct {
	Default string `yaml:"default"` // "cs" or "en"
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowTicks int `yaml:"window_ticks"` // Ticks per stats window in headless runs
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32   float32 // Screen.Width as float32
	ScreenH32   float32 // Screen.Height as float32
	AgentCount  int     // Agents.TableSize squared
	TouchRadius float32
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
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
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

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.AgentCount = c.Agents.TableSize * c.Agents.TableSize
	c.Derived.TouchRadius = float32(c.Touch.Radius)
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
