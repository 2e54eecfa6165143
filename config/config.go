// Package config provides configuration loading and access for the
// camera pipeline and the demo.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all tunable parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Camera    CameraConfig    `yaml:"camera"`
	Depth     DepthConfig     `yaml:"depth"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// CameraConfig holds projection and shake tuning.
type CameraConfig struct {
	// ProjectionScale is the fixed vertical world extent visible at
	// scale 1.
	ProjectionScale float64 `yaml:"projection_scale"`
	ZoomMin         float64 `yaml:"zoom_min"`
	ZoomMax         float64 `yaml:"zoom_max"`

	// Shake tuning; see the camera package for semantics.
	NoiseStrength            float64 `yaml:"noise_strength"`
	TranslationShakeStrength float64 `yaml:"translation_shake_strength"`
	RotationShakeStrength    float64 `yaml:"rotation_shake_strength"`
}

// DepthConfig holds depth assignment settings.
type DepthConfig struct {
	// Scale maps world Y into the renderer's depth range.
	Scale float64 `yaml:"scale"`
}

// PhysicsConfig holds chipmunk space settings.
type PhysicsConfig struct {
	GravityX   float64 `yaml:"gravity_x"`
	GravityY   float64 `yaml:"gravity_y"`
	Iterations int     `yaml:"iterations"`
}

// TelemetryConfig holds trace output settings.
type TelemetryConfig struct {
	// TraceWindow is the number of frames per statistics window.
	TraceWindow int    `yaml:"trace_window"`
	OutputDir   string `yaml:"output_dir"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded
// defaults if path is empty. Must be called before Cfg().
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

// Apply installs a reloaded configuration as the global one. Call it
// from the same goroutine that reads Cfg(); the watcher never touches
// the global itself.
func Apply(cfg *Config) {
	global = cfg
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
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
		// Unmarshal into the same struct - only overwrites fields
		// present in the file.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	return cfg, nil
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
