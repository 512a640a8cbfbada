// Package config provides configuration loading and access for the engine.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Fluid     FluidConfig     `yaml:"fluid"`
	Scene     SceneConfig     `yaml:"scene"`
	Fracture  FractureConfig  `yaml:"fracture"`
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

// PhysicsConfig holds frame pacing parameters.
type PhysicsConfig struct {
	DT             float64 `yaml:"dt"`               // Seconds per simulation step
	StepsPerUpdate int     `yaml:"steps_per_update"` // Simulation steps per frame
}

// FluidConfig holds the SPH simulation parameters.
type FluidConfig struct {
	ParticleCount     int        `yaml:"particle_count"`
	SmoothingRadius   float64    `yaml:"smoothing_radius"`
	RestDensity       float64    `yaml:"rest_density"`
	Viscosity         float64    `yaml:"viscosity"`
	PressureStiffness float64    `yaml:"pressure_stiffness"`
	Gravity           [3]float64 `yaml:"gravity"`
	BoundaryMin       [3]float64 `yaml:"boundary_min"`
	BoundaryMax       [3]float64 `yaml:"boundary_max"`
	BoundaryDamping   float64    `yaml:"boundary_damping"`
	SeedMin           [3]float64 `yaml:"seed_min"`
	SeedMax           [3]float64 `yaml:"seed_max"`
	Workers           int        `yaml:"workers"`  // 0 = GOMAXPROCS
	UseGrid           bool       `yaml:"use_grid"` // Spatial grid vs all-pairs neighbor scan
}

// SceneConfig holds demo scene parameters.
type SceneConfig struct {
	CameraFOV      float64    `yaml:"camera_fov"`
	CameraPosition [3]float64 `yaml:"camera_position"` // Initial orbit camera placement
	CubePosition   [3]float64 `yaml:"cube_position"`
	CubeSize       [3]float64 `yaml:"cube_size"`
	GroundY        float64    `yaml:"ground_y"` // Floor plane for rigid fragments
}

// FractureConfig holds destruction system parameters.
type FractureConfig struct {
	MaterialStrength float64 `yaml:"material_strength"`
	CubeHealth       float64 `yaml:"cube_health"`
	ClickDamage      float64 `yaml:"click_damage"`
	AuxiliarySites   int     `yaml:"auxiliary_sites"` // Extra random Voronoi sites per fracture
	ImpactJitter     float64 `yaml:"impact_jitter"`   // Spread of secondary impact points
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // Seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // Steps averaged for perf logging
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32      float32 // Physics.DT as float32
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
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

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	if c.Physics.StepsPerUpdate < 1 {
		c.Physics.StepsPerUpdate = 1
	}
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
