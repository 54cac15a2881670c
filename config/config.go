// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Game      GameConfig      `yaml:"game"`
	Scale     ScaleConfig     `yaml:"scale"`
	Damage    DamageConfig    `yaml:"damage"`
	Decals    DecalsConfig    `yaml:"decals"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Scenario  ScenarioConfig  `yaml:"scenario"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds simulation physics parameters.
type PhysicsConfig struct {
	DT           float64 `yaml:"dt"`
	GridCellSize float64 `yaml:"grid_cell_size"`
	Restitution  float64 `yaml:"restitution"` // bounciness of rigid-body contacts
}

// GameConfig holds win/lose conditions and the player's starting state.
type GameConfig struct {
	TargetMiles    float64 `yaml:"target_miles"`     // distance from origin that wins the episode
	TargetDays     float64 `yaml:"target_days"`      // in-game days the player has to get there
	TargetPadding  float64 `yaml:"target_padding"`   // extra seconds added to the deadline
	SecondsInADay  float64 `yaml:"seconds_in_a_day"` // real seconds per in-game day
	StartX         float64 `yaml:"start_x"`
	StartY         float64 `yaml:"start_y"`
	DudeHealth     float64 `yaml:"dude_health"`
	DudeSpeed      float64 `yaml:"dude_speed"` // pixels per second at full input
	ZombieSpeed    float64 `yaml:"zombie_speed"`
	ZombieSightPx  float64 `yaml:"zombie_sight"`
	CarAccel       float64 `yaml:"car_accel"`
	CarHealth      float64 `yaml:"car_health"`
	AutopilotSteer float64 `yaml:"autopilot_steer"` // heading jitter for headless runs
}

// ScaleConfig converts raw pixel distances into world units.
// 1 pixel == 4 inches, 3 pixels == 1 foot, 1 tile == 60 pixels == 20 feet.
type ScaleConfig struct {
	PixelsPerFoot float64 `yaml:"pixels_per_foot"`
	FeetPerMile   float64 `yaml:"feet_per_mile"`
	TileSize      float64 `yaml:"tile_size"`
}

// DamageConfig holds collision damage parameters.
type DamageConfig struct {
	ZombieBite  float64 `yaml:"zombie_bite"`  // health per second while a zombie is touching the dude
	CrashSpeed  float64 `yaml:"crash_speed"`  // relative speed (px/s) above which crashes hurt
	CrashDamage float64 `yaml:"crash_damage"` // health per px/s above crash_speed
	SplatSpeed  float64 `yaml:"splat_speed"`  // relative speed that kills a zombie
}

// DecalsConfig holds world decal parameters.
type DecalsConfig struct {
	MaxLife float64 `yaml:"max_life"` // seconds a splat stays on the map
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// ScenarioConfig lists sprite descriptors loaded at startup.
type ScenarioConfig struct {
	OffsetX float64  `yaml:"offset_x"`
	OffsetY float64  `yaml:"offset_y"`
	Sprites []string `yaml:"sprites"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	PixelsPerMile  float64 // Scale.FeetPerMile * Scale.PixelsPerFoot
	TargetTime     float64 // Game.TargetDays * Game.SecondsInADay + Game.TargetPadding
	SecondsPerHour float64 // Game.SecondsInADay / 24
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

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
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
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT)
	}
	if c.Physics.GridCellSize <= 0 {
		return fmt.Errorf("physics.grid_cell_size must be positive, got %v", c.Physics.GridCellSize)
	}
	if c.Game.SecondsInADay <= 0 {
		return fmt.Errorf("game.seconds_in_a_day must be positive, got %v", c.Game.SecondsInADay)
	}
	if c.Scale.PixelsPerFoot <= 0 || c.Scale.FeetPerMile <= 0 {
		return fmt.Errorf("scale factors must be positive")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.PixelsPerMile = c.Scale.FeetPerMile * c.Scale.PixelsPerFoot
	c.Derived.TargetTime = c.Game.TargetDays*c.Game.SecondsInADay + c.Game.TargetPadding
	c.Derived.SecondsPerHour = c.Game.SecondsInADay / 24
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
