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
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Creature   CreatureConfig   `yaml:"creature"`
	Muscle     MuscleConfig     `yaml:"muscle"`
	Population PopulationConfig `yaml:"population"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the shared environment parameters.
// Coordinates are y-down: the ground line is a horizontal plane at GroundY.
type WorldConfig struct {
	GroundY    float64 `yaml:"ground_y"`    // ground plane position
	Gravity    float64 `yaml:"gravity"`     // downward acceleration per step
	AirDamping float64 `yaml:"air_damping"` // velocity fraction retained per step
	SpawnX     float64 `yaml:"spawn_x"`     // creature spawn point (off-screen)
	SpawnY     float64 `yaml:"spawn_y"`
}

// PhysicsConfig holds internal spring-mass world parameters.
type PhysicsConfig struct {
	DTMs                 float64 `yaml:"dt_ms"`                 // nominal step, decoupled from wall clock
	ConstraintIterations int     `yaml:"constraint_iterations"` // spring solver passes per step
	CollisionCategory    uint32  `yaml:"collision_category"`    // category assigned to creature bodies
	GroundRestitution    float64 `yaml:"ground_restitution"`    // bounce fraction retained on ground contact
}

// CreatureConfig holds topology generation parameters.
type CreatureConfig struct {
	MinBodies       int     `yaml:"min_bodies"`
	MaxBodies       int     `yaml:"max_bodies"`
	MinRingRadius   float64 `yaml:"min_ring_radius"`
	MaxRingRadius   float64 `yaml:"max_ring_radius"`
	PlacementJitter float64 `yaml:"placement_jitter"` // per-axis body position jitter
	BodyRadius      float64 `yaml:"body_radius"`
}

// MuscleRangeConfig holds the random parameter ranges for one class of muscle.
type MuscleRangeConfig struct {
	MinStiffness float64 `yaml:"min_stiffness"`
	MaxStiffness float64 `yaml:"max_stiffness"`
	MinPeriodMs  float64 `yaml:"min_period_ms"`
	MaxPeriodMs  float64 `yaml:"max_period_ms"`
	MinExtension float64 `yaml:"min_extension"`
	MaxExtension float64 `yaml:"max_extension"`
}

// MuscleConfig holds muscle parameter ranges for ring and cross-link muscles.
// Cross-links are biased toward longer periods and larger extension.
type MuscleConfig struct {
	Ring      MuscleRangeConfig `yaml:"ring"`
	CrossLink MuscleRangeConfig `yaml:"cross_link"`

	ClonePeriodJitter    float64 `yaml:"clone_period_jitter"`    // relative, e.g. 0.05
	CloneExtensionJitter float64 `yaml:"clone_extension_jitter"` // relative, e.g. 0.02
}

// PopulationConfig holds lifecycle scheduling parameters.
type PopulationConfig struct {
	Capacity        int     `yaml:"capacity"`          // max concurrently live creatures
	LifetimeMs      float64 `yaml:"lifetime_ms"`       // age at which a creature is frozen
	SpawnIntervalMs float64 `yaml:"spawn_interval_ms"` // trickle cadence
	ProtectedTopN   int     `yaml:"protected_top_n"`   // never cull a current top-N creature
	GenerationSize  int     `yaml:"generation_size"`   // spawns per generation increment
	LeaderboardSize int     `yaml:"leaderboard_size"`  // exposed ranks
}

// TelemetryConfig holds stats and output settings.
type TelemetryConfig struct {
	StatsWindowSec  float64 `yaml:"stats_window_sec"`
	HistogramBucket float64 `yaml:"histogram_bucket"` // distance bucket width
	OutputDir       string  `yaml:"output_dir"`       // empty = output disabled
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32            float32 // Physics.DTMs as float32
	GroundY32       float32
	TicksPerTrickle int // spawn interval expressed in nominal steps
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

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the simulation cannot run with.
func (c *Config) validate() error {
	if c.Physics.DTMs <= 0 {
		return fmt.Errorf("config: physics.dt_ms must be positive, got %v", c.Physics.DTMs)
	}
	if c.Population.Capacity < 1 {
		return fmt.Errorf("config: population.capacity must be at least 1, got %d", c.Population.Capacity)
	}
	if c.Population.SpawnIntervalMs <= 0 {
		return fmt.Errorf("config: population.spawn_interval_ms must be positive, got %v", c.Population.SpawnIntervalMs)
	}
	if c.Population.LifetimeMs <= 0 {
		return fmt.Errorf("config: population.lifetime_ms must be positive, got %v", c.Population.LifetimeMs)
	}
	if c.Creature.MinBodies < 2 || c.Creature.MaxBodies < c.Creature.MinBodies {
		return fmt.Errorf("config: creature body count range [%d, %d] is invalid",
			c.Creature.MinBodies, c.Creature.MaxBodies)
	}
	ranges := []struct {
		name string
		r    MuscleRangeConfig
	}{
		{"muscle.ring", c.Muscle.Ring},
		{"muscle.cross_link", c.Muscle.CrossLink},
	}
	for _, m := range ranges {
		if m.r.MinExtension < 1 {
			return fmt.Errorf("config: %s.min_extension must be >= 1, got %v", m.name, m.r.MinExtension)
		}
		if m.r.MinStiffness <= 0 || m.r.MaxStiffness > 1 {
			return fmt.Errorf("config: %s stiffness range (%v, %v) must lie in (0, 1]",
				m.name, m.r.MinStiffness, m.r.MaxStiffness)
		}
		if m.r.MinPeriodMs <= 0 {
			return fmt.Errorf("config: %s.min_period_ms must be positive, got %v", m.name, m.r.MinPeriodMs)
		}
	}
	if c.Telemetry.HistogramBucket <= 0 {
		return fmt.Errorf("config: telemetry.histogram_bucket must be positive, got %v", c.Telemetry.HistogramBucket)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DTMs)
	c.Derived.GroundY32 = float32(c.World.GroundY)

	ticks := int(c.Population.SpawnIntervalMs / c.Physics.DTMs)
	if ticks < 1 {
		ticks = 1
	}
	c.Derived.TicksPerTrickle = ticks
}

// WriteYAML saves the configuration to a YAML file.
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
