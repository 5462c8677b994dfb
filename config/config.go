// Package config holds the tunables of a scene session. Defaults match the
// behaviour of the original demo; a YAML file can override any subset.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/arscene/scene"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// CarryDistance is how far in front of the observer new and carried
	// objects are held.
	CarryDistance float64 `yaml:"carry_distance"`

	Tick         Tick         `yaml:"tick"`
	Motion       Motion       `yaml:"motion"`
	Spawn        Spawn        `yaml:"spawn"`
	Manipulation Manipulation `yaml:"manipulation"`
	Drag         Drag         `yaml:"drag"`
	Projectile   Projectile   `yaml:"projectile"`
	Snapshot     Snapshot     `yaml:"snapshot"`
	Input        Input        `yaml:"input"`
	Log          Log          `yaml:"log"`
}

type Tick struct {
	Rate float64 `yaml:"rate"`
}

type Motion struct {
	// Epsilon is the speed below which a record is treated as at rest.
	Epsilon float64 `yaml:"epsilon"`
}

type Spawn struct {
	Enabled            bool           `yaml:"enabled"`
	InitialDelayFrames int            `yaml:"initial_delay_frames"`
	IntervalFrames     int            `yaml:"interval_frames"`
	Range              float64        `yaml:"range"`
	Speed              float64        `yaml:"speed"`
	Scale              float64        `yaml:"scale"`
	Radius             float64        `yaml:"radius"`
	Material           scene.Material `yaml:"material"`
	// Seed fixes the spawn placement sequence. Zero picks a random seed.
	Seed uint64 `yaml:"seed"`
}

type Manipulation struct {
	RotateSteps     int            `yaml:"rotate_steps"`
	TranslateStep   float64        `yaml:"translate_step"`
	ScaleFactor     float64        `yaml:"scale_factor"`
	ObjectScale     float64        `yaml:"object_scale"`
	ObjectMaterial  scene.Material `yaml:"object_material"`
	InitialVelocity mgl64.Vec3     `yaml:"initial_velocity"`
}

type Drag struct {
	Enabled         bool    `yaml:"enabled"`
	ApproachSeconds float64 `yaml:"approach_seconds"`
	Decay           float64 `yaml:"decay"`
}

type Projectile struct {
	Speed    float64        `yaml:"speed"`
	TTL      float64        `yaml:"ttl"`
	Scale    float64        `yaml:"scale"`
	Radius   float64        `yaml:"radius"`
	Material scene.Material `yaml:"material"`
}

type Snapshot struct {
	// Dir is where snapshots are written. Empty keeps them in memory.
	Dir string `yaml:"dir"`
	Key string `yaml:"key"`
}

// Tap-miss policies.
const (
	TapMissFire = "fire"
	TapMissAdd  = "add"
	TapMissNone = "none"
)

type Input struct {
	// TapMiss is what a tap that hits nothing does.
	TapMiss string `yaml:"tap_miss"`
}

type Log struct {
	Level    string   `yaml:"level"`
	Encoding string   `yaml:"encoding"`
	Output   []string `yaml:"output"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		CarryDistance: 0.3,
		Tick:          Tick{Rate: 60},
		Motion:        Motion{Epsilon: 1e-4},
		Spawn: Spawn{
			Enabled:            true,
			InitialDelayFrames: 120,
			IntervalFrames:     480,
			Range:              2,
			Speed:              0.2,
			Scale:              0.2,
			Radius:             scene.DefaultRadius,
			Material:           scene.Material{Kind: scene.KindJet, Tint: [3]uint8{200, 200, 210}},
		},
		Manipulation: Manipulation{
			RotateSteps:     18,
			TranslateStep:   0.005,
			ScaleFactor:     1.1,
			ObjectScale:     1,
			ObjectMaterial:  scene.Material{Kind: scene.KindCube, Tint: [3]uint8{120, 180, 255}},
			InitialVelocity: mgl64.Vec3{0, 0, 1e-5},
		},
		Drag: Drag{
			Enabled:         true,
			ApproachSeconds: 5,
			Decay:           0.9,
		},
		Projectile: Projectile{
			Speed:    4,
			TTL:      10,
			Scale:    0.2,
			Radius:   scene.DefaultRadius,
			Material: scene.Material{Kind: scene.KindBullet, Tint: [3]uint8{255, 210, 80}},
		},
		Snapshot: Snapshot{Key: "sceneObjects"},
		Input:    Input{TapMiss: TapMissFire},
		Log: Log{
			Level:    "info",
			Encoding: "console",
			Output:   []string{"stderr"},
		},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r over the defaults and validates the result.
// Unknown keys are rejected. An empty document yields the defaults.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every out-of-range value.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.CarryDistance >= 0, "carry_distance must be >= 0, got %v", c.CarryDistance)
	check(c.Tick.Rate > 0, "tick.rate must be > 0, got %v", c.Tick.Rate)
	check(c.Motion.Epsilon >= 0, "motion.epsilon must be >= 0, got %v", c.Motion.Epsilon)

	check(c.Spawn.InitialDelayFrames >= 0, "spawn.initial_delay_frames must be >= 0, got %d", c.Spawn.InitialDelayFrames)
	check(c.Spawn.IntervalFrames > 0, "spawn.interval_frames must be > 0, got %d", c.Spawn.IntervalFrames)
	check(c.Spawn.Range >= 0, "spawn.range must be >= 0, got %v", c.Spawn.Range)
	check(c.Spawn.Speed >= 0, "spawn.speed must be >= 0, got %v", c.Spawn.Speed)
	check(c.Spawn.Scale > 0, "spawn.scale must be > 0, got %v", c.Spawn.Scale)
	check(c.Spawn.Radius >= 0, "spawn.radius must be >= 0, got %v", c.Spawn.Radius)

	check(c.Manipulation.RotateSteps > 0, "manipulation.rotate_steps must be > 0, got %d", c.Manipulation.RotateSteps)
	check(c.Manipulation.TranslateStep > 0, "manipulation.translate_step must be > 0, got %v", c.Manipulation.TranslateStep)
	check(c.Manipulation.ScaleFactor > 1, "manipulation.scale_factor must be > 1, got %v", c.Manipulation.ScaleFactor)
	check(c.Manipulation.ObjectScale > 0, "manipulation.object_scale must be > 0, got %v", c.Manipulation.ObjectScale)

	check(c.Drag.ApproachSeconds > 0, "drag.approach_seconds must be > 0, got %v", c.Drag.ApproachSeconds)
	check(c.Drag.Decay > 0 && c.Drag.Decay < 1, "drag.decay must be in (0,1), got %v", c.Drag.Decay)

	check(c.Projectile.Speed >= 0, "projectile.speed must be >= 0, got %v", c.Projectile.Speed)
	check(c.Projectile.Radius >= 0, "projectile.radius must be >= 0, got %v", c.Projectile.Radius)
	check(c.Projectile.TTL > 0, "projectile.ttl must be > 0, got %v", c.Projectile.TTL)
	check(c.Projectile.Scale > 0, "projectile.scale must be > 0, got %v", c.Projectile.Scale)

	switch c.Input.TapMiss {
	case TapMissFire, TapMissAdd, TapMissNone:
	default:
		errs = append(errs, fmt.Errorf("input.tap_miss must be one of %q, %q, %q, got %q",
			TapMissFire, TapMissAdd, TapMissNone, c.Input.TapMiss))
	}

	return errors.Join(errs...)
}
