package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/nexustech101/particlebox/internal/engine"
	"github.com/nexustech101/particlebox/internal/field"
)

const (
	DefaultWidth      = 800.0
	DefaultHeight     = 600.0
	DefaultCount      = 40
	DefaultFrames     = 600
	DefaultOutDir     = "runs"
	DefaultSwirlScale = 0.004
)

type Config struct {
	Name        string         `yaml:"name"`
	Width       float64        `yaml:"width"`
	Height      float64        `yaml:"height"`
	Count       int            `yaml:"count"`
	Radius      float64        `yaml:"radius"`
	Mass        float64        `yaml:"mass"`
	MaxSpeed    float64        `yaml:"max_speed"`
	Seed        int64          `yaml:"seed"`
	Palette     []string       `yaml:"palette"`
	Velocity    VelocityConfig `yaml:"velocity"`
	Frames      int            `yaml:"frames"`
	SampleEvery int            `yaml:"sample_every"`
	OutDir      string         `yaml:"out_dir"`
}

type VelocityConfig struct {
	Mode  string  `yaml:"mode"`  // "uniform" (default) or "swirl"
	Speed float64 `yaml:"speed"` // 0 falls back to max_speed
	Scale float64 `yaml:"scale"` // swirl noise frequency, 0 falls back to DefaultSwirlScale
}

func DefaultConfig() *Config {
	return &Config{
		Name:        "default",
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Count:       DefaultCount,
		Radius:      engine.DefaultRadius,
		Mass:        engine.DefaultMass,
		MaxSpeed:    engine.DefaultMaxSpeed,
		Palette:     append([]string(nil), engine.DefaultPalette...),
		Velocity:    VelocityConfig{Mode: "uniform"},
		Frames:      DefaultFrames,
		SampleEvery: 1,
		OutDir:      DefaultOutDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate fills zero fields with defaults, resolves the palette to hex
// and rejects everything the engine would choke on. Call it once before
// EngineConfig or NewWorld; it mutates the receiver.
func (c *Config) Validate() error {
	if c.Name == "" {
		c.Name = "run"
	}
	if c.Radius == 0 {
		c.Radius = engine.DefaultRadius
	}
	if c.Mass == 0 {
		c.Mass = engine.DefaultMass
	}
	if c.MaxSpeed == 0 {
		c.MaxSpeed = engine.DefaultMaxSpeed
	}
	if c.Frames == 0 {
		c.Frames = DefaultFrames
	}
	if c.SampleEvery <= 0 {
		c.SampleEvery = 1
	}
	if c.OutDir == "" {
		c.OutDir = DefaultOutDir
	}
	if len(c.Palette) == 0 {
		c.Palette = append([]string(nil), engine.DefaultPalette...)
	}

	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: arena %gx%g: %w", c.Width, c.Height, engine.ErrInvalidBounds)
	}
	if c.Count <= 0 {
		return fmt.Errorf("config: count %d: %w", c.Count, engine.ErrInvalidCount)
	}
	if c.Radius < 0 {
		return fmt.Errorf("config: radius %g: %w", c.Radius, engine.ErrNonPositiveRadius)
	}
	if c.Mass < 0 {
		return fmt.Errorf("config: mass %g: %w", c.Mass, engine.ErrNonPositiveMass)
	}
	if c.Frames < 0 {
		return fmt.Errorf("config: frames %d is negative", c.Frames)
	}
	switch c.Velocity.Mode {
	case "", "uniform", "swirl":
	default:
		return fmt.Errorf("config: unknown velocity mode %q", c.Velocity.Mode)
	}
	for i, name := range c.Palette {
		hex, err := ResolveColor(name)
		if err != nil {
			return err
		}
		c.Palette[i] = hex
	}
	return nil
}

// ResolveColor turns "#rgb"/"#rrggbb" hex or an SVG 1.1 color name
// ("steelblue", "tomato", ...) into lowercase "#rrggbb" form.
func ResolveColor(name string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 3 {
			hex = fmt.Sprintf("%c%c%c%c%c%c", hex[0], hex[0], hex[1], hex[1], hex[2], hex[2])
		}
		if len(hex) != 6 {
			return "", fmt.Errorf("config: malformed hex color %q", name)
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return "", fmt.Errorf("config: malformed hex color %q", name)
		}
		return "#" + hex, nil
	}
	c, ok := colornames.Map[s]
	if !ok {
		return "", fmt.Errorf("config: unknown color name %q", name)
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), nil
}

// EngineConfig converts to the engine's construction parameters,
// validating first. The velocity mode picks the initial field.
func (c *Config) EngineConfig() (engine.Config, error) {
	if err := c.Validate(); err != nil {
		return engine.Config{}, err
	}
	speed := c.Velocity.Speed
	if speed <= 0 {
		speed = c.MaxSpeed
	}
	ec := engine.Config{
		Width:    c.Width,
		Height:   c.Height,
		Count:    c.Count,
		Radius:   c.Radius,
		Mass:     c.Mass,
		MaxSpeed: c.MaxSpeed,
		Seed:     c.Seed,
		Palette:  append([]string(nil), c.Palette...),
	}
	switch c.Velocity.Mode {
	case "swirl":
		scale := c.Velocity.Scale
		if scale <= 0 {
			scale = DefaultSwirlScale
		}
		ec.Velocity = field.Swirl(speed, scale, c.Seed)
	default:
		ec.Velocity = field.Uniform(speed)
	}
	return ec, nil
}

// NewWorld is the one-call path from a config to a populated world.
func (c *Config) NewWorld() (*engine.World, error) {
	ec, err := c.EngineConfig()
	if err != nil {
		return nil, err
	}
	return engine.NewWorld(ec)
}
