// Package config provides YAML-based sandbox configuration loading and
// speed presets for the simulation.
package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/sandfall/internal/sand"
)

// SandboxConfig contains everything that shapes a sandbox session.
type SandboxConfig struct {
	Engine    EngineConfig     `yaml:"engine"`
	Brush     BrushConfig      `yaml:"brush"`
	Materials []MaterialConfig `yaml:"materials"`
}

// EngineConfig defines simulation pacing.
type EngineConfig struct {
	TickRate int    `yaml:"tick_rate"` // Frames per second of the host loop
	Speed    string `yaml:"speed"`     // "slow", "normal", "fast" or "turbo"
	Seed     int64  `yaml:"seed"`      // 0 means pick one at startup
}

// BrushConfig defines the painting brush.
type BrushConfig struct {
	Radius    int    `yaml:"radius"`
	MaxRadius int    `yaml:"max_radius"`
	Material  string `yaml:"material"` // Initially selected material
}

// MaterialConfig is the YAML form of sand.Material.
type MaterialConfig struct {
	Name     string        `yaml:"name"`
	Kind     string        `yaml:"kind"`
	Glyph    string        `yaml:"glyph"`
	Shade    string        `yaml:"shade,omitempty"`
	Movable  bool          `yaml:"movable"`
	Velocity int           `yaml:"velocity,omitempty"`
	Density  float64       `yaml:"density"`
	Colors   []ColorConfig `yaml:"colors"`

	InertialResistance float64 `yaml:"inertial_resistance,omitempty"`

	Live     int    `yaml:"live,omitempty"`
	Duration int    `yaml:"duration,omitempty"`
	Ignite   string `yaml:"ignite,omitempty"`
	Vaporize string `yaml:"vaporize,omitempty"`
	Melt     string `yaml:"melt,omitempty"`

	Dissipates  bool `yaml:"dissipates,omitempty"`
	Combustible bool `yaml:"combustible,omitempty"`
	Volatile    bool `yaml:"volatile,omitempty"`
	Liquefiable bool `yaml:"liquefiable,omitempty"`
}

// ColorConfig is one weighted colour band.
type ColorConfig struct {
	Hex    string `yaml:"hex"`
	Weight int    `yaml:"weight,omitempty"`
}

// ToMaterial converts the YAML form into a sand.Material.
func (m MaterialConfig) ToMaterial() (sand.Material, error) {
	kind, ok := sand.ParseKind(m.Kind)
	if !ok {
		return sand.Material{}, fmt.Errorf("config: material %q has unknown kind %q", m.Name, m.Kind)
	}
	glyph, err := singleRune(m.Glyph)
	if err != nil {
		return sand.Material{}, fmt.Errorf("config: material %q glyph: %w", m.Name, err)
	}
	var shade rune
	if m.Shade != "" {
		if shade, err = singleRune(m.Shade); err != nil {
			return sand.Material{}, fmt.Errorf("config: material %q shade: %w", m.Name, err)
		}
	}

	bands := make([]sand.ColorBand, len(m.Colors))
	for i, c := range m.Colors {
		bands[i] = sand.ColorBand{Hex: c.Hex, Weight: c.Weight}
	}

	return sand.Material{
		Name:               m.Name,
		Kind:               kind,
		Glyph:              glyph,
		Shade:              shade,
		Movable:            m.Movable,
		Velocity:           m.Velocity,
		Density:            m.Density,
		Colors:             bands,
		InertialResistance: m.InertialResistance,
		Live:               m.Live,
		Duration:           m.Duration,
		Ignite:             m.Ignite,
		Vaporize:           m.Vaporize,
		Melt:               m.Melt,
		Dissipates:         m.Dissipates,
		Combustible:        m.Combustible,
		Volatile:           m.Volatile,
		Liquefiable:        m.Liquefiable,
	}, nil
}

// FromMaterial converts a sand.Material into its YAML form.
func FromMaterial(m sand.Material) MaterialConfig {
	colors := make([]ColorConfig, len(m.Colors))
	for i, c := range m.Colors {
		colors[i] = ColorConfig{Hex: c.Hex, Weight: c.Weight}
	}
	mc := MaterialConfig{
		Name:               m.Name,
		Kind:               m.Kind.String(),
		Glyph:              string(m.Glyph),
		Movable:            m.Movable,
		Velocity:           m.Velocity,
		Density:            m.Density,
		Colors:             colors,
		InertialResistance: m.InertialResistance,
		Live:               m.Live,
		Duration:           m.Duration,
		Ignite:             m.Ignite,
		Vaporize:           m.Vaporize,
		Melt:               m.Melt,
		Dissipates:         m.Dissipates,
		Combustible:        m.Combustible,
		Volatile:           m.Volatile,
		Liquefiable:        m.Liquefiable,
	}
	if m.Shade != 0 && m.Shade != m.Glyph {
		mc.Shade = string(m.Shade)
	}
	return mc
}

// Catalog builds and validates the material catalog.
// An empty material list yields the built-in catalog.
func (c SandboxConfig) Catalog() (*sand.Catalog, error) {
	if len(c.Materials) == 0 {
		return sand.DefaultCatalog(), nil
	}
	defs := make([]sand.Material, 0, len(c.Materials))
	for _, mc := range c.Materials {
		m, err := mc.ToMaterial()
		if err != nil {
			return nil, err
		}
		defs = append(defs, m)
	}
	cat, err := sand.NewCatalog(defs)
	if err != nil {
		return nil, fmt.Errorf("config: invalid materials: %w", err)
	}
	return cat, nil
}

// Validate checks pacing, brush and the material catalog.
func (c SandboxConfig) Validate() error {
	if c.Engine.TickRate < 0 {
		return fmt.Errorf("config: tick_rate must not be negative, got %d", c.Engine.TickRate)
	}
	if c.Engine.Speed != "" {
		if _, err := ParseSpeed(c.Engine.Speed); err != nil {
			return err
		}
	}
	if c.Brush.Radius < 0 || c.Brush.MaxRadius < 0 {
		return fmt.Errorf("config: brush radius must not be negative")
	}
	cat, err := c.Catalog()
	if err != nil {
		return err
	}
	if c.Brush.Material != "" {
		if _, ok := cat.Lookup(c.Brush.Material); !ok {
			return fmt.Errorf("config: brush material %q is not in the catalog", c.Brush.Material)
		}
	}
	return nil
}

// applyDefaults fills zero values from DefaultSandboxConfig.
func (c *SandboxConfig) applyDefaults() {
	def := DefaultSandboxConfig()
	if c.Engine.TickRate == 0 {
		c.Engine.TickRate = def.Engine.TickRate
	}
	if c.Engine.Speed == "" {
		c.Engine.Speed = def.Engine.Speed
	}
	if c.Brush.MaxRadius == 0 {
		c.Brush.MaxRadius = def.Brush.MaxRadius
	}
	if c.Brush.Radius > c.Brush.MaxRadius {
		c.Brush.Radius = c.Brush.MaxRadius
	}
	// A custom catalog may not have the default brush material.
	if c.Brush.Material == "" && len(c.Materials) == 0 {
		c.Brush.Material = def.Brush.Material
	}
}

func singleRune(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("expected a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
