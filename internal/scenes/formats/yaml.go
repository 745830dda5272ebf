// Package formats provides pluggable scene file format parsers.
package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLScene represents the YAML structure for a scene file.
type YAMLScene struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Size        YAMLSize      `yaml:"size"`
	Anchor      string        `yaml:"anchor,omitempty"` // "top" or "bottom"
	Layout      string        `yaml:"layout,omitempty"`
	Emitters    []YAMLEmitter `yaml:"emitters,omitempty"`
	Brush       string        `yaml:"brush,omitempty"`
}

// YAMLSize represents grid dimensions. Zero means "fit the screen".
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLEmitter represents a material source in YAML format.
type YAMLEmitter struct {
	Material string `yaml:"material"`
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
	Every    int    `yaml:"every,omitempty"`
	Radius   int    `yaml:"radius,omitempty"`
	Spread   int    `yaml:"spread,omitempty"`
}

// Scene represents a parsed scene ready for use.
type Scene struct {
	ID          string
	Name        string
	Description string
	Width       int
	Height      int
	AnchorTop   bool
	Layout      []string
	Emitters    []Emitter
	Brush       string
}

// Emitter is a parsed material source.
type Emitter struct {
	Material string
	X, Y     int
	Every    int
	Radius   int
	Spread   int
}

// ParseYAML parses a YAML scene file.
func ParseYAML(data []byte) (Scene, error) {
	var ys YAMLScene
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return Scene{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if ys.ID == "" {
		return Scene{}, fmt.Errorf("scene has no id")
	}
	if ys.Size.W < 0 || ys.Size.H < 0 {
		return Scene{}, fmt.Errorf("scene %s: negative size %dx%d", ys.ID, ys.Size.W, ys.Size.H)
	}

	name := ys.Name
	if name == "" {
		name = ys.ID
	}

	scene := Scene{
		ID:          ys.ID,
		Name:        name,
		Description: ys.Description,
		Width:       ys.Size.W,
		Height:      ys.Size.H,
		Brush:       ys.Brush,
	}

	switch ys.Anchor {
	case "", "bottom":
	case "top":
		scene.AnchorTop = true
	default:
		return Scene{}, fmt.Errorf("scene %s: unknown anchor %q", ys.ID, ys.Anchor)
	}

	// Layout is a block scalar; drop the trailing newline yaml keeps.
	if layout := strings.TrimRight(ys.Layout, "\n"); layout != "" {
		scene.Layout = strings.Split(layout, "\n")
	}

	for i, e := range ys.Emitters {
		if e.Material == "" {
			return Scene{}, fmt.Errorf("scene %s: emitter %d has no material", ys.ID, i)
		}
		every := e.Every
		if every <= 0 {
			every = 1 // Default: every tick
		}
		if e.Radius < 0 || e.Spread < 0 {
			return Scene{}, fmt.Errorf("scene %s: emitter %d has negative radius or spread", ys.ID, i)
		}
		scene.Emitters = append(scene.Emitters, Emitter{
			Material: e.Material,
			X:        e.X,
			Y:        e.Y,
			Every:    every,
			Radius:   e.Radius,
			Spread:   e.Spread,
		})
	}

	return scene, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
