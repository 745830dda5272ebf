// Package scenes loads sandbox scene files: a starting layout drawn with
// material glyphs plus optional emitters that keep pouring material.
package scenes

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/sandfall/internal/sand"
	"github.com/vovakirdan/sandfall/internal/scenes/formats"
)

// Scene represents a complete scene definition.
type Scene struct {
	ID          string
	Name        string
	Description string
	Width       int // 0 means fit the screen
	Height      int // 0 means fit the screen
	AnchorTop   bool
	Layout      []string
	Emitters    []Emitter
	Brush       string
	FilePath    string
}

// Emitter pours a material every N ticks. Negative X or Y count from the
// right or bottom edge; Spread picks a random column in [X, X+Spread).
type Emitter struct {
	Material string
	X, Y     int
	Every    int
	Radius   int
	Spread   int
}

func fromFormat(p formats.Scene, path string) Scene {
	emitters := make([]Emitter, len(p.Emitters))
	for i, e := range p.Emitters {
		emitters[i] = Emitter(e)
	}
	return Scene{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Width:       p.Width,
		Height:      p.Height,
		AnchorTop:   p.AnchorTop,
		Layout:      p.Layout,
		Emitters:    emitters,
		Brush:       p.Brush,
		FilePath:    path,
	}
}

// Fixed reports whether the scene has its own size.
func (s *Scene) Fixed() bool {
	return s.Width > 0 && s.Height > 0
}

// Size returns the grid size for a screen of screenW×screenH cells.
func (s *Scene) Size(screenW, screenH int) (int, int) {
	w, h := s.Width, s.Height
	if w == 0 {
		w = screenW
	}
	if h == 0 {
		h = screenH
	}
	return w, h
}

// LayoutWidth returns the length of the longest layout row.
func (s *Scene) LayoutWidth() int {
	width := 0
	for _, row := range s.Layout {
		if n := utf8.RuneCountInString(row); n > width {
			width = n
		}
	}
	return width
}

// Apply rebuilds the world at the scene size and draws the layout, centred
// horizontally and anchored to the bottom (or top) edge.
func (s *Scene) Apply(w *sand.World, screenW, screenH int) error {
	width, height := s.Size(screenW, screenH)
	ox := (width - s.LayoutWidth()) / 2
	oy := height - len(s.Layout)
	if s.AnchorTop {
		oy = 0
	}
	if err := w.LoadRowsAt(s.Layout, width, height, ox, oy); err != nil {
		return fmt.Errorf("scene %s: %w", s.ID, err)
	}
	return nil
}

// Validate checks layout glyphs, emitters and brush against a catalog.
func (s *Scene) Validate(cat *sand.Catalog) error {
	for y, row := range s.Layout {
		for x, r := range []rune(row) {
			if _, ok := cat.ByGlyph(r); !ok {
				return fmt.Errorf("scene %s: %w: glyph %q at row %d col %d", s.ID, sand.ErrUnknownMaterial, r, y, x)
			}
		}
	}
	for i, e := range s.Emitters {
		if _, ok := cat.Lookup(e.Material); !ok {
			return fmt.Errorf("scene %s: emitter %d: %w: %q", s.ID, i, sand.ErrUnknownMaterial, e.Material)
		}
	}
	if s.Brush != "" {
		if _, ok := cat.Lookup(s.Brush); !ok {
			return fmt.Errorf("scene %s: brush: %w: %q", s.ID, sand.ErrUnknownMaterial, s.Brush)
		}
	}
	return nil
}

// Position resolves the emitter origin in a width×height grid.
func (e Emitter) Position(width, height int) (int, int) {
	x, y := e.X, e.Y
	if x < 0 {
		x += width
	}
	if y < 0 {
		y += height
	}
	return x, y
}

// Due reports whether the emitter fires on the given tick.
func (e Emitter) Due(tick uint64) bool {
	every := e.Every
	if every <= 0 {
		every = 1
	}
	return tick%uint64(every) == 0
}
