// Package sandbox implements an interactive falling-sand session on top of
// the sand engine: a scene, a brush, emitters and speed pacing.
package sandbox

import (
	"fmt"

	"github.com/vovakirdan/sandfall/internal/config"
	"github.com/vovakirdan/sandfall/internal/core"
	"github.com/vovakirdan/sandfall/internal/sand"
	"github.com/vovakirdan/sandfall/internal/scenes"
)

// emitterSalt separates the emitter spread rolls from the world's sources.
const emitterSalt = 0x3e17

// Options configures a new session.
type Options struct {
	Catalog *sand.Catalog
	Scene   scenes.Scene
	Seed    int64
	Brush   config.BrushConfig
	Speed   config.SpeedPreset
}

// Session owns one world and everything the player can change about it.
type Session struct {
	cat    *sand.Catalog
	scene  scenes.Scene
	seed   int64
	world  *sand.World
	spread sand.Rand
	pacer  *config.Pacer

	palette  []sand.MaterialID
	selected int

	cursorX, cursorY int
	brush            int
	maxBrush         int

	paused  bool
	pending int // Single steps queued while paused
	painted int
}

// NewSession validates the scene against the catalog and builds its world
// for a screenW×screenH area. Fixed-size scenes ignore the area.
func NewSession(opts Options, screenW, screenH int) (*Session, error) {
	cat := opts.Catalog
	if cat == nil {
		cat = sand.DefaultCatalog()
	}
	if err := opts.Scene.Validate(cat); err != nil {
		return nil, err
	}

	s := &Session{
		cat:      cat,
		scene:    opts.Scene,
		seed:     opts.Seed,
		world:    sand.NewWorld(cat, opts.Seed),
		pacer:    config.NewPacer(opts.Speed),
		palette:  cat.Spawnable(),
		brush:    opts.Brush.Radius,
		maxBrush: opts.Brush.MaxRadius,
	}
	if len(s.palette) == 0 {
		return nil, fmt.Errorf("sandbox: catalog has no spawnable materials")
	}
	if s.maxBrush <= 0 {
		s.maxBrush = config.DefaultSandboxConfig().Brush.MaxRadius
	}
	s.brush = core.Clamp(s.brush, 0, s.maxBrush)

	// Scene brush wins over the configured one.
	name := opts.Brush.Material
	if opts.Scene.Brush != "" {
		name = opts.Scene.Brush
	}
	if name != "" {
		if err := s.Select(name); err != nil {
			return nil, err
		}
	}

	if err := s.Reset(screenW, screenH); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset reloads the scene with the session seed. Brush, material and speed
// are kept.
func (s *Session) Reset(screenW, screenH int) error {
	s.world.Reseed(s.seed)
	s.spread = sand.NewRand(s.seed ^ emitterSalt)
	if err := s.scene.Apply(s.world, screenW, screenH); err != nil {
		return err
	}
	s.cursorX = s.world.Width() / 2
	s.cursorY = s.world.Height() / 2
	s.paused = false
	s.pending = 0
	s.painted = 0
	return nil
}

// World returns the simulated world.
func (s *Session) World() *sand.World { return s.world }

// Scene returns the loaded scene.
func (s *Session) Scene() scenes.Scene { return s.scene }

// Seed returns the seed the world was built with.
func (s *Session) Seed() int64 { return s.seed }

// Width returns the world width.
func (s *Session) Width() int { return s.world.Width() }

// Height returns the world height.
func (s *Session) Height() int { return s.world.Height() }

// Tick returns completed world steps.
func (s *Session) Tick() uint64 { return s.world.Tick() }

// Painted returns how many cells the brush has written since Reset.
func (s *Session) Painted() int { return s.painted }

// Paint draws a brush disk of material id centred on (cx, cy).
func (s *Session) Paint(id sand.MaterialID, cx, cy int) int {
	n := s.world.Paint(id, cx, cy, s.brush)
	s.painted += n
	return n
}

// PaintSelected paints the selected material at (cx, cy).
func (s *Session) PaintSelected(cx, cy int) int {
	return s.Paint(s.palette[s.selected], cx, cy)
}

// Erase empties a brush disk centred on (cx, cy).
func (s *Session) Erase(cx, cy int) int {
	return s.world.Erase(cx, cy, s.brush)
}

// Clear empties the whole grid and restarts the tick count.
func (s *Session) Clear() {
	s.world.Build(s.world.Width(), s.world.Height())
}

// Selected returns the material the brush paints with.
func (s *Session) Selected() *sand.Material {
	return s.cat.Get(s.palette[s.selected])
}

// Select picks a brush material by name.
func (s *Session) Select(name string) error {
	id, ok := s.cat.Lookup(name)
	if !ok {
		return fmt.Errorf("sandbox: %w: %q", sand.ErrUnknownMaterial, name)
	}
	for i, p := range s.palette {
		if p == id {
			s.selected = i
			return nil
		}
	}
	return fmt.Errorf("sandbox: material %q cannot be painted", name)
}

// SelectNext cycles to the next paintable material.
func (s *Session) SelectNext() {
	s.selected = (s.selected + 1) % len(s.palette)
}

// SelectPrev cycles to the previous paintable material.
func (s *Session) SelectPrev() {
	s.selected = (s.selected + len(s.palette) - 1) % len(s.palette)
}

// Brush returns the brush radius.
func (s *Session) Brush() int { return s.brush }

// GrowBrush enlarges the brush up to the configured maximum.
func (s *Session) GrowBrush() {
	if s.brush < s.maxBrush {
		s.brush++
	}
}

// ShrinkBrush makes the brush smaller; radius 0 is a single cell.
func (s *Session) ShrinkBrush() {
	if s.brush > 0 {
		s.brush--
	}
}

// Cursor returns the keyboard cursor in world coordinates.
func (s *Session) Cursor() (int, int) { return s.cursorX, s.cursorY }

// MoveCursor shifts the cursor, keeping it inside the world.
func (s *Session) MoveCursor(dx, dy int) {
	s.SetCursor(s.cursorX+dx, s.cursorY+dy)
}

// SetCursor places the cursor, clamped to the world.
func (s *Session) SetCursor(x, y int) {
	s.cursorX = core.Clamp(x, 0, max(0, s.world.Width()-1))
	s.cursorY = core.Clamp(y, 0, max(0, s.world.Height()-1))
}

// Paused reports whether automatic stepping is suspended.
func (s *Session) Paused() bool { return s.paused }

// TogglePause suspends or resumes automatic stepping.
func (s *Session) TogglePause() {
	s.paused = !s.paused
	s.pending = 0
}

// StepOnce queues a single world step while paused.
func (s *Session) StepOnce() {
	if s.paused {
		s.pending++
	}
}

// Speed returns the active speed preset.
func (s *Session) Speed() config.SpeedPreset { return s.pacer.Preset() }

// SetSpeed switches the speed preset.
func (s *Session) SetSpeed(p config.SpeedPreset) { s.pacer.Set(p) }

// Faster moves one speed preset up.
func (s *Session) Faster() { s.pacer.Faster() }

// Slower moves one speed preset down.
func (s *Session) Slower() { s.pacer.Slower() }

// Advance fires due emitters, then steps the world once.
func (s *Session) Advance() {
	tick := s.world.Tick()
	w, h := s.world.Width(), s.world.Height()
	for _, e := range s.scene.Emitters {
		if !e.Due(tick) {
			continue
		}
		id, ok := s.cat.Lookup(e.Material)
		if !ok {
			continue
		}
		x, y := e.Position(w, h)
		if e.Spread > 0 {
			x += s.spread.Intn(e.Spread)
		}
		s.world.Pour(id, x, y, e.Radius)
	}
	s.world.Step()
}

// Frame runs one host frame and returns the number of world steps taken.
// While paused only queued single steps run.
func (s *Session) Frame() int {
	n := s.pacer.Frame()
	if s.paused {
		n = s.pending
		s.pending = 0
	}
	for i := 0; i < n; i++ {
		s.Advance()
	}
	return n
}

// Snapshot encodes the grid as glyph rows.
func (s *Session) Snapshot() []string {
	return s.world.Rows()
}

// Restore rebuilds the world from glyph rows. The world takes the size of
// the rows and the tick count restarts.
func (s *Session) Restore(rows []string) error {
	if len(rows) == 0 {
		return fmt.Errorf("sandbox: empty snapshot")
	}
	if err := s.world.LoadRows(rows); err != nil {
		return fmt.Errorf("sandbox: restore: %w", err)
	}
	s.SetCursor(s.cursorX, s.cursorY)
	return nil
}
