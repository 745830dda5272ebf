package sandbox

import (
	"fmt"

	"github.com/vovakirdan/sandfall/internal/config"
	"github.com/vovakirdan/sandfall/internal/core"
	"github.com/vovakirdan/sandfall/internal/sand"
	"github.com/vovakirdan/sandfall/internal/scenes"
)

const (
	hudHeight  = 1
	helpHeight = 1
	helpText   = "arrows move  space paint  x erase  tab material  +/- brush  </> speed  p pause  n step  c clear  S save  r reset  q quit"
)

// Settings are shared by every game created from the registry.
type Settings struct {
	Catalog *sand.Catalog
	Brush   config.BrushConfig
	Speed   config.SpeedPreset
}

var settings = defaultSettings()

func defaultSettings() Settings {
	def := config.DefaultSandboxConfig()
	return Settings{
		Catalog: sand.DefaultCatalog(),
		Brush:   def.Brush,
		Speed:   config.SpeedPreset(def.Engine.Speed),
	}
}

// Configure replaces the catalog, brush and speed used by new games.
// Call it before creating games.
func Configure(cfg config.SandboxConfig) error {
	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}
	speed, err := config.ParseSpeed(cfg.Engine.Speed)
	if err != nil {
		return err
	}
	settings = Settings{Catalog: cat, Brush: cfg.Brush, Speed: speed}
	return nil
}

// CurrentSettings returns what new games will be built with.
func CurrentSettings() Settings {
	return settings
}

// Game runs one scene as a registry.Game.
type Game struct {
	scene   scenes.Scene
	session *Session
	seed    int64

	screenW, screenH int
	view             core.Rect // World placement on screen

	tooSmall bool
	restored bool // World came from a snapshot, not the scene
	err      error
	done     bool
}

// New creates a game for the given scene.
func New(scene scenes.Scene) *Game {
	return &Game{scene: scene}
}

// ID returns the scene identifier.
func (g *Game) ID() string {
	return g.scene.ID
}

// Title returns the scene name.
func (g *Game) Title() string {
	if g.scene.Name != "" {
		return g.scene.Name
	}
	return g.scene.ID
}

// Session returns the running session, nil before Reset or after a failed one.
func (g *Game) Session() *Session {
	return g.session
}

// Reset builds the session for the screen. A fixed-size or restored world
// that is already running with the same seed is only laid out again.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.done = false

	area := g.area()
	if g.session != nil && (g.scene.Fixed() || g.restored) && cfg.Seed == g.seed && g.err == nil {
		g.layout()
		return
	}

	g.seed = cfg.Seed
	g.err = nil
	g.restored = false
	s, err := NewSession(Options{
		Catalog: settings.Catalog,
		Scene:   g.scene,
		Seed:    cfg.Seed,
		Brush:   settings.Brush,
		Speed:   settings.Speed,
	}, area.W, area.H)
	if err != nil {
		g.session = nil
		g.err = err
		return
	}
	g.session = s
	g.layout()
}

// area returns the screen region between the HUD and the help line.
func (g *Game) area() core.Rect {
	return core.NewRect(0, hudHeight, max(0, g.screenW), max(0, g.screenH-hudHeight-helpHeight))
}

// layout centres the world in the area.
func (g *Game) layout() {
	area := g.area()
	w, h := g.session.Width(), g.session.Height()
	g.tooSmall = !area.Fits(w, h)
	g.view = core.CenterIn(w, h, area)
}

// Step processes one host frame of input and advances the simulation.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	result := core.StepResult{}
	if in.Has(core.ActionQuit) {
		g.done = true
	}
	if g.session == nil || g.tooSmall || g.done {
		result.State = g.State()
		return result
	}
	s := g.session

	if in.Has(core.ActionRestart) {
		area := g.area()
		//nolint:errcheck // Reset only fails on scenes that already loaded once
		s.Reset(area.W, area.H)
		g.restored = false
		g.layout()
	}

	switch {
	case in.Has(core.ActionUp):
		s.MoveCursor(0, -1)
	case in.Has(core.ActionDown):
		s.MoveCursor(0, 1)
	}
	switch {
	case in.Has(core.ActionLeft):
		s.MoveCursor(-1, 0)
	case in.Has(core.ActionRight):
		s.MoveCursor(1, 0)
	}

	if in.Has(core.ActionNextMaterial) {
		s.SelectNext()
	}
	if in.Has(core.ActionPrevMaterial) {
		s.SelectPrev()
	}
	if in.Has(core.ActionBrushGrow) {
		s.GrowBrush()
	}
	if in.Has(core.ActionBrushShrink) {
		s.ShrinkBrush()
	}
	if in.Has(core.ActionFaster) {
		s.Faster()
	}
	if in.Has(core.ActionSlower) {
		s.Slower()
	}
	if in.Has(core.ActionClear) {
		s.Clear()
	}
	if in.Has(core.ActionPause) {
		s.TogglePause()
	}
	if in.Has(core.ActionStep) {
		s.StepOnce()
	}

	cx, cy := s.Cursor()
	if in.Has(core.ActionPaint) {
		s.PaintSelected(cx, cy)
	}
	if in.Has(core.ActionErase) {
		s.Erase(cx, cy)
	}

	for _, p := range in.Pointers {
		x, y := g.view.Local(p.X, p.Y)
		switch p.Button {
		case core.PointerPaint:
			s.PaintSelected(x, y)
		case core.PointerErase:
			s.Erase(x, y)
		default:
			continue
		}
		s.SetCursor(x, y)
	}

	s.Frame()

	result.State = g.State()
	result.SnapshotRequested = in.Has(core.ActionSnapshot)
	return result
}

// Render draws the HUD, the world and the help line.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		dst.DrawTextCentered(dst.Height()/2, g.Title(), core.ColorDefault)
		dst.DrawTextCentered(dst.Height()/2+1, g.err.Error(), core.ColorError)
		return
	}
	if g.session == nil {
		return
	}
	s := g.session
	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small", core.ColorWarning)
		dst.DrawTextCentered(dst.Height()/2+1,
			fmt.Sprintf("%s needs %dx%d", g.Title(), s.Width(), s.Height()+hudHeight+helpHeight), core.ColorDefault)
		return
	}

	g.renderWorld(dst)
	g.renderHUD(dst)
	dst.DrawTextColored(0, dst.Height()-1, helpText, core.ColorHelp)
}

func (g *Game) renderWorld(dst *core.Screen) {
	s := g.session
	w := s.World()
	width, height := w.Width(), w.Height()

	// Frame fixed scenes when there is room for it.
	if g.scene.Fixed() && g.area().Fits(width+2, height+2) {
		dst.DrawBox(g.view.Grow(1), core.ColorFrame)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			app, ok := w.Query(x, y)
			if !ok || app.Kind == sand.KindEmpty {
				continue
			}
			sx, sy := g.view.Screen(x, y)
			dst.SetHex(sx, sy, app.Shade, app.Hex())
		}
	}

	sx, sy := g.view.Screen(s.Cursor())
	dst.SetColored(sx, sy, '+', core.ColorCursor)
}

// renderHUD draws the title and selected material first, then as many of
// the status fields as fit the screen width.
func (g *Game) renderHUD(dst *core.Screen) {
	s := g.session
	m := s.Selected()

	x := 0
	put := func(text string, c core.Color) {
		dst.DrawTextColored(x, 0, text, c)
		x += len([]rune(text))
	}

	put(g.Title()+"  ", core.ColorHUD)

	hex := ""
	if palette := m.Palette(); len(palette) > 0 {
		hex = palette[0].Hex()
	}
	for _, r := range fmt.Sprintf("[%c %s]", m.Shade, m.Name) {
		dst.SetHex(x, 0, r, hex)
		x++
	}
	if s.Paused() {
		put("  PAUSED", core.ColorWarning)
	}

	fields := []string{
		fmt.Sprintf("tick %d", s.Tick()),
		fmt.Sprintf("r%d", s.Brush()),
		fmt.Sprintf("pop %d", s.World().Population()),
		string(s.Speed()),
	}
	for _, f := range fields {
		if x+2+len([]rune(f)) > dst.Width() {
			break
		}
		put("  "+f, core.ColorHUD)
	}
}

// State returns the current sandbox state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Done: g.done}
	}
	return core.GameState{
		Tick:       g.session.Tick(),
		Population: g.session.World().Population(),
		Painted:    g.session.Painted(),
		Paused:     g.session.Paused(),
		Done:       g.done,
	}
}

// Snapshot returns the grid as glyph rows with the current tick.
func (g *Game) Snapshot() ([]string, uint64) {
	if g.session == nil {
		return nil, 0
	}
	return g.session.Snapshot(), g.session.Tick()
}

// Restore loads glyph rows into the running session.
func (g *Game) Restore(rows []string) error {
	if g.session == nil {
		return fmt.Errorf("sandbox: %s is not running", g.ID())
	}
	if err := g.session.Restore(rows); err != nil {
		return err
	}
	g.restored = true
	g.layout()
	return nil
}
