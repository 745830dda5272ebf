package sandbox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/sandfall/internal/core"
	"github.com/vovakirdan/sandfall/internal/registry"
	"github.com/vovakirdan/sandfall/internal/scenes"
)

func newTestGame(t *testing.T, id string, w, h int, seed int64) *Game {
	t.Helper()
	rg, err := registry.Create(id)
	if err != nil {
		t.Fatalf("registry.Create(%s) error: %v", id, err)
	}
	g := rg.(*Game)
	g.Reset(core.RuntimeConfig{ScreenW: w, ScreenH: h, Seed: seed, TickRate: 30})
	if g.err != nil {
		t.Fatalf("Reset() error: %v", g.err)
	}
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestBuiltinScenesRegistered(t *testing.T) {
	for _, id := range []string{"sandbox", "hourglass", "bonfire", "snowmelt", "oil-spill", "rain"} {
		if !registry.Exists(id) {
			t.Errorf("scene %s is not registered", id)
		}
	}
}

func TestBuiltinScenesRun(t *testing.T) {
	for _, info := range registry.List() {
		g := newTestGame(t, info.ID, 80, 30, 7)
		for i := 0; i < 50; i++ {
			g.Step(core.NewInputFrame())
		}
		if g.State().Tick != 50 {
			t.Errorf("%s: Tick = %d, expected 50", info.ID, g.State().Tick)
		}
	}
}

func TestHUDKeepsMaterialOnNarrowScreens(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		withSpeed bool
	}{
		{"narrow", 40, false},
		{"wide", 80, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, "hourglass", tc.width, 30, 1)
			screen := core.NewScreen(tc.width, 30)
			g.Render(screen)

			hud := strings.TrimRight(screen.Row(0), " ")
			if !strings.HasPrefix(hud, "Hourglass  [") || !strings.Contains(hud, "sand]") {
				t.Errorf("HUD = %q, expected title then material", hud)
			}
			if !strings.Contains(hud, "tick 0") {
				t.Errorf("HUD = %q, expected the tick", hud)
			}
			speed := string(g.Session().Speed())
			if got := strings.HasSuffix(hud, speed); got != tc.withSpeed {
				t.Errorf("HUD = %q, speed shown = %v, expected %v", hud, got, tc.withSpeed)
			}
		})
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, "hourglass", 40, 30, 1)
	screen := core.NewScreen(40, 30)
	g.Render(screen)

	if hud := screen.Row(0); !strings.Contains(hud, "Hourglass") || !strings.Contains(hud, "sand") {
		t.Errorf("HUD = %q, expected title and material", hud)
	}
	if help := screen.Row(29); !strings.Contains(help, "paint") {
		t.Errorf("help line = %q", help)
	}
	out := screen.String()
	if !strings.Contains(out, "▒") || !strings.Contains(out, "█") {
		t.Errorf("world not drawn with material shades:\n%s", out)
	}
	if !strings.Contains(out, "┌") {
		t.Errorf("fixed scene should be framed:\n%s", out)
	}
}

func TestGameTooSmall(t *testing.T) {
	g := newTestGame(t, "hourglass", 10, 10, 1)
	res := g.Step(core.NewInputFrame())
	if res.State.Tick != 0 {
		t.Errorf("Step() on a small screen advanced to tick %d", res.State.Tick)
	}

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Terminal too small") {
		t.Errorf("expected a too-small message, got:\n%s", screen.String())
	}
}

func TestGamePointerPaintAndErase(t *testing.T) {
	g := newTestGame(t, "sandbox", 20, 12, 1)
	brush := g.Session().Brush()

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	in.AddPointer(core.Pointer{X: 5, Y: 5, Button: core.PointerPaint})
	res := g.Step(in)

	// Radius 1 disk is five cells; the world starts on screen row 1.
	if brush != 1 || res.State.Painted != 5 {
		t.Fatalf("Painted = %d with brush %d, expected 5 with brush 1", res.State.Painted, brush)
	}
	if x, y := g.Session().Cursor(); x != 5 || y != 4 {
		t.Errorf("Cursor() = (%d,%d), expected (5,4)", x, y)
	}

	in = core.NewInputFrame()
	in.AddPointer(core.Pointer{X: 5, Y: 5, Button: core.PointerErase})
	res = g.Step(in)
	if res.State.Population != 0 {
		t.Errorf("Population after erase = %d, expected 0", res.State.Population)
	}
}

func TestGameKeyboardActions(t *testing.T) {
	g := newTestGame(t, "sandbox", 20, 12, 1)
	s := g.Session()
	startX, _ := s.Cursor()
	startMat := s.Selected().Name

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("ActionPause did not pause")
	}

	g.Step(frame(core.ActionRight, core.ActionNextMaterial, core.ActionBrushGrow, core.ActionFaster))
	if x, _ := s.Cursor(); x != startX+1 {
		t.Errorf("cursor x = %d, expected %d", x, startX+1)
	}
	if s.Selected().Name == startMat {
		t.Error("ActionNextMaterial did not change the material")
	}
	if s.Brush() != 2 {
		t.Errorf("Brush() = %d, expected 2", s.Brush())
	}
	if s.Speed() != "fast" {
		t.Errorf("Speed() = %s, expected fast", s.Speed())
	}

	g.Step(frame(core.ActionPaint))
	if g.State().Population == 0 {
		t.Error("ActionPaint painted nothing")
	}
	if g.State().Tick != 0 {
		t.Errorf("paused game advanced to tick %d", g.State().Tick)
	}

	g.Step(frame(core.ActionStep))
	if g.State().Tick != 1 {
		t.Errorf("ActionStep tick = %d, expected 1", g.State().Tick)
	}

	g.Step(frame(core.ActionClear))
	if g.State().Population != 0 {
		t.Errorf("ActionClear left population %d", g.State().Population)
	}

	res := g.Step(frame(core.ActionSnapshot))
	if !res.SnapshotRequested {
		t.Error("ActionSnapshot was not reported")
	}

	g.Step(frame(core.ActionQuit))
	if !g.State().Done {
		t.Error("ActionQuit did not finish the game")
	}
}

func TestGameRestart(t *testing.T) {
	g := newTestGame(t, "hourglass", 40, 30, 1)
	for i := 0; i < 20; i++ {
		g.Step(core.NewInputFrame())
	}
	g.Step(frame(core.ActionRestart))

	fresh := newTestGame(t, "hourglass", 40, 30, 1)
	fresh.Step(core.NewInputFrame())

	got, tick := g.Snapshot()
	want, _ := fresh.Snapshot()
	if tick != 1 {
		t.Errorf("tick after restart frame = %d, expected 1", tick)
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("restart did not replay the scene:\n%s\n---\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestGameResizeKeepsFixedScene(t *testing.T) {
	g := newTestGame(t, "hourglass", 40, 30, 1)
	s := g.Session()
	g.Step(core.NewInputFrame())

	g.Reset(core.RuntimeConfig{ScreenW: 60, ScreenH: 40, Seed: 1})
	if g.Session() != s || g.State().Tick != 1 {
		t.Error("resizing restarted a fixed-size scene")
	}
	if g.view.X != (60-21)/2 {
		t.Errorf("view.X = %d, expected %d", g.view.X, (60-21)/2)
	}
}

func TestGameSnapshotRestore(t *testing.T) {
	g := newTestGame(t, "sandbox", 20, 12, 1)
	rows := []string{"....", ".ss.", "####"}
	if err := g.Restore(rows); err != nil {
		t.Fatalf("Restore() error: %v", err)
	}
	got, tick := g.Snapshot()
	if strings.Join(got, "/") != strings.Join(rows, "/") || tick != 0 {
		t.Errorf("Snapshot() = %v tick %d, expected %v tick 0", got, tick, rows)
	}
	if g.tooSmall {
		t.Error("restored world should fit")
	}

	g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 15, Seed: 1})
	if got, _ := g.Snapshot(); strings.Join(got, "/") != strings.Join(rows, "/") {
		t.Errorf("resize discarded the restored world: %v", got)
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() []string {
		g := newTestGame(t, "oil-spill", 80, 30, 99)
		for i := 0; i < 300; i++ {
			in := core.NewInputFrame()
			if i%25 == 0 {
				in.AddPointer(core.Pointer{X: 20 + i%20, Y: 10, Button: core.PointerPaint})
			}
			g.Step(in)
		}
		rows, _ := g.Snapshot()
		return rows
	}

	a, b := run(), run()
	if strings.Join(a, "\n") != strings.Join(b, "\n") {
		t.Errorf("same seed and input diverged:\n%s\n---\n%s", strings.Join(a, "\n"), strings.Join(b, "\n"))
	}
}

func TestRegisterScenesOverrides(t *testing.T) {
	dir := t.TempDir()
	yaml := "id: rain\nname: Drizzle\nsize:\n  w: 10\n  h: 5\nemitters:\n  - material: water\n    x: 0\n    y: 0\n    spread: 10\n"
	if err := os.WriteFile(filepath.Join(dir, "rain.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if _, err := RegisterScenes(scenes.Builtin()); err != nil {
			t.Fatalf("restoring builtin scenes: %v", err)
		}
	}()

	n, err := RegisterScenes(scenes.NewLoader(dir))
	if err != nil || n != 1 {
		t.Fatalf("RegisterScenes() = %d, %v, expected 1, nil", n, err)
	}
	g, err := registry.Create("rain")
	if err != nil {
		t.Fatal(err)
	}
	if g.Title() != "Drizzle" {
		t.Errorf("Title() = %s, expected Drizzle", g.Title())
	}
}
