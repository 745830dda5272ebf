//go:build ebiten

package gui

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/sandfall/internal/games/sandbox"
)

// app adapts a sandbox session to the ebiten.Game interface.
type app struct {
	session *sandbox.Session
	scale   int

	img    *ebiten.Image
	buf    []byte
	w, h   int
	cursor *ebiten.Image
}

func newApp(s *sandbox.Session, scale int) *app {
	a := &app{session: s, scale: scale}
	a.cursor = ebiten.NewImage(1, 1)
	a.cursor.Fill(color.White)
	a.allocate()
	return a
}

// allocate sizes the pixel buffer to the world.
func (a *app) allocate() {
	a.w, a.h = a.session.Width(), a.session.Height()
	a.buf = make([]byte, 4*a.w*a.h)
	a.img = ebiten.NewImage(a.w, a.h)
}

// Update handles input and advances the session by one host frame.
func (a *app) Update() error {
	s := a.session
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace), inpututil.IsKeyJustPressed(ebiten.KeyP):
		s.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		s.StepOnce()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		s.Clear()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if err := s.Reset(a.w, a.h); err != nil {
			return err
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyTab), inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		s.SelectNext()
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		s.SelectPrev()
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		s.GrowBrush()
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		s.ShrinkBrush()
	case inpututil.IsKeyJustPressed(ebiten.KeyPeriod):
		s.Faster()
	case inpututil.IsKeyJustPressed(ebiten.KeyComma):
		s.Slower()
	}

	if _, dy := ebiten.Wheel(); dy > 0 {
		s.GrowBrush()
	} else if dy < 0 {
		s.ShrinkBrush()
	}

	mx, my := ebiten.CursorPosition()
	x, y := cellAt(mx, my, a.scale)
	s.SetCursor(x, y)
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		s.PaintSelected(x, y)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		s.Erase(x, y)
	}

	s.Frame()
	if s.Width() != a.w || s.Height() != a.h {
		a.allocate()
	}
	return nil
}

// Draw uploads the world pixels and scales them to the window.
func (a *app) Draw(screen *ebiten.Image) {
	fillRGBA(a.buf, a.session.World())
	a.img.WritePixels(a.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(a.scale), float64(a.scale))
	screen.DrawImage(a.img, op)

	cx, cy := a.session.Cursor()
	cop := &ebiten.DrawImageOptions{}
	cop.GeoM.Scale(float64(a.scale), float64(a.scale))
	cop.GeoM.Translate(float64(cx*a.scale), float64(cy*a.scale))
	cop.ColorScale.ScaleAlpha(0.5)
	screen.DrawImage(a.cursor, cop)

	ebitenutil.DebugPrint(screen, a.hud())
}

func (a *app) hud() string {
	s := a.session
	line := fmt.Sprintf("%s  tick %d  r%d  %s", s.Selected().Name, s.Tick(), s.Brush(), s.Speed())
	if s.Paused() {
		line += "  PAUSED"
	}
	return line
}

// Layout returns the logical screen size.
func (a *app) Layout(int, int) (int, int) {
	return a.w * a.scale, a.h * a.scale
}

// Run opens a window on the session and blocks until it is closed.
func Run(s *sandbox.Session, opts Options) error {
	opts = opts.normalize()
	a := newApp(s, opts.Scale)

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetTPS(opts.TPS)
	ebiten.SetWindowSize(a.w*opts.Scale, a.h*opts.Scale)

	if err := ebiten.RunGame(a); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
