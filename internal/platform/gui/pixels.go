// Package gui draws a sandbox session in a desktop window. The window itself
// needs the ebiten build tag; without it Run reports that the GUI is missing.
package gui

import (
	"github.com/vovakirdan/sandfall/internal/sand"
)

// Options configures the window.
type Options struct {
	Scale int // Screen pixels per cell
	TPS   int // Host frames per second
	Title string
}

// normalize fills in zero values.
func (o Options) normalize() Options {
	if o.Scale <= 0 {
		o.Scale = 4
	}
	if o.TPS <= 0 {
		o.TPS = 60
	}
	if o.Title == "" {
		o.Title = "sandfall"
	}
	return o
}

// fillRGBA writes one opaque pixel per world cell into buf, row by row.
// Empty cells are black. buf must hold 4*width*height bytes.
func fillRGBA(buf []byte, w *sand.World) {
	width := w.Width()
	for y := 0; y < w.Height(); y++ {
		for x := 0; x < width; x++ {
			base := (y*width + x) * 4
			buf[base+3] = 0xff

			a, ok := w.Query(x, y)
			if !ok || a.Kind == sand.KindEmpty {
				buf[base+0] = 0
				buf[base+1] = 0
				buf[base+2] = 0
				continue
			}
			r, g, b := a.Color.RGB255()
			buf[base+0] = r
			buf[base+1] = g
			buf[base+2] = b
		}
	}
}

// cellAt converts a window position to world coordinates.
func cellAt(px, py, scale int) (int, int) {
	if scale <= 0 {
		scale = 1
	}
	return px / scale, py / scale
}
