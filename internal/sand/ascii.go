package sand

import (
	"fmt"
	"strings"
)

// Rows encodes the grid as one string of material glyphs per row.
func (w *World) Rows() []string {
	g := w.grid
	rows := make([]string, g.h)
	var sb strings.Builder
	for y := 0; y < g.h; y++ {
		sb.Reset()
		for x := 0; x < g.w; x++ {
			sb.WriteRune(w.cat.Get(g.cells[g.index(x, y)].Material).Glyph)
		}
		rows[y] = sb.String()
	}
	return rows
}

// String renders Rows joined by newlines.
func (w *World) String() string {
	return strings.Join(w.Rows(), "\n")
}

// LoadRows rebuilds the world from glyph rows. The grid takes the size of
// the longest row; short rows are padded with empty cells. Transient state
// such as a fire's remaining life restarts from the material defaults.
func (w *World) LoadRows(rows []string) error {
	width := 0
	for _, row := range rows {
		if n := len([]rune(row)); n > width {
			width = n
		}
	}
	return w.LoadRowsAt(rows, width, len(rows), 0, 0)
}

// LoadRowsAt builds a width×height world and decodes rows into it with the
// top-left glyph at (ox, oy). Glyphs falling outside the grid are dropped.
func (w *World) LoadRowsAt(rows []string, width, height, ox, oy int) error {
	ids := make([][]MaterialID, len(rows))
	for y, row := range rows {
		for x, r := range []rune(row) {
			id, ok := w.cat.ByGlyph(r)
			if !ok {
				return fmt.Errorf("%w: glyph %q at row %d col %d", ErrUnknownMaterial, r, y, x)
			}
			ids[y] = append(ids[y], id)
		}
	}

	w.Build(width, height)
	for y, row := range ids {
		for x, id := range row {
			w.grid.Place(ox+x, oy+y, id)
		}
	}
	return nil
}
