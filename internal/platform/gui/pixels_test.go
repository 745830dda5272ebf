package gui

import (
	"testing"

	"github.com/vovakirdan/sandfall/internal/sand"
)

func TestFillRGBA(t *testing.T) {
	cat := sand.MustCatalog([]sand.Material{
		{Name: "empty", Kind: sand.KindEmpty, Glyph: '.', Movable: true, Density: -1, Colors: []sand.ColorBand{{Hex: "#112233"}}},
		{Name: "stone", Kind: sand.KindSolid, Glyph: '#', Density: 5, Colors: []sand.ColorBand{{Hex: "#3366ff"}}},
	})
	w := sand.NewWorld(cat, 1)
	if err := w.LoadRows([]string{"#.", ".#"}); err != nil {
		t.Fatal(err)
	}

	buf := make([]byte, 4*w.Width()*w.Height())
	fillRGBA(buf, w)

	expected := []byte{
		0x33, 0x66, 0xff, 0xff, 0, 0, 0, 0xff,
		0, 0, 0, 0xff, 0x33, 0x66, 0xff, 0xff,
	}
	for i := range expected {
		if buf[i] != expected[i] {
			t.Fatalf("fillRGBA() = %v, expected %v", buf, expected)
		}
	}
}

func TestCellAt(t *testing.T) {
	tests := []struct {
		px, py, scale int
		x, y          int
	}{
		{0, 0, 4, 0, 0},
		{7, 9, 4, 1, 2},
		{12, 3, 1, 12, 3},
		{5, 5, 0, 5, 5},
	}

	for _, tt := range tests {
		x, y := cellAt(tt.px, tt.py, tt.scale)
		if x != tt.x || y != tt.y {
			t.Errorf("cellAt(%d, %d, %d) = (%d, %d), expected (%d, %d)", tt.px, tt.py, tt.scale, x, y, tt.x, tt.y)
		}
	}
}

func TestOptionsNormalize(t *testing.T) {
	o := Options{}.normalize()
	if o.Scale != 4 || o.TPS != 60 || o.Title != "sandfall" {
		t.Errorf("normalize() = %+v, expected defaults", o)
	}
	o = Options{Scale: 2, TPS: 30, Title: "rain"}.normalize()
	if o.Scale != 2 || o.TPS != 30 || o.Title != "rain" {
		t.Errorf("normalize() = %+v, expected values kept", o)
	}
}
