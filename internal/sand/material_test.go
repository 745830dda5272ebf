package sand

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	cat := DefaultCatalog()

	if cat.Get(cat.Empty()).Kind != KindEmpty {
		t.Fatalf("Empty() does not point to an empty material")
	}
	if got, expected := len(cat.Spawnable()), cat.Len()-1; got != expected {
		t.Errorf("len(Spawnable()) = %d, expected %d", got, expected)
	}

	fire, ok := cat.Lookup("fire")
	if !ok {
		t.Fatal("fire missing from default catalog")
	}
	m := cat.Get(fire)
	if cat.Get(m.ignite).Name != "fire" {
		t.Errorf("fire ignites into %s, expected fire", cat.Get(m.ignite).Name)
	}
	if cat.Get(m.vaporize).Name != "steam" {
		t.Errorf("fire vaporizes into %s, expected steam", cat.Get(m.vaporize).Name)
	}
	if cat.Get(m.melt).Name != "water" {
		t.Errorf("fire melts into %s, expected water", cat.Get(m.melt).Name)
	}

	for _, m := range cat.Materials() {
		id, ok := cat.ByGlyph(m.Glyph)
		if !ok || id != m.ID() {
			t.Errorf("ByGlyph(%q) = %d, %v; expected %d", m.Glyph, id, ok, m.ID())
		}
	}
}

func TestNewCatalogValidation(t *testing.T) {
	empty := Material{Name: "empty", Kind: KindEmpty, Glyph: '.', Movable: true, Density: -1, Colors: []ColorBand{{Hex: "#000000"}}}
	grain := Material{Name: "grain", Kind: KindSolid, Glyph: 'g', Movable: true, Velocity: 1, Density: 1, Colors: []ColorBand{{Hex: "#ffffff"}}}

	with := func(edit func(m *Material)) []Material {
		g := grain
		edit(&g)
		return []Material{empty, g}
	}

	tests := []struct {
		name    string
		defs    []Material
		wantErr string
	}{
		{"empty list", nil, "no materials"},
		{"no empty material", []Material{grain}, "exactly one empty"},
		{"two empty materials", []Material{empty, {Name: "void", Kind: KindEmpty, Glyph: ' ', Colors: []ColorBand{{Hex: "#000"}}}}, "exactly one empty"},
		{"missing name", with(func(m *Material) { m.Name = "" }), "no name"},
		{"duplicate name", with(func(m *Material) { m.Name = "empty" }), "duplicate material"},
		{"missing glyph", with(func(m *Material) { m.Glyph = 0 }), "no glyph"},
		{"duplicate glyph", with(func(m *Material) { m.Glyph = '.' }), "reuses glyph"},
		{"invalid kind", with(func(m *Material) { m.Kind = KindInvalid }), "invalid kind"},
		{"kind out of range", with(func(m *Material) { m.Kind = Kind(42) }), "invalid kind"},
		{"negative velocity", with(func(m *Material) { m.Velocity = -1 }), "negative velocity"},
		{"inertia above one", with(func(m *Material) { m.InertialResistance = 1.5 }), "inertial resistance"},
		{"bad hex", with(func(m *Material) { m.Colors = []ColorBand{{Hex: "yellow"}} }), "colour"},
		{"negative weight", with(func(m *Material) { m.Colors = []ColorBand{{Hex: "#fff", Weight: -2}} }), "negative weight"},
		{"magic without life", with(func(m *Material) { m.Kind = KindMagic; m.Live = 0 }), "live > 0"},
		{"magic with negative duration", with(func(m *Material) { m.Kind = KindMagic; m.Live = 5; m.Duration = -1 }), "negative duration"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCatalog(tc.defs)
			if err == nil {
				t.Fatalf("NewCatalog() succeeded, expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("NewCatalog() error = %q, expected it to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestNewCatalogNoColorBands(t *testing.T) {
	_, err := NewCatalog([]Material{
		{Name: "empty", Kind: KindEmpty, Glyph: '.'},
	})
	if !errors.Is(err, ErrNoColorBands) {
		t.Errorf("NewCatalog() error = %v, expected ErrNoColorBands", err)
	}
}

func TestNewCatalogProducts(t *testing.T) {
	base := func() []Material {
		return []Material{
			{Name: "empty", Kind: KindEmpty, Glyph: '.', Movable: true, Density: -1, Colors: []ColorBand{{Hex: "#000000"}}},
			{Name: "ember", Kind: KindMagic, Glyph: 'e', Live: 10, Duration: 2, Colors: []ColorBand{{Hex: "#ff0000"}}},
		}
	}

	cat, err := NewCatalog(base())
	if err != nil {
		t.Fatalf("NewCatalog() failed: %v", err)
	}
	ember, _ := cat.Lookup("ember")
	m := cat.Get(ember)
	if m.ignite != ember {
		t.Errorf("unset Ignite resolves to %q, expected the material itself", cat.Get(m.ignite).Name)
	}
	if m.vaporize != cat.Empty() || m.melt != cat.Empty() {
		t.Errorf("missing default products should resolve to empty")
	}

	defs := base()
	defs[1].Melt = "lava"
	if _, err := NewCatalog(defs); !errors.Is(err, ErrUnknownMaterial) {
		t.Errorf("NewCatalog() with unknown product error = %v, expected ErrUnknownMaterial", err)
	}
}

func TestNewCatalogCopiesDefinitions(t *testing.T) {
	defs := DefaultMaterials()
	cat := MustCatalog(defs)
	defs[0].Name = "changed"
	defs[3].Colors[0].Hex = "#123456"

	if _, ok := cat.Lookup("empty"); !ok {
		t.Error("catalog should not alias the caller's definitions")
	}
	sand, _ := cat.Lookup("sand")
	if cat.Get(sand).Colors[0].Hex != "#f9c116" {
		t.Error("catalog should copy colour bands")
	}
}

func TestMustCatalogPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCatalog() with no materials should panic")
		}
	}()
	MustCatalog(nil)
}

func TestColorWeights(t *testing.T) {
	cat := DefaultCatalog()
	sand, _ := cat.Lookup("sand")
	m := cat.Get(sand)
	rng := NewRand(42)

	counts := make([]int, len(m.Palette()))
	for i := 0; i < 3000; i++ {
		c := m.roll(rng)
		for j, p := range m.Palette() {
			if c == p {
				counts[j]++
			}
		}
	}
	// Bands weigh 2:1.
	if counts[0] < 1800 || counts[0] > 2200 {
		t.Errorf("first band rolled %d of 3000, expected about 2000", counts[0])
	}
	if counts[0]+counts[1] != 3000 {
		t.Errorf("rolls outside the palette: %v", counts)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in       string
		expected Kind
		ok       bool
	}{
		{"empty", KindEmpty, true},
		{"liquid", KindLiquid, true},
		{"solid", KindSolid, true},
		{"gas", KindGas, true},
		{"magic", KindMagic, true},
		{"fire", KindMagic, true},
		{"plasma", KindInvalid, false},
	}
	for _, tc := range tests {
		got, ok := ParseKind(tc.in)
		if got != tc.expected || ok != tc.ok {
			t.Errorf("ParseKind(%q) = %v, %v; expected %v, %v", tc.in, got, ok, tc.expected, tc.ok)
		}
		if ok && tc.in != "fire" && got.String() != tc.in {
			t.Errorf("%v.String() = %q, expected %q", got, got.String(), tc.in)
		}
	}
}
