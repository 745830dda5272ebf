package sand

import (
	"errors"
	"math/rand"
	"testing"
)

// catalogWith returns the default catalog after applying edit to every
// material definition.
func catalogWith(t *testing.T, edit func(m *Material)) *Catalog {
	t.Helper()
	defs := DefaultMaterials()
	for i := range defs {
		edit(&defs[i])
	}
	cat, err := NewCatalog(defs)
	if err != nil {
		t.Fatalf("NewCatalog() failed: %v", err)
	}
	return cat
}

func loadWorld(t *testing.T, cat *Catalog, seed int64, rows ...string) *World {
	t.Helper()
	w := NewWorld(cat, seed)
	if err := w.LoadRows(rows); err != nil {
		t.Fatalf("LoadRows() failed: %v", err)
	}
	return w
}

func materialAt(t *testing.T, w *World, x, y int) string {
	t.Helper()
	a, ok := w.Query(x, y)
	if !ok {
		t.Fatalf("Query(%d, %d) out of bounds", x, y)
	}
	return a.Material
}

func TestSolidFallsOneCell(t *testing.T) {
	cat := MustCatalog([]Material{
		{Name: "empty", Kind: KindEmpty, Glyph: '.', Movable: true, Density: -1, Colors: []ColorBand{{Hex: "#000000"}}},
		{Name: "grain", Kind: KindSolid, Glyph: 'g', Movable: true, Velocity: 1, Density: 1.2, Colors: []ColorBand{{Hex: "#f9c116"}}},
	})
	w := NewWorld(cat, 3)
	w.Build(10, 10)
	grain, _ := cat.Lookup("grain")
	if !w.Spawn(grain, 5, 0) {
		t.Fatal("Spawn() in bounds should succeed")
	}

	w.Step()

	if got := materialAt(t, w, 5, 0); got != "empty" {
		t.Errorf("(5, 0) = %s, expected empty", got)
	}
	if got := materialAt(t, w, 5, 1); got != "grain" {
		t.Errorf("(5, 1) = %s, expected grain", got)
	}
	if w.Population() != 1 {
		t.Errorf("Population() = %d, expected 1", w.Population())
	}
}

func TestLiquidLateralSplit(t *testing.T) {
	cat := DefaultCatalog()
	left, right := 0, 0

	for seed := int64(1); seed <= 1000; seed++ {
		w := loadWorld(t, cat, seed,
			".w.",
			"###",
		)
		w.Step()

		switch {
		case materialAt(t, w, 0, 0) == "water":
			left++
		case materialAt(t, w, 2, 0) == "water":
			right++
		default:
			t.Fatalf("seed %d: water stayed in place: %v", seed, w.Rows())
		}
	}

	if left < 400 || left > 600 {
		t.Errorf("left moves = %d of 1000, expected 500 ± 100 (right = %d)", left, right)
	}
}

func TestLiquidFallsThenSpreads(t *testing.T) {
	w := newTestWorld(t,
		"...w...",
		".......",
		"#######",
	)
	w.Step()

	// Velocity 4: one step down, then three sideways.
	rows := w.Rows()
	if rows[1] != "w......" && rows[1] != "......w" {
		t.Errorf("row 1 = %q, expected water at an edge", rows[1])
	}
}

func TestEnclosedGasDissipates(t *testing.T) {
	w := newTestWorld(t,
		"###",
		"#%#",
		"###",
	)
	w.Step()

	if got := materialAt(t, w, 1, 1); got != "empty" {
		t.Errorf("(1, 1) = %s, expected empty", got)
	}
	j := w.Journal()
	if len(j) != 1 || j[0].Op != OpReplace {
		t.Errorf("Journal() = %+v, expected a single replace", j)
	}
}

func TestEnclosedGasWithoutDissipationStays(t *testing.T) {
	w := newTestWorld(t,
		"###",
		"#v#",
		"###",
	)
	w.Step()

	if got := materialAt(t, w, 1, 1); got != "steam" {
		t.Errorf("(1, 1) = %s, expected steam", got)
	}
}

func TestGasRises(t *testing.T) {
	w := newTestWorld(t,
		".....",
		".....",
		".....",
		".....",
		"..v..",
	)
	w.Step()

	steam, _ := w.Catalog().Lookup("steam")
	found := false
	for y := 0; y < w.Height(); y++ {
		for x := 0; x < w.Width(); x++ {
			e, _ := w.Grid().At(x, y)
			if e.Material != steam {
				continue
			}
			found = true
			if y > 2 {
				t.Errorf("steam at (%d, %d), expected it to rise at least two rows", x, y)
			}
		}
	}
	if !found {
		t.Fatal("steam vanished")
	}
	if rows := w.Rows(); rows[4] != "....." {
		t.Errorf("bottom row = %q, expected it to be empty", rows[4])
	}
}

func TestFireBurnsOutAfterLive(t *testing.T) {
	w := newTestWorld(t,
		"...",
		".f.",
		"...",
	)
	fire, _ := w.Catalog().Lookup("fire")
	live := w.Catalog().Get(fire).Live

	for i := 1; i < live; i++ {
		w.Step()
		if got := materialAt(t, w, 1, 1); got != "fire" {
			t.Fatalf("fire gone after %d ticks, expected it to last %d", i, live)
		}
	}
	e, _ := w.Grid().At(1, 1)
	if e.Live() != 1 {
		t.Errorf("Live() = %d before the final tick, expected 1", e.Live())
	}

	w.Step()
	if got := materialAt(t, w, 1, 1); got != "empty" {
		t.Errorf("(1, 1) = %s after %d ticks, expected empty", got, live)
	}
}

func TestFireIgnitionWinsOverDousing(t *testing.T) {
	cat := catalogWith(t, func(m *Material) {
		if m.Name == "fire" {
			m.Duration = 1
			m.Movable = false
		}
	})
	// Wood below the fire comes first in the scan, water to the right second.
	w := loadWorld(t, cat, 1,
		"###",
		"#fw",
		"#W#",
	)
	w.Step()

	if got := materialAt(t, w, 1, 2); got != "fire" {
		t.Errorf("wood at (1, 2) = %s, expected fire", got)
	}
	if got := materialAt(t, w, 2, 1); got != "water" {
		t.Errorf("water at (2, 1) = %s, expected untouched water", got)
	}
	e, _ := w.Grid().At(1, 1)
	if e.Live() != 119 {
		t.Errorf("igniting fire Live() = %d, expected 119", e.Live())
	}
}

func TestFireDousedByWater(t *testing.T) {
	cat := catalogWith(t, func(m *Material) {
		if m.Name == "fire" {
			m.Duration = 1
		}
	})
	w := loadWorld(t, cat, 1,
		"####",
		"#fw#",
		"####",
	)

	w.Step()
	if got := materialAt(t, w, 2, 1); got != "steam" {
		t.Errorf("water at (2, 1) = %s, expected steam", got)
	}
	e, _ := w.Grid().At(1, 1)
	if e.Kind != KindMagic || e.Live() != 0 {
		t.Fatalf("doused fire = kind %v live %d, expected magic with live 0", e.Kind, e.Live())
	}

	w.Step()
	if n := w.Census()["fire"]; n != 0 {
		t.Errorf("fire count = %d after dousing, expected 0", n)
	}
}

func TestFireMeltsSnow(t *testing.T) {
	cat := catalogWith(t, func(m *Material) {
		if m.Name == "fire" {
			m.Duration = 1
		}
	})
	w := loadWorld(t, cat, 1,
		"####",
		"#f*#",
		"####",
	)
	w.Step()

	if got := materialAt(t, w, 2, 1); got != "water" {
		t.Errorf("snow at (2, 1) = %s, expected water", got)
	}
	e, _ := w.Grid().At(1, 1)
	if e.Live() != 0 {
		t.Errorf("fire Live() = %d after melting, expected 0", e.Live())
	}
}

func TestFireReactsOnlyOnCheckTicks(t *testing.T) {
	// Default fire: live 120, duration 6. The first check is at live 114.
	w := newTestWorld(t,
		"####",
		"#fW#",
		"####",
	)
	for i := 1; i <= 5; i++ {
		w.Step()
		if got := materialAt(t, w, 2, 1); got != "wood" {
			t.Fatalf("wood ignited after %d ticks, expected the sixth", i)
		}
	}
	w.Step()
	if got := materialAt(t, w, 2, 1); got != "fire" {
		t.Errorf("(2, 1) = %s after 6 ticks, expected fire", got)
	}
}

func TestFireReactsOnItsLastTick(t *testing.T) {
	cat := catalogWith(t, func(m *Material) {
		if m.Name == "fire" {
			m.Live = 6
			m.Duration = 6
			m.Movable = false
		}
	})
	w := loadWorld(t, cat, 1,
		"####",
		"#fW#",
		"####",
	)
	for i := 1; i <= 5; i++ {
		w.Step()
		if got := materialAt(t, w, 2, 1); got != "wood" {
			t.Fatalf("wood ignited after %d ticks, expected the sixth", i)
		}
	}

	w.Step()
	if got := materialAt(t, w, 2, 1); got != "fire" {
		t.Errorf("(2, 1) = %s after 6 ticks, expected fire", got)
	}
	if got := materialAt(t, w, 1, 1); got != "empty" {
		t.Errorf("(1, 1) = %s after 6 ticks, expected the burnt-out fire to be empty", got)
	}
}

func TestSolidSettlesWhenSupported(t *testing.T) {
	w := newTestWorld(t,
		"sss",
		"###",
	)
	w.Step()

	e, _ := w.Grid().At(1, 0)
	if e.FreeFalling() {
		t.Error("sand resting on a full floor should be settled")
	}
}

func TestSettledSolidWaitsForDisturbance(t *testing.T) {
	w := newTestWorld(t,
		"s.",
		"#.",
	)
	g := w.Grid()
	g.cells[g.index(0, 0)].solid.freeFalling = false

	w.Step()
	if got := materialAt(t, w, 0, 0); got != "sand" {
		t.Fatalf("settled sand moved without being woken")
	}

	// The slide direction is random; the solid keeps falling until it finds
	// the open diagonal.
	g.wake(0, 0)
	for i := 0; i < 64 && materialAt(t, w, 1, 1) != "sand"; i++ {
		w.Step()
	}
	if got := materialAt(t, w, 1, 1); got != "sand" {
		t.Errorf("woken sand should slide to (1, 1), grid = %v", w.Rows())
	}
}

func TestFallingSolidWakesNeighbours(t *testing.T) {
	cat := catalogWith(t, func(m *Material) {
		if m.Name == "sand" {
			m.InertialResistance = 1
		}
	})
	w := loadWorld(t, cat, 1,
		"ss",
		".#",
	)
	g := w.Grid()
	g.cells[g.index(1, 0)].solid.freeFalling = false

	stepSolid(g, 0, 0, w.rng)

	e, _ := g.At(1, 0)
	if !e.FreeFalling() {
		t.Error("neighbour of a falling solid should be woken at resistance 1")
	}
	if got := materialAt(t, w, 0, 1); got != "sand" {
		t.Errorf("falling sand should reach (0, 1)")
	}
}

func TestImmovableSolidIsInert(t *testing.T) {
	w := newTestWorld(t,
		"#",
		".",
	)
	w.Step()

	if got := materialAt(t, w, 0, 0); got != "stone" {
		t.Errorf("stone moved to leave %s", got)
	}
	if len(w.Journal()) != 0 {
		t.Errorf("Journal() = %+v, expected nothing", w.Journal())
	}
}

// randomWorld fills a w×h grid with random materials.
func randomWorld(t *testing.T, cat *Catalog, seed int64, w, h int, names ...string) *World {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	world := NewWorld(cat, seed)
	world.Build(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if r.Intn(3) == 0 {
				continue
			}
			if _, err := world.SpawnNamed(names[r.Intn(len(names))], x, y); err != nil {
				t.Fatalf("SpawnNamed() failed: %v", err)
			}
		}
	}
	return world
}

func TestVerticalSwapsRequireStrictDensity(t *testing.T) {
	w := randomWorld(t, DefaultCatalog(), 11, 24, 24,
		"water", "oil", "sand", "snow", "stone", "steam", "smoke", "fire", "wood")

	for tick := 0; tick < 80; tick++ {
		w.Step()
		for _, m := range w.Journal() {
			if m.Vertical() && m.MoverDensity <= m.DisplacedDensity {
				t.Fatalf("tick %d: vertical swap %v -> %v with density %.2f over %.2f",
					tick, m.A, m.B, m.MoverDensity, m.DisplacedDensity)
			}
		}
	}
}

func TestVisitedExclusivity(t *testing.T) {
	w := randomWorld(t, DefaultCatalog(), 23, 24, 24,
		"water", "oil", "sand", "snow", "stone", "steam", "smoke", "fire", "wood", "marble")

	for tick := 0; tick < 80; tick++ {
		w.Step()
		seen := make(map[Point]Op)
		for _, m := range w.Journal() {
			if m.Op == OpTouch {
				continue
			}
			pts := []Point{m.A}
			if m.Op == OpSwap {
				pts = append(pts, m.B)
			}
			for _, p := range pts {
				if prev, dup := seen[p]; dup {
					t.Fatalf("tick %d: %v written twice (%v then %v)", tick, p, prev, m.Op)
				}
				seen[p] = m.Op
			}
		}
	}
}

func TestMassConservation(t *testing.T) {
	w := randomWorld(t, DefaultCatalog(), 5, 20, 20,
		"water", "oil", "sand", "snow", "stone", "steam", "marble")
	before := w.Census()

	for tick := 0; tick < 60; tick++ {
		w.Step()
		after := w.Census()
		for name, n := range before {
			if after[name] != n {
				t.Fatalf("tick %d: %s count %d -> %d", tick, name, n, after[name])
			}
		}
		if len(after) != len(before) {
			t.Fatalf("tick %d: census %v, expected %v", tick, after, before)
		}
	}
}

func TestReplacementsAreDeclaredTransformations(t *testing.T) {
	cat := DefaultCatalog()
	w := randomWorld(t, cat, 9, 20, 20,
		"water", "oil", "snow", "wood", "fire", "smoke", "steam")

	name := func(id MaterialID) string { return cat.Get(id).Name }
	for tick := 0; tick < 150; tick++ {
		before := w.Census()
		w.Step()
		after := w.Census()

		delta := make(map[string]int)
		for _, m := range w.Journal() {
			if m.Op != OpReplace {
				continue
			}
			from, to := cat.Get(m.Displaced), name(m.Mover)
			switch {
			case from.Name == "fire" && to == "empty":
			case from.Dissipates && to == "empty":
			case from.Combustible && to == "fire":
			case from.Volatile && to == "steam":
			case from.Liquefiable && to == "water":
			default:
				t.Fatalf("tick %d: undeclared transformation %s -> %s", tick, from.Name, to)
			}
			delta[from.Name]--
			delta[to]++
		}

		for _, m := range cat.Materials() {
			if after[m.Name]-before[m.Name] != delta[m.Name] {
				t.Fatalf("tick %d: %s changed by %d, replacements account for %d",
					tick, m.Name, after[m.Name]-before[m.Name], delta[m.Name])
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	names := []string{"water", "oil", "sand", "snow", "steam", "fire", "wood"}
	w1 := randomWorld(t, DefaultCatalog(), 77, 16, 16, names...)
	w2 := randomWorld(t, DefaultCatalog(), 77, 16, 16, names...)

	for i := 0; i < 50; i++ {
		w1.Step()
		w2.Step()
		// Colour rolls must not disturb the simulation source.
		w1.Query(0, 0)
	}

	r1, r2 := w1.Rows(), w2.Rows()
	for y := range r1 {
		if r1[y] != r2[y] {
			t.Fatalf("row %d differs: %q vs %q", y, r1[y], r2[y])
		}
	}
	if w1.Tick() != 50 {
		t.Errorf("Tick() = %d, expected 50", w1.Tick())
	}
}

func TestStepPanicsOnMissingMaterial(t *testing.T) {
	w := newTestWorld(t, "..", "..")
	g := w.Grid()
	g.cells[g.index(1, 1)] = Element{}

	defer func() {
		if recover() == nil {
			t.Error("Step() over a cell with no material should panic")
		}
	}()
	w.Step()
}

func TestSpawnOutOfBoundsIgnored(t *testing.T) {
	w := NewWorld(DefaultCatalog(), 1)
	w.Build(3, 3)
	sand, _ := w.Catalog().Lookup("sand")

	for _, p := range []Point{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {99, 99}} {
		if w.Spawn(sand, p.X, p.Y) {
			t.Errorf("Spawn(%v) reported success", p)
		}
	}
	if w.Population() != 0 {
		t.Errorf("Population() = %d, expected 0", w.Population())
	}

	if _, err := w.SpawnNamed("unobtainium", 0, 0); !errors.Is(err, ErrUnknownMaterial) {
		t.Errorf("SpawnNamed(unknown) error = %v, expected ErrUnknownMaterial", err)
	}
}

func TestPaintDisk(t *testing.T) {
	w := NewWorld(DefaultCatalog(), 1)
	w.Build(9, 9)
	sand, _ := w.Catalog().Lookup("sand")

	tests := []struct {
		radius   int
		expected int
	}{
		{0, 1},
		{1, 5},
		{2, 13},
	}
	for _, tc := range tests {
		w.Build(9, 9)
		if n := w.Paint(sand, 4, 4, tc.radius); n != tc.expected {
			t.Errorf("Paint(radius=%d) = %d, expected %d", tc.radius, n, tc.expected)
		}
	}

	w.Build(9, 9)
	if n := w.Paint(sand, 0, 0, 1); n != 3 {
		t.Errorf("Paint() in a corner = %d, expected 3 clipped cells", n)
	}
	if n := w.Erase(0, 0, 1); n != 3 || w.Population() != 0 {
		t.Errorf("Erase() = %d, population %d, expected 3 and 0", n, w.Population())
	}
}

func TestBuildResets(t *testing.T) {
	w := newTestWorld(t, "ss", "ss")
	w.Step()
	w.Build(4, 2)

	if w.Width() != 4 || w.Height() != 2 {
		t.Errorf("size = %dx%d, expected 4x2", w.Width(), w.Height())
	}
	if w.Population() != 0 || w.Tick() != 0 {
		t.Errorf("Build() left population %d tick %d", w.Population(), w.Tick())
	}
}

func TestQueryRollsFromPalette(t *testing.T) {
	w := newTestWorld(t, "s.")
	sand, _ := w.Catalog().Lookup("sand")
	palette := w.Catalog().Get(sand).Palette()

	seen := make(map[string]int)
	for i := 0; i < 300; i++ {
		a, ok := w.Query(0, 0)
		if !ok || a.Kind != KindSolid || a.Material != "sand" {
			t.Fatalf("Query(0, 0) = %+v, %v", a, ok)
		}
		seen[a.Hex()]++
	}
	for hex := range seen {
		found := false
		for _, c := range palette {
			if c.Hex() == hex {
				found = true
			}
		}
		if !found {
			t.Errorf("rolled colour %s is not in the sand palette", hex)
		}
	}
	if len(seen) != 2 {
		t.Errorf("saw %d colours over 300 rolls, expected both bands", len(seen))
	}

	if _, ok := w.Query(5, 5); ok {
		t.Error("Query() out of bounds should report false")
	}
}

func TestRowsRoundTrip(t *testing.T) {
	rows := []string{
		"..s..",
		".www.",
		"#####",
	}
	w := newTestWorld(t, rows...)
	got := w.Rows()
	for i := range rows {
		if got[i] != rows[i] {
			t.Errorf("Rows()[%d] = %q, expected %q", i, got[i], rows[i])
		}
	}

	if err := w.LoadRows([]string{"..?"}); !errors.Is(err, ErrUnknownMaterial) {
		t.Errorf("LoadRows() with unknown glyph error = %v, expected ErrUnknownMaterial", err)
	}
}

func TestLoadRowsAtOffset(t *testing.T) {
	w := NewWorld(DefaultCatalog(), 1)
	if err := w.LoadRowsAt([]string{"ss", "ss"}, 4, 3, 3, 2); err != nil {
		t.Fatalf("LoadRowsAt() failed: %v", err)
	}
	if w.Population() != 1 {
		t.Errorf("Population() = %d, expected 1 after clipping", w.Population())
	}
	if got := materialAt(t, w, 3, 2); got != "sand" {
		t.Errorf("(3, 2) = %s, expected sand", got)
	}
}

func TestPourSkipsOccupiedCells(t *testing.T) {
	w := newTestWorld(t,
		"...",
		".#.",
		"...",
	)
	water, _ := w.Catalog().Lookup("water")

	if n := w.Pour(water, 1, 1, 1); n != 4 {
		t.Errorf("Pour() = %d, expected 4 around the stone", n)
	}
	if got := materialAt(t, w, 1, 1); got != "stone" {
		t.Errorf("Pour() overwrote (1, 1) with %s", got)
	}
}
