package sand

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Appearance is what a renderer needs to draw one cell.
type Appearance struct {
	Kind     Kind
	Material string
	Glyph    rune
	Shade    rune
	Color    colorful.Color
}

// Hex returns the rolled colour as "#rrggbb".
func (a Appearance) Hex() string { return a.Color.Hex() }

// World couples a Grid with its random sources and drives the tick sweep.
// A World is not safe for concurrent use.
type World struct {
	cat     *Catalog
	grid    *Grid
	rng     Rand
	shimmer Rand
	tick    uint64
}

// NewWorld returns a 0×0 world. Call Build to size it.
// Simulation and colour rolls draw from separate sources derived from seed.
func NewWorld(cat *Catalog, seed int64) *World {
	return NewWorldWithRand(cat, NewRand(seed), NewRand(seed^0x5eed))
}

// NewWorldWithRand is NewWorld with explicit random sources.
func NewWorldWithRand(cat *Catalog, rng, shimmer Rand) *World {
	return &World{
		cat:     cat,
		grid:    NewGrid(cat, 0, 0),
		rng:     rng,
		shimmer: shimmer,
	}
}

// Build (re)initializes the grid to w×h empty cells and resets the tick.
func (w *World) Build(width, height int) {
	w.grid = NewGrid(w.cat, width, height)
	w.tick = 0
}

// Reseed replaces both random sources.
func (w *World) Reseed(seed int64) {
	w.rng = NewRand(seed)
	w.shimmer = NewRand(seed ^ 0x5eed)
}

// Width returns the grid width.
func (w *World) Width() int { return w.grid.w }

// Height returns the grid height.
func (w *World) Height() int { return w.grid.h }

// Tick returns the number of completed steps since Build.
func (w *World) Tick() uint64 { return w.tick }

// Grid exposes the underlying grid.
func (w *World) Grid() *Grid { return w.grid }

// Catalog returns the world's material catalog.
func (w *World) Catalog() *Catalog { return w.cat }

// Journal returns the mutations made by the last Step.
func (w *World) Journal() []Mutation { return w.grid.Journal() }

// Spawn places a fresh element of material id at (x, y).
// Out-of-bounds coordinates are ignored and report false.
func (w *World) Spawn(id MaterialID, x, y int) bool {
	if int(id) >= w.cat.Len() {
		return false
	}
	return w.grid.Place(x, y, id)
}

// SpawnNamed is Spawn by material name.
func (w *World) SpawnNamed(name string, x, y int) (bool, error) {
	id, ok := w.cat.Lookup(name)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
	}
	return w.Spawn(id, x, y), nil
}

// Paint fills a disk of the given radius centred on (cx, cy) and returns
// how many cells were written. Radius 0 paints a single cell.
func (w *World) Paint(id MaterialID, cx, cy, radius int) int {
	if radius < 0 {
		radius = 0
	}
	n := 0
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			if w.Spawn(id, cx+dx, cy+dy) {
				n++
			}
		}
	}
	return n
}

// Erase paints the empty material.
func (w *World) Erase(cx, cy, radius int) int {
	return w.Paint(w.cat.Empty(), cx, cy, radius)
}

// Pour is Paint restricted to empty cells.
func (w *World) Pour(id MaterialID, cx, cy, radius int) int {
	if radius < 0 {
		radius = 0
	}
	n := 0
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			e, ok := w.grid.At(cx+dx, cy+dy)
			if !ok || e.Kind != KindEmpty {
				continue
			}
			if w.Spawn(id, cx+dx, cy+dy) {
				n++
			}
		}
	}
	return n
}

// Step advances the simulation by one tick. Rows are swept bottom to top,
// each left to right; cells already visited this tick are skipped.
func (w *World) Step() {
	g := w.grid
	g.beginTick()

	for y := g.h - 1; y >= 0; y-- {
		for x := 0; x < g.w; x++ {
			i := g.index(x, y)
			if g.visited[i] {
				continue
			}
			switch g.cells[i].Kind {
			case KindEmpty:
			case KindLiquid:
				stepLiquid(g, x, y, w.rng)
			case KindSolid:
				stepSolid(g, x, y, w.rng)
			case KindGas:
				stepGas(g, x, y, w.rng)
			case KindMagic:
				stepMagic(g, x, y)
			default:
				panic(fmt.Sprintf("sand: cell (%d,%d) holds no material", x, y))
			}
		}
	}
	w.tick++
}

// Query returns the appearance of (x, y) with a freshly rolled colour.
func (w *World) Query(x, y int) (Appearance, bool) {
	e, ok := w.grid.At(x, y)
	if !ok || e.Kind == KindInvalid {
		return Appearance{}, false
	}
	m := w.cat.Get(e.Material)
	return Appearance{
		Kind:     m.Kind,
		Material: m.Name,
		Glyph:    m.Glyph,
		Shade:    m.Shade,
		Color:    m.roll(w.shimmer),
	}, true
}

// Census counts cells per material name. Materials with no cells are
// omitted.
func (w *World) Census() map[string]int {
	counts := make(map[string]int)
	for _, e := range w.grid.cells {
		counts[w.cat.Get(e.Material).Name]++
	}
	return counts
}

// Population returns the number of non-empty cells.
func (w *World) Population() int {
	n := 0
	for _, e := range w.grid.cells {
		if e.Kind != KindEmpty {
			n++
		}
	}
	return n
}
