package sand

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// Op identifies the kind of a journalled mutation.
type Op uint8

const (
	// OpSwap exchanges the contents of two distinct cells.
	OpSwap Op = iota + 1
	// OpReplace overwrites a cell with a fresh element.
	OpReplace
	// OpTouch is an identity swap. Nothing moved but the cell needs a redraw.
	OpTouch
)

// String returns the op name.
func (o Op) String() string {
	switch o {
	case OpSwap:
		return "swap"
	case OpReplace:
		return "replace"
	case OpTouch:
		return "touch"
	default:
		return "unknown"
	}
}

// Mutation records one write to the grid during the current tick.
// For OpReplace and OpTouch only A is set.
type Mutation struct {
	Op   Op
	A, B Point

	// Mover is the material that left A (or was written to A on replace).
	Mover     MaterialID
	Displaced MaterialID

	MoverDensity     float64
	DisplacedDensity float64
}

// Vertical reports whether the mutation is a swap along a single column.
func (m Mutation) Vertical() bool {
	return m.Op == OpSwap && m.A.X == m.B.X && m.A.Y != m.B.Y
}

// Grid is a fixed-size field of elements with per-tick visited marks.
type Grid struct {
	w, h    int
	cells   []Element
	visited []bool
	cat     *Catalog
	journal []Mutation
}

// NewGrid returns a w×h grid filled with the catalog's empty material.
// Non-positive dimensions produce an empty 0×0 grid.
func NewGrid(cat *Catalog, w, h int) *Grid {
	if w <= 0 || h <= 0 {
		w, h = 0, 0
	}
	g := &Grid{
		w:       w,
		h:       h,
		cells:   make([]Element, w*h),
		visited: make([]bool, w*h),
		cat:     cat,
	}
	empty := cat.Get(cat.Empty())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.cells[y*w+x] = newElement(empty, x, y)
		}
	}
	return g
}

// Width returns the grid width.
func (g *Grid) Width() int { return g.w }

// Height returns the grid height.
func (g *Grid) Height() int { return g.h }

// Catalog returns the catalog the grid builds elements from.
func (g *Grid) Catalog() *Catalog { return g.cat }

func (g *Grid) index(x, y int) int { return y*g.w + x }

// IsOutOfBounds reports whether (x, y) lies outside the grid.
func (g *Grid) IsOutOfBounds(x, y int) bool {
	return x < 0 || x >= g.w || y < 0 || y >= g.h
}

// InBounds is the negation of IsOutOfBounds.
func (g *Grid) InBounds(x, y int) bool { return !g.IsOutOfBounds(x, y) }

// At returns a copy of the element at (x, y).
func (g *Grid) At(x, y int) (Element, bool) {
	if g.IsOutOfBounds(x, y) {
		return Element{}, false
	}
	return g.cells[g.index(x, y)], true
}

// Visited reports whether (x, y) has been written this tick.
// Out-of-bounds coordinates report false.
func (g *Grid) Visited(x, y int) bool {
	if g.IsOutOfBounds(x, y) {
		return false
	}
	return g.visited[g.index(x, y)]
}

// IsAccessible reports whether an element at (sx, sy) may interact with
// (nx, ny) this tick: both in bounds and neither visited.
func (g *Grid) IsAccessible(sx, sy, nx, ny int) bool {
	if g.IsOutOfBounds(sx, sy) || g.IsOutOfBounds(nx, ny) {
		return false
	}
	return !g.visited[g.index(sx, sy)] && !g.visited[g.index(nx, ny)]
}

// IsMovable reports whether the element at (sx, sy) may move into (nx, ny).
// No element ever displaces a solid. Non-lateral moves also require the
// source to be strictly denser than the destination.
func (g *Grid) IsMovable(sx, sy, nx, ny int, lateral bool) bool {
	if !g.IsAccessible(sx, sy, nx, ny) {
		return false
	}
	dst := &g.cells[g.index(nx, ny)]
	if !dst.Movable || dst.Kind == KindSolid {
		return false
	}
	if lateral {
		return true
	}
	return g.cells[g.index(sx, sy)].Density > dst.Density
}

// Combustible reports whether (nx, ny) is accessible from (sx, sy) and holds
// a combustible material.
func (g *Grid) Combustible(sx, sy, nx, ny int) bool {
	return g.IsAccessible(sx, sy, nx, ny) && g.materialAt(nx, ny).Combustible
}

// Volatile reports whether (nx, ny) is accessible and volatile.
func (g *Grid) Volatile(sx, sy, nx, ny int) bool {
	return g.IsAccessible(sx, sy, nx, ny) && g.materialAt(nx, ny).Volatile
}

// Liquefiable reports whether (nx, ny) is accessible and liquefiable.
func (g *Grid) Liquefiable(sx, sy, nx, ny int) bool {
	return g.IsAccessible(sx, sy, nx, ny) && g.materialAt(nx, ny).Liquefiable
}

func (g *Grid) materialAt(x, y int) *Material {
	return g.cat.Get(g.cells[g.index(x, y)].Material)
}

// Swap exchanges two cells without any legality check and marks both
// visited. Swapping a cell with itself moves nothing and leaves the visited
// mark alone; it only records a touch so renderers redraw the cell.
func (g *Grid) Swap(x1, y1, x2, y2 int) {
	i, j := g.index(x1, y1), g.index(x2, y2)
	if i == j {
		g.journal = append(g.journal, Mutation{
			Op:           OpTouch,
			A:            Point{x1, y1},
			Mover:        g.cells[i].Material,
			MoverDensity: g.cells[i].Density,
		})
		return
	}

	a, b := g.cells[i], g.cells[j]
	g.journal = append(g.journal, Mutation{
		Op:               OpSwap,
		A:                Point{x1, y1},
		B:                Point{x2, y2},
		Mover:            a.Material,
		Displaced:        b.Material,
		MoverDensity:     a.Density,
		DisplacedDensity: b.Density,
	})

	a.X, a.Y = x2, y2
	b.X, b.Y = x1, y1
	g.cells[i], g.cells[j] = b, a
	g.visited[i] = true
	g.visited[j] = true
}

// Replace overwrites (x, y) with a fresh element of material id and marks
// it visited. It returns false for out-of-bounds coordinates.
func (g *Grid) Replace(x, y int, id MaterialID) bool {
	if g.IsOutOfBounds(x, y) {
		return false
	}
	i := g.index(x, y)
	old := g.cells[i]
	g.cells[i] = newElement(g.cat.Get(id), x, y)
	g.visited[i] = true
	g.journal = append(g.journal, Mutation{
		Op:               OpReplace,
		A:                Point{x, y},
		Mover:            id,
		Displaced:        old.Material,
		MoverDensity:     g.cells[i].Density,
		DisplacedDensity: old.Density,
	})
	return true
}

// Place writes a fresh element without marking the cell visited. Hosts use
// it between ticks.
func (g *Grid) Place(x, y int, id MaterialID) bool {
	if g.IsOutOfBounds(x, y) {
		return false
	}
	g.cells[g.index(x, y)] = newElement(g.cat.Get(id), x, y)
	return true
}

// ClearVisited resets every visited mark.
func (g *Grid) ClearVisited() {
	clear(g.visited)
}

// Journal returns the mutations recorded since the last tick began.
func (g *Grid) Journal() []Mutation {
	return g.journal
}

// beginTick resets the per-tick bookkeeping.
func (g *Grid) beginTick() {
	g.ClearVisited()
	g.journal = g.journal[:0]
}

// wake forces a solid at (x, y) back into free fall.
func (g *Grid) wake(x, y int) {
	if g.IsOutOfBounds(x, y) {
		return
	}
	e := &g.cells[g.index(x, y)]
	if e.Kind == KindSolid {
		e.solid.freeFalling = true
	}
}
