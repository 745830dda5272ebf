package sand

// Cardinal scan order for reactions: down, right, up, left.
var (
	scanDX = [4]int{0, 1, 0, -1}
	scanDY = [4]int{1, 0, -1, 0}
)

// stepMagic burns a fire-like element down by one tick and, every duration
// ticks, lets it react with one neighbour.
func stepMagic(g *Grid, x, y int) {
	e := &g.cells[g.index(x, y)]
	if e.magic.live <= 0 {
		g.Replace(x, y, g.cat.Empty())
		return
	}
	e.magic.live--
	burnt := e.magic.live == 0

	// The last tick still reacts before the fire goes out.
	if e.magic.duration > 0 && e.magic.live%e.magic.duration == 0 {
		react(g, x, y, e)
	}
	if burnt {
		g.Replace(x, y, g.cat.Empty())
		return
	}
	g.Swap(x, y, x, y)
}

// react fires at most one reaction. Per neighbour the priority is
// combustible, then volatile, then liquefiable.
func react(g *Grid, x, y int, e *Element) {
	m := g.materialAt(x, y)
	for i := range scanDX {
		nx, ny := x+scanDX[i], y+scanDY[i]
		switch {
		case g.Combustible(x, y, nx, ny):
			g.Replace(nx, ny, m.ignite)
			return
		case g.Volatile(x, y, nx, ny):
			g.Replace(nx, ny, m.vaporize)
			e.magic.live = 0
			return
		case g.Liquefiable(x, y, nx, ny):
			g.Replace(nx, ny, m.melt)
			e.magic.live = 0
			return
		}
	}
}
