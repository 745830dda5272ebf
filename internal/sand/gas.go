package sand

// stepGas rises along a random diagonal (or straight up). A gas that cannot
// rise either vents away, if it dissipates, or drifts sideways.
func stepGas(g *Grid, x, y int, rng Rand) {
	e := &g.cells[g.index(x, y)]
	dir := rng.Intn(3) - 1

	fx, fy, _ := g.MoveStraight(x, y, x, y, e.Velocity, dir, -1, false)
	if fy == y {
		if g.materialAt(x, y).Dissipates {
			g.Replace(x, y, g.cat.Empty())
			return
		}
		if dir != 0 {
			fx, fy, _ = g.MoveStraight(x, y, x, y, e.Velocity, dir, 0, true)
		}
	}
	g.Swap(x, y, fx, fy)
}
