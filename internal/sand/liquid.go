package sand

// stepLiquid falls as far as velocity allows, then spends what is left
// drifting to a random side.
func stepLiquid(g *Grid, x, y int, rng Rand) {
	e := &g.cells[g.index(x, y)]
	fx, fy, left := g.MoveDown(x, y, x, y, e.Velocity)
	if left > 0 {
		if rng.Intn(2) == 0 {
			fx, fy, _ = g.MoveLeft(x, y, fx, fy, left)
		} else {
			fx, fy, _ = g.MoveRight(x, y, fx, fy, left)
		}
	}
	g.Swap(x, y, fx, fy)
}
