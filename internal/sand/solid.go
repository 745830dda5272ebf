package sand

// stepSolid runs the FreeFalling/Settled machine of a movable solid.
//
// A solid settles only when straight down and both lower diagonals are
// blocked. A settled solid stays put until the cell below it opens or a
// falling neighbour wakes it.
func stepSolid(g *Grid, x, y int, rng Rand) {
	e := &g.cells[g.index(x, y)]
	if !e.Movable {
		return
	}

	if g.IsMovable(x, y, x, y+1, false) {
		e.solid.freeFalling = true
	} else if supported(g, x, y, x, y) {
		e.solid.freeFalling = false
		return
	}
	if !e.solid.freeFalling {
		return
	}

	fx, fy, left := fall(g, x, y, x, y, e.Velocity, e.solid.inertialResistance, rng)
	if left > 0 {
		side := 1
		if rng.Intn(2) == 0 {
			side = -1
		}
		if g.IsMovable(x, y, fx+side, fy+1, false) {
			fx, fy, _ = g.MoveStraight(x, y, fx, fy, 1, side, 0, true)
			fx, fy, _ = fall(g, x, y, fx, fy, left, e.solid.inertialResistance, rng)
		}
		if supported(g, x, y, fx, fy) {
			e.solid.freeFalling = false
		}
	}

	g.Swap(x, y, fx, fy)
}

// fall descends like MoveDown. Each step may wake the solids on either side
// of the current cell, with probability resistance.
func fall(g *Grid, sx, sy, x, y, dist int, resistance float64, rng Rand) (int, int, int) {
	for dist > 0 && g.IsMovable(sx, sy, x, y+1, false) {
		if resistance > 0 && rng.Float64() < resistance {
			g.wake(x-1, y)
			g.wake(x+1, y)
		}
		y++
		dist--
	}
	return x, y, dist
}

// supported reports whether the element at (sx, sy), standing at (x, y),
// can move neither down nor diagonally down.
func supported(g *Grid, sx, sy, x, y int) bool {
	return !g.IsMovable(sx, sy, x, y+1, false) &&
		!g.IsMovable(sx, sy, x-1, y+1, false) &&
		!g.IsMovable(sx, sy, x+1, y+1, false)
}
