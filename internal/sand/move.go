package sand

// MoveStraight walks from (x, y) in direction (dx, dy) for at most dist
// steps on behalf of the element at (sx, sy). It stops at the first illegal
// step and returns the furthest reachable cell with the unspent budget.
func (g *Grid) MoveStraight(sx, sy, x, y, dist, dx, dy int, lateral bool) (int, int, int) {
	for dist > 0 && g.IsMovable(sx, sy, x+dx, y+dy, lateral) {
		x += dx
		y += dy
		dist--
	}
	return x, y, dist
}

// MoveUp is MoveStraight towards row 0.
func (g *Grid) MoveUp(sx, sy, x, y, dist int) (int, int, int) {
	return g.MoveStraight(sx, sy, x, y, dist, 0, -1, false)
}

// MoveDown is MoveStraight towards the last row.
func (g *Grid) MoveDown(sx, sy, x, y, dist int) (int, int, int) {
	return g.MoveStraight(sx, sy, x, y, dist, 0, 1, false)
}

// MoveLeft is a lateral MoveStraight towards column 0.
func (g *Grid) MoveLeft(sx, sy, x, y, dist int) (int, int, int) {
	return g.MoveStraight(sx, sy, x, y, dist, -1, 0, true)
}

// MoveRight is a lateral MoveStraight towards the last column.
func (g *Grid) MoveRight(sx, sy, x, y, dist int) (int, int, int) {
	return g.MoveStraight(sx, sy, x, y, dist, 1, 0, true)
}
