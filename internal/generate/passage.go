package generate

import "cavemesh/internal/grid"

// Passage is one carved connection between two rooms.
type Passage struct {
	RoomA, RoomB int
	From, To     grid.Coord
}

// candidate is the best room pair found so far during a search.
type candidate struct {
	found        bool
	dist         int
	roomA, roomB int
	tileA, tileB grid.Coord
}

// consider compares every edge-tile pair of rooms a and b against the current
// best. Only a strictly shorter distance replaces an existing candidate.
func (c *candidate) consider(rs Rooms, a, b int) {
	for _, ta := range rs[a].EdgeTiles {
		for _, tb := range rs[b].EdgeTiles {
			dx, dy := ta.X-tb.X, ta.Y-tb.Y
			d := dx*dx + dy*dy
			if !c.found || d < c.dist {
				*c = candidate{found: true, dist: d, roomA: a, roomB: b, tileA: ta, tileB: tb}
			}
		}
	}
}

// carver connects rooms and digs the corridors into the grid.
type carver struct {
	g        *grid.Grid
	rooms    Rooms
	radius   int
	passages []Passage
}

// connectClosestRooms links every room to the main room in two passes.
//
// The first pass gives each still-unconnected room a corridor to its nearest
// neighbour. The second repeatedly joins the closest pair of (unreachable,
// reachable) rooms until every room is reachable from the main room.
func (cv *carver) connectClosestRooms() {
	rs := cv.rooms
	for a := range rs {
		if len(rs[a].Connected) > 0 {
			continue
		}
		var best candidate
		for b := range rs {
			if a == b || rs.IsConnected(a, b) {
				continue
			}
			best.consider(rs, a, b)
		}
		if best.found {
			cv.createPassage(best)
		}
	}

	for {
		var best candidate
		for a := range rs {
			if rs[a].IsAccessibleFromMain {
				continue
			}
			for b := range rs {
				if !rs[b].IsAccessibleFromMain || rs.IsConnected(a, b) {
					continue
				}
				best.consider(rs, a, b)
			}
		}
		if !best.found {
			return
		}
		cv.createPassage(best)
	}
}

// createPassage records the connection and carves a corridor of the
// configured radius along the line between the two tiles.
func (cv *carver) createPassage(c candidate) {
	cv.rooms.Connect(c.roomA, c.roomB)
	cv.passages = append(cv.passages, Passage{RoomA: c.roomA, RoomB: c.roomB, From: c.tileA, To: c.tileB})
	for _, p := range Line(c.tileA, c.tileB) {
		stampCircle(cv.g, p, cv.radius)
	}
}

// stampCircle clears every in-range cell within r of c.
func stampCircle(g *grid.Grid, c grid.Coord, r int) {
	for x := -r; x <= r; x++ {
		for y := -r; y <= r; y++ {
			if x*x+y*y > r*r {
				continue
			}
			px, py := c.X+x, c.Y+y
			if g.InBounds(px, py) {
				g.Set(px, py, grid.Floor)
			}
		}
	}
}

// Line returns the cells of a digital line from `from` towards `to`.
// The longer axis advances every step; the shorter one advances whenever the
// error accumulator reaches the longer length. `to` itself is not included,
// so the result always has max(|dx|, |dy|) points.
func Line(from, to grid.Coord) []grid.Coord {
	x, y := from.X, from.Y
	dx, dy := to.X-from.X, to.Y-from.Y

	inverted := false
	step, gradientStep := sign(dx), sign(dy)
	longest, shortest := abs(dx), abs(dy)
	if longest < shortest {
		inverted = true
		longest, shortest = shortest, longest
		step, gradientStep = gradientStep, step
	}

	line := make([]grid.Coord, 0, longest)
	acc := longest / 2
	for i := 0; i < longest; i++ {
		line = append(line, grid.Coord{X: x, Y: y})
		if inverted {
			y += step
		} else {
			x += step
		}
		acc += shortest
		if acc >= longest {
			if inverted {
				x += gradientStep
			} else {
				y += gradientStep
			}
			acc -= longest
		}
	}
	return line
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
