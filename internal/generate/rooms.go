package generate

import (
	"slices"

	"cavemesh/internal/grid"
	"cavemesh/internal/region"
)

// Room is a surviving floor region.
type Room struct {
	Tiles                []grid.Coord
	EdgeTiles            []grid.Coord // tiles with a wall (or the map edge) directly beside them
	Size                 int
	IsMain               bool
	IsAccessibleFromMain bool
	Connected            []int // indices into the owning Rooms
}

// Rooms is the arena that owns every room of one generation run.
// Connections between rooms are stored as indices into it.
type Rooms []*Room

// newRoom builds a Room from a region, collecting its edge tiles against g.
func newRoom(tiles region.Region, g *grid.Grid) *Room {
	r := &Room{Tiles: tiles, Size: len(tiles)}
	for _, t := range tiles {
		for _, d := range [4][2]int{{-1, 0}, {0, -1}, {0, 1}, {1, 0}} {
			if g.IsWall(t.X+d[0], t.Y+d[1]) {
				r.EdgeTiles = append(r.EdgeTiles, t)
				break
			}
		}
	}
	return r
}

// IsConnected reports whether rooms a and b share a direct connection.
func (rs Rooms) IsConnected(a, b int) bool {
	return slices.Contains(rs[a].Connected, b)
}

// Connect records a symmetric edge between a and b. When either side is
// already reachable from the main room, the other side's whole component
// becomes reachable too.
func (rs Rooms) Connect(a, b int) {
	if rs[a].IsAccessibleFromMain {
		rs.SetAccessible(b)
	} else if rs[b].IsAccessibleFromMain {
		rs.SetAccessible(a)
	}
	rs[a].Connected = append(rs[a].Connected, b)
	rs[b].Connected = append(rs[b].Connected, a)
}

// SetAccessible marks i and everything connected to it as reachable from the
// main room. Already-reachable rooms stop the walk.
func (rs Rooms) SetAccessible(i int) {
	stack := []int{i}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if rs[cur].IsAccessibleFromMain {
			continue
		}
		rs[cur].IsAccessibleFromMain = true
		stack = append(stack, rs[cur].Connected...)
	}
}

// Main returns the index of the main room, or -1.
func (rs Rooms) Main() int {
	return slices.IndexFunc(rs, func(r *Room) bool { return r.IsMain })
}

// selectMain orders rooms largest first (stable, so discovery order breaks
// ties) and flags the first one as the main room.
func selectMain(rs Rooms) error {
	if len(rs) == 0 {
		return ErrNoViableRooms
	}
	slices.SortStableFunc(rs, func(a, b *Room) int { return b.Size - a.Size })
	rs[0].IsMain = true
	rs[0].IsAccessibleFromMain = true
	return nil
}
