// Package region extracts 4-connected regions of equal-valued cells from a grid.
package region

import "cavemesh/internal/grid"

// Region is the set of tiles reached by one flood fill, in discovery order.
type Region []grid.Coord

// orthogonal lists neighbour offsets in the order the fill visits them.
var orthogonal = [4][2]int{{-1, 0}, {0, -1}, {0, 1}, {1, 0}}

// FloodFill returns every cell 4-connected to (startX, startY) that shares its
// value. The result is empty when the seed is out of range.
//
// Time:   O(W·H).
// Memory: O(W·H) for the visited flags, which are local to the call.
func FloodFill(g *grid.Grid, startX, startY int) Region {
	if !g.InBounds(startX, startY) {
		return nil
	}
	visited := make([][]bool, g.Height)
	for y := range visited {
		visited[y] = make([]bool, g.Width)
	}
	return fill(g, startX, startY, visited)
}

// FindAll returns every region of cells equal to value. Cells are scanned
// column by column (x outer, y inner); regions are disjoint and together cover
// every matching cell exactly once.
func FindAll(g *grid.Grid, value grid.Cell) []Region {
	var regions []Region
	seen := make([][]bool, g.Height)
	for y := range seen {
		seen[y] = make([]bool, g.Width)
	}

	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			if seen[y][x] || g.At(x, y) != value {
				continue
			}
			regions = append(regions, fill(g, x, y, seen))
		}
	}
	return regions
}

// fill runs a breadth-first search using visited as scratch space.
func fill(g *grid.Grid, startX, startY int, visited [][]bool) Region {
	value := g.At(startX, startY)
	queue := []grid.Coord{{X: startX, Y: startY}}
	visited[startY][startX] = true

	var tiles Region
	for qi := 0; qi < len(queue); qi++ {
		cur := queue[qi]
		tiles = append(tiles, cur)
		for _, d := range orthogonal {
			nx, ny := cur.X+d[0], cur.Y+d[1]
			if !g.InBounds(nx, ny) || visited[ny][nx] || g.At(nx, ny) != value {
				continue
			}
			visited[ny][nx] = true
			queue = append(queue, grid.Coord{X: nx, Y: ny})
		}
	}
	return tiles
}
