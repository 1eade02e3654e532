package grid

import "strings"

// Cell is the occupancy value of one grid cell.
type Cell uint8

const (
	Floor Cell = iota
	Wall
)

// Coord identifies a single cell.
type Coord struct {
	X, Y int
}

// Grid holds the binary occupancy map for one cave.
type Grid struct {
	Width, Height int
	Cells         [][]Cell
}

// New creates a Grid filled with walls.
func New(width, height int) *Grid {
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
		for x := range cells[y] {
			cells[y][x] = Wall
		}
	}
	return &Grid{Width: width, Height: height, Cells: cells}
}

// FromRows builds a Grid from rows of 0/1 values, rows[y][x].
// Any non-zero value is a wall. Rows shorter than the first are padded with walls.
func FromRows(rows [][]int) *Grid {
	if len(rows) == 0 {
		return New(0, 0)
	}
	g := New(len(rows[0]), len(rows))
	for y, row := range rows {
		for x := 0; x < g.Width && x < len(row); x++ {
			if row[x] == 0 {
				g.Cells[y][x] = Floor
			}
		}
	}
	return g
}

// InBounds reports whether (x, y) is within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the cell at (x, y). Panics if out of bounds.
func (g *Grid) At(x, y int) Cell {
	return g.Cells[y][x]
}

// Set replaces the cell at (x, y). Panics if out of bounds.
func (g *Grid) Set(x, y int, c Cell) {
	g.Cells[y][x] = c
}

// IsWall reports whether (x, y) is a wall. Out-of-range cells count as walls.
func (g *Grid) IsWall(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.Cells[y][x] == Wall
}

// Count returns how many cells hold c.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, row := range g.Cells {
		for _, v := range row {
			if v == c {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := &Grid{Width: g.Width, Height: g.Height, Cells: make([][]Cell, g.Height)}
	for y, row := range g.Cells {
		out.Cells[y] = append([]Cell(nil), row...)
	}
	return out
}

// WithBorder returns a new grid grown by size cells on every side.
// The source grid occupies the centre and the frame is solid wall.
func (g *Grid) WithBorder(size int) *Grid {
	out := New(g.Width+2*size, g.Height+2*size)
	for y := 0; y < g.Height; y++ {
		copy(out.Cells[y+size][size:size+g.Width], g.Cells[y])
	}
	return out
}

// String renders the grid with '#' for walls and '.' for floor, top row first.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.Width + 1) * g.Height)
	for y := g.Height - 1; y >= 0; y-- {
		for x := 0; x < g.Width; x++ {
			if g.Cells[y][x] == Wall {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
