package region

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cavemesh/internal/grid"
)

// TestFloodFill_Simple checks a fill on a 4×3 grid (1 = wall, 0 = floor,
// row 0 is y=0):
//
//	0 1 1 0
//	1 1 0 0
//	0 0 1 1
//
// The wall region containing (1,0) has 4 cells; the diagonal wall at (2,2)
// must not join it.
func TestFloodFill_Simple(t *testing.T) {
	g := grid.FromRows([][]int{
		{0, 1, 1, 0},
		{1, 1, 0, 0},
		{0, 0, 1, 1},
	})

	r := FloodFill(g, 1, 0)
	require.Len(t, r, 4)
	assert.ElementsMatch(t, Region{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}, r)
	assert.Equal(t, grid.Coord{X: 1, Y: 0}, r[0], "seed is discovered first")

	floor := FloodFill(g, 3, 0)
	assert.ElementsMatch(t, Region{{X: 3, Y: 0}, {X: 2, Y: 1}, {X: 3, Y: 1}}, floor)
}

func TestFloodFill_OutOfRange(t *testing.T) {
	g := grid.New(3, 3)
	assert.Empty(t, FloodFill(g, -1, 0))
	assert.Empty(t, FloodFill(g, 0, 3))
}

func TestFloodFill_DoesNotLeakVisited(t *testing.T) {
	g := grid.New(3, 3)
	first := FloodFill(g, 0, 0)
	second := FloodFill(g, 2, 2)
	assert.Len(t, first, 9)
	assert.Len(t, second, 9, "each call must use its own visited map")
}

func TestFindAll_Counts(t *testing.T) {
	g := grid.FromRows([][]int{
		{1, 0, 0, 0, 1},
		{0, 1, 0, 1, 0},
		{0, 0, 1, 0, 0},
		{0, 1, 0, 1, 0},
		{1, 0, 0, 0, 1},
	})

	walls := FindAll(g, grid.Wall)
	assert.Len(t, walls, 9, "diagonal walls are separate regions under 4-connectivity")

	floors := FindAll(g, grid.Floor)
	sizes := make([]int, len(floors))
	for i, r := range floors {
		sizes[i] = len(r)
	}
	sort.Ints(sizes)
	assert.Equal(t, []int{4, 4, 4, 4}, sizes)
}

func TestFindAll_DiscoveryOrder(t *testing.T) {
	// Column scan: the region touching x=0 is found before the one at x=2.
	g := grid.FromRows([][]int{
		{1, 1, 0},
		{0, 1, 1},
	})
	floors := FindAll(g, grid.Floor)
	require.Len(t, floors, 2)
	assert.Equal(t, grid.Coord{X: 0, Y: 1}, floors[0][0])
	assert.Equal(t, grid.Coord{X: 2, Y: 0}, floors[1][0])
}

// TestFindAll_Partitions checks on random grids that every cell of the queried
// value is in exactly one region.
func TestFindAll_Partitions(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		g := grid.New(17, 11)
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				if rng.Intn(100) < 45 {
					g.Set(x, y, grid.Floor)
				}
			}
		}
		for _, value := range []grid.Cell{grid.Floor, grid.Wall} {
			seen := make(map[grid.Coord]int)
			for i, r := range FindAll(g, value) {
				for _, c := range r {
					prev, dup := seen[c]
					require.False(t, dup, "trial %d: %v in regions %d and %d", trial, c, prev, i)
					seen[c] = i
					require.Equal(t, value, g.At(c.X, c.Y))
				}
			}
			assert.Equal(t, g.Count(value), len(seen), "trial %d: regions must cover every cell", trial)
		}
	}
}
