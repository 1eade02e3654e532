package generate

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"

	"cavemesh/internal/grid"
	"cavemesh/internal/region"
)

func TestLineShallow(t *testing.T) {
	got := Line(grid.Coord{X: 0, Y: 0}, grid.Coord{X: 5, Y: 2})
	want := []grid.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 4, Y: 2}}
	assert.Equal(t, want, got)
}

func TestLineSteep(t *testing.T) {
	got := Line(grid.Coord{X: 0, Y: 0}, grid.Coord{X: 1, Y: 3})
	want := []grid.Coord{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 2}}
	assert.Equal(t, want, got)
}

func TestLineSamePoint(t *testing.T) {
	assert.Empty(t, Line(grid.Coord{X: 3, Y: 3}, grid.Coord{X: 3, Y: 3}))
}

func TestLineSymmetricLength(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for range 200 {
		a := grid.Coord{X: rng.Intn(60) - 30, Y: rng.Intn(60) - 30}
		b := grid.Coord{X: rng.Intn(60) - 30, Y: rng.Intn(60) - 30}
		require.Equal(t, len(Line(a, b)), len(Line(b, a)), "Line(%v,%v)", a, b)
	}
}

func TestLineStepsAreAdjacent(t *testing.T) {
	line := Line(grid.Coord{X: -4, Y: 7}, grid.Coord{X: 9, Y: -2})
	require.NotEmpty(t, line)
	assert.Equal(t, grid.Coord{X: -4, Y: 7}, line[0])
	for i := 1; i < len(line); i++ {
		dx, dy := abs(line[i].X-line[i-1].X), abs(line[i].Y-line[i-1].Y)
		assert.LessOrEqual(t, dx, 1)
		assert.LessOrEqual(t, dy, 1)
	}
}

func TestStampCircle(t *testing.T) {
	g := grid.New(11, 11)
	stampCircle(g, grid.Coord{X: 5, Y: 5}, 1)
	assert.Equal(t, 5, g.Count(grid.Floor), "radius 1 clears a plus shape")
	assert.Equal(t, grid.Wall, g.At(4, 4))

	g = grid.New(11, 11)
	stampCircle(g, grid.Coord{X: 5, Y: 5}, 0)
	assert.Equal(t, 1, g.Count(grid.Floor))

	g = grid.New(11, 11)
	stampCircle(g, grid.Coord{X: 5, Y: 5}, 2)
	assert.Equal(t, 13, g.Count(grid.Floor))
}

func TestStampCircleClipsToGrid(t *testing.T) {
	g := grid.New(4, 4)
	require.NotPanics(t, func() { stampCircle(g, grid.Coord{X: 0, Y: 0}, 3) })
	assert.Equal(t, grid.Floor, g.At(0, 0))
	assert.Equal(t, grid.Wall, g.At(3, 3))
}

// threeRoomGrid returns a 20×7 grid with three rectangular rooms:
// x=1..3 (15 tiles), x=7..9 (15 tiles) and x=15..18 (20 tiles).
func threeRoomGrid() *grid.Grid {
	g := grid.New(20, 7)
	for y := 1; y <= 5; y++ {
		for _, x := range []int{1, 2, 3, 7, 8, 9, 15, 16, 17, 18} {
			g.Set(x, y, grid.Floor)
		}
	}
	return g
}

func TestConnectClosestRooms(t *testing.T) {
	g := threeRoomGrid()
	rooms, _ := buildRooms(g, 1)
	require.Len(t, rooms, 3)
	require.NoError(t, selectMain(rooms))
	require.Equal(t, 20, rooms[0].Size, "largest room sorts first")

	cv := &carver{g: g, rooms: rooms, radius: 1}
	cv.connectClosestRooms()

	require.Len(t, cv.passages, 2)
	// The big room's nearest neighbour is the middle room, and so is the left room's.
	assert.True(t, rooms.IsConnected(0, 2))
	assert.True(t, rooms.IsConnected(1, 2))
	assert.False(t, rooms.IsConnected(0, 1))
	for i, r := range rooms {
		assert.True(t, r.IsAccessibleFromMain, "room %d", i)
	}
	assert.Len(t, region.FindAll(g, grid.Floor), 1, "corridors must join every room")
}

func TestConnectForcesReachability(t *testing.T) {
	// Two pairs far apart: the first pass links each pair internally, the
	// second pass must then bridge the pairs.
	g := grid.New(40, 7)
	for y := 1; y <= 5; y++ {
		for _, x := range []int{1, 2, 3, 4, 6, 7, 8, 30, 31, 32, 34, 35, 36} {
			g.Set(x, y, grid.Floor)
		}
	}
	rooms, _ := buildRooms(g, 1)
	require.Len(t, rooms, 4)
	require.NoError(t, selectMain(rooms))

	cv := &carver{g: g, rooms: rooms, radius: 1}
	cv.connectClosestRooms()

	assert.Len(t, cv.passages, 3)
	for i, r := range rooms {
		assert.True(t, r.IsAccessibleFromMain, "room %d", i)
	}
	assert.Len(t, region.FindAll(g, grid.Floor), 1)
}

func TestRoomsConnectPropagates(t *testing.T) {
	rooms := Rooms{{IsMain: true, IsAccessibleFromMain: true}, {}, {}, {}}
	rooms.Connect(2, 3)
	assert.False(t, rooms[2].IsAccessibleFromMain)
	assert.False(t, rooms[3].IsAccessibleFromMain)

	rooms.Connect(1, 2)
	assert.False(t, rooms[1].IsAccessibleFromMain)

	rooms.Connect(0, 1)
	reached := mapset.New[int]()
	for i, r := range rooms {
		if r.IsAccessibleFromMain {
			reached.Put(i)
		}
	}
	assert.Equal(t, 4, reached.Size(), "accessibility must spread through the whole component")
	assert.True(t, rooms.IsConnected(1, 0))
	assert.True(t, rooms.IsConnected(0, 1))
}

func TestSelectMainStable(t *testing.T) {
	rooms := Rooms{{Size: 4}, {Size: 9}, {Size: 9}, {Size: 2}}
	first := rooms[1]
	require.NoError(t, selectMain(rooms))
	assert.Same(t, first, rooms[0], "ties keep discovery order")
	assert.True(t, rooms[0].IsMain)
	assert.True(t, rooms[0].IsAccessibleFromMain)
	assert.Equal(t, 0, rooms.Main())
	for _, r := range rooms[1:] {
		assert.False(t, r.IsMain)
	}
}

func TestSelectMainEmpty(t *testing.T) {
	assert.ErrorIs(t, selectMain(nil), ErrNoViableRooms)
}
