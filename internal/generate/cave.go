// Package generate builds cave levels with a cellular automaton, prunes them
// into connected rooms, and joins the rooms with carved passages.
package generate

import (
	"fmt"
	"log/slog"
	"math/rand"

	"cavemesh/internal/grid"
	"cavemesh/internal/region"
)

// Cave is the result of one generation run.
type Cave struct {
	Seed       string     // seed actually used, so random runs can be replayed
	Grid       *grid.Grid // bordered occupancy grid
	BorderSize int
	Rooms      Rooms     // largest first; coordinates are unbordered
	Passages   []Passage // coordinates are unbordered
}

// Generate runs every generation phase and returns the bordered cave.
// The config is validated first; a cave with no room large enough to survive
// pruning fails with ErrNoViableRooms.
func Generate(cfg *Config) (*Cave, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.logger()
	seed := cfg.resolveSeed()
	rng := newRand(seed)

	g := grid.New(cfg.Width, cfg.Height)
	randomFill(g, rng, cfg.RandomFillPercent)
	log.Debug("cave seeded", "seed", seed, "walls", g.Count(grid.Wall))

	for i := 0; i < cfg.SmoothingIterations; i++ {
		smooth(g)
	}
	log.Debug("cave smoothed", "iterations", cfg.SmoothingIterations, "walls", g.Count(grid.Wall))

	removed := pruneWalls(g, cfg.WallThreshold)
	log.Debug("wall regions pruned", "removed", removed)

	rooms, filled := buildRooms(g, cfg.RoomThreshold)
	log.Debug("rooms built", "rooms", len(rooms), "filled", filled)

	if err := selectMain(rooms); err != nil {
		return nil, fmt.Errorf("seed %q: %w", seed, err)
	}

	cv := &carver{g: g, rooms: rooms, radius: cfg.PassageRadius}
	cv.connectClosestRooms()
	log.Debug("rooms connected", "passages", len(cv.passages))

	cave := &Cave{
		Seed:       seed,
		Grid:       g.WithBorder(cfg.BorderSize),
		BorderSize: cfg.BorderSize,
		Rooms:      rooms,
		Passages:   cv.passages,
	}
	log.Info("cave generated",
		slog.String("seed", seed),
		slog.Int("width", cave.Grid.Width),
		slog.Int("height", cave.Grid.Height),
		slog.Int("rooms", len(rooms)),
		slog.Int("passages", len(cv.passages)),
	)
	return cave, nil
}

// randomFill walls the outer ring and fills the interior with walls at the
// given percentage.
func randomFill(g *grid.Grid, rng *rand.Rand, fillPercent int) {
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			if x == 0 || x == g.Width-1 || y == 0 || y == g.Height-1 {
				g.Set(x, y, grid.Wall)
				continue
			}
			if rng.Intn(100) < fillPercent {
				g.Set(x, y, grid.Wall)
			} else {
				g.Set(x, y, grid.Floor)
			}
		}
	}
}

// smooth applies one automaton pass in place. Cells updated earlier in the
// pass are visible to later neighbour counts; cave shapes depend on it.
func smooth(g *grid.Grid) {
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			walls := surroundingWalls(g, x, y)
			if walls > 4 {
				g.Set(x, y, grid.Wall)
			} else if walls < 4 {
				g.Set(x, y, grid.Floor)
			}
		}
	}
}

// surroundingWalls counts walls among the 8 neighbours; off-map counts as wall.
func surroundingWalls(g *grid.Grid, x, y int) int {
	count := 0
	for nx := x - 1; nx <= x+1; nx++ {
		for ny := y - 1; ny <= y+1; ny++ {
			if nx == x && ny == y {
				continue
			}
			if g.IsWall(nx, ny) {
				count++
			}
		}
	}
	return count
}

// pruneWalls turns wall regions smaller than threshold into floor and
// returns how many regions were removed.
func pruneWalls(g *grid.Grid, threshold int) int {
	removed := 0
	for _, r := range region.FindAll(g, grid.Wall) {
		if len(r) >= threshold {
			continue
		}
		for _, t := range r {
			g.Set(t.X, t.Y, grid.Floor)
		}
		removed++
	}
	return removed
}

// buildRooms fills floor regions smaller than threshold and turns the rest
// into rooms, in discovery order.
func buildRooms(g *grid.Grid, threshold int) (Rooms, int) {
	var rooms Rooms
	filled := 0
	for _, r := range region.FindAll(g, grid.Floor) {
		if len(r) < threshold {
			for _, t := range r {
				g.Set(t.X, t.Y, grid.Wall)
			}
			filled++
			continue
		}
		rooms = append(rooms, newRoom(r, g))
	}
	return rooms, filled
}

// WorldPoint returns the centre of tile t (unbordered coordinates) in world
// space, with the cave centred on the origin and one unit per tile.
func (c *Cave) WorldPoint(t grid.Coord) (x, y float64) {
	w := c.Grid.Width - 2*c.BorderSize
	h := c.Grid.Height - 2*c.BorderSize
	return float64(-w/2) + 0.5 + float64(t.X), float64(-h/2) + 0.5 + float64(t.Y)
}

// RandomFloor picks a random floor tile of the bordered grid.
// ok is false if the cave has no floor at all.
func (c *Cave) RandomFloor(rng *rand.Rand) (t grid.Coord, ok bool) {
	var floor []grid.Coord
	for y := 0; y < c.Grid.Height; y++ {
		for x := 0; x < c.Grid.Width; x++ {
			if !c.Grid.IsWall(x, y) {
				floor = append(floor, grid.Coord{X: x, Y: y})
			}
		}
	}
	if len(floor) == 0 {
		return grid.Coord{}, false
	}
	return floor[rng.Intn(len(floor))], true
}
