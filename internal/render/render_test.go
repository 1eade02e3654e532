package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"cavemesh/internal/generate"
	"cavemesh/internal/grid"
	"cavemesh/internal/mesh"
)

func newSimScreen(t *testing.T, w, h int) tcell.Screen {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	ss.SetSize(w, h)
	if err := ss.Init(); err != nil {
		t.Fatalf("SimulationScreen.Init: %v", err)
	}
	t.Cleanup(ss.Fini)
	return ss
}

func rowText(s tcell.Screen, y, n int) string {
	var b strings.Builder
	for x := 0; x < n; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

// smallCave is 3×3 with the top row open on the right:
//
//	#..
//	#.#
//	###
func smallCave() *generate.Cave {
	return &generate.Cave{
		Seed: "small",
		Grid: grid.FromRows([][]int{
			{1, 1, 1},
			{1, 0, 1},
			{1, 0, 0},
		}),
	}
}

func newTopLeftRenderer(t *testing.T) (*Renderer, tcell.Screen) {
	t.Helper()
	screen := newSimScreen(t, 40, 14)
	r := NewRenderer(screen, Themes[0])
	r.camera.OffsetX, r.camera.OffsetY = 0, 0
	return r, screen
}

func TestDrawFrameFlipsRows(t *testing.T) {
	r, screen := newTopLeftRenderer(t)
	r.DrawFrame(Frame{Cave: smallCave()})

	want := []string{"#..", "#.#", "###"}
	for y, w := range want {
		if got := rowText(screen, y, 3); got != w {
			t.Errorf("screen row %d = %q; want %q", y, got, w)
		}
	}
}

func TestDrawFrameSpawnAndPassages(t *testing.T) {
	r, screen := newTopLeftRenderer(t)
	cave := smallCave()
	cave.Passages = []generate.Passage{{From: grid.Coord{X: 1, Y: 2}, To: grid.Coord{X: 1, Y: 0}}}

	r.DrawFrame(Frame{Cave: cave})
	if got := rowText(screen, 0, 3); got != "#+." {
		t.Errorf("top row = %q; want passage marker on (1,2)", got)
	}
	if got := rowText(screen, 1, 3); got != "#+#" {
		t.Errorf("middle row = %q; want passage marker on (1,1)", got)
	}

	spawn := grid.Coord{X: 1, Y: 1}
	r.DrawFrame(Frame{Cave: cave, Spawn: &spawn})
	if got := rowText(screen, 1, 3); got != "#@#" {
		t.Errorf("middle row = %q; spawn should be drawn over the passage", got)
	}
}

func TestDrawHUDStatus(t *testing.T) {
	r, screen := newTopLeftRenderer(t)
	res, err := mesh.Build(smallCave().Grid, mesh.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	r.DrawFrame(Frame{Cave: smallCave(), Mesh: res, Messages: []string{"one", "two", "three"}})

	_, h := screen.Size()
	status := rowText(screen, h-HUDRows+1, 40)
	for _, want := range []string{"[ascii]", `seed "small"`, "3x3"} {
		if !strings.Contains(status, want) {
			t.Errorf("status %q missing %q", status, want)
		}
	}
	if got := rowText(screen, h-HUDRows+2, 3); got != "two" {
		t.Errorf("first message row = %q; want only the last two messages", got)
	}
}

func TestTileAtRoundTrip(t *testing.T) {
	r, _ := newTopLeftRenderer(t)
	g := smallCave().Grid
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			sx, sy, ok := r.WorldToScreen(g, grid.Coord{X: x, Y: y})
			if !ok {
				t.Fatalf("tile (%d,%d) not visible", x, y)
			}
			got, in := r.TileAt(g, sx, sy)
			if !in || got != (grid.Coord{X: x, Y: y}) {
				t.Errorf("TileAt(%d,%d) = %v,%v; want (%d,%d)", sx, sy, got, in, x, y)
			}
		}
	}
}

func TestCamera(t *testing.T) {
	c := NewCamera(10, 10, 2, 20, 10)
	if c.OffsetX != 5 || c.OffsetY != 5 {
		t.Fatalf("offset = (%d,%d); want (5,5)", c.OffsetX, c.OffsetY)
	}

	cases := []struct {
		wx, wy  int
		sx, sy  int
		visible bool
	}{
		{5, 5, 0, 0, true},
		{10, 10, 10, 5, true},
		{14, 14, 18, 9, true},
		{15, 10, 20, 5, false},
		{4, 10, -2, 5, false},
		{10, 15, 10, 10, false},
	}
	for _, tc := range cases {
		sx, sy, vis := c.WorldToScreen(tc.wx, tc.wy)
		if sx != tc.sx || sy != tc.sy || vis != tc.visible {
			t.Errorf("WorldToScreen(%d,%d) = (%d,%d,%v); want (%d,%d,%v)",
				tc.wx, tc.wy, sx, sy, vis, tc.sx, tc.sy, tc.visible)
		}
	}

	if x, y := c.ScreenToWorld(11, 3); x != 10 || y != 8 {
		t.Errorf("ScreenToWorld(11,3) = (%d,%d); want (10,8)", x, y)
	}

	c.Pan(-2, 3)
	if c.OffsetX != 3 || c.OffsetY != 8 {
		t.Errorf("after Pan offset = (%d,%d); want (3,8)", c.OffsetX, c.OffsetY)
	}
}

func TestThemeCellWidth(t *testing.T) {
	ascii, ok := ThemeByName("ascii")
	if !ok || ascii.CellWidth() != 1 {
		t.Errorf("ascii theme width = %d; want 1", ascii.CellWidth())
	}
	glacier, ok := ThemeByName("glacier")
	if !ok || glacier.CellWidth() != 2 {
		t.Errorf("glacier theme width = %d; want 2", glacier.CellWidth())
	}
	if _, ok := ThemeByName("nope"); ok {
		t.Error("unknown theme should not be found")
	}
}

func TestSetThemeKeepsCentre(t *testing.T) {
	screen := newSimScreen(t, 40, 14)
	r := NewRenderer(screen, Themes[0])
	g := grid.New(100, 100)
	r.CenterOn(g, grid.Coord{X: 50, Y: 50})
	glacier, _ := ThemeByName("glacier")
	r.SetTheme(glacier)

	got, _ := r.TileAt(g, r.camera.ViewWidth/2, r.camera.ViewHeight/2)
	if got != (grid.Coord{X: 50, Y: 50}) {
		t.Errorf("centre tile after theme switch = %v; want (50,50)", got)
	}
}
