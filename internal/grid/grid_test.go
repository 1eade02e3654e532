package grid

import "testing"

func TestInBounds(t *testing.T) {
	g := New(10, 8)
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{9, 7, true},
		{-1, 0, false},
		{10, 0, false},
		{0, 8, false},
	}
	for _, c := range cases {
		got := g.InBounds(c.x, c.y)
		if got != c.want {
			t.Errorf("InBounds(%d,%d)=%v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestNewIsAllWall(t *testing.T) {
	g := New(4, 3)
	if got := g.Count(Wall); got != 12 {
		t.Errorf("Count(Wall) = %d, want 12", got)
	}
	if got := g.Count(Floor); got != 0 {
		t.Errorf("Count(Floor) = %d, want 0", got)
	}
}

func TestIsWall(t *testing.T) {
	cases := []struct {
		name string
		x, y int
		want bool
	}{
		{"floor cell", 2, 2, false},
		{"wall cell", 1, 1, true},
		{"out-of-bounds x=-1", -1, 0, true},
		{"out-of-bounds y=-1", 0, -1, true},
		{"out-of-bounds beyond width", 10, 2, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := New(5, 5)
			g.Set(2, 2, Floor)
			if got := g.IsWall(tc.x, tc.y); got != tc.want {
				t.Errorf("IsWall(%d,%d) = %v; want %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestSetAt(t *testing.T) {
	g := New(5, 5)
	if g.At(2, 3) != Wall {
		t.Fatal("expected Wall at (2,3) before any Set")
	}
	g.Set(2, 3, Floor)
	if g.At(2, 3) != Floor {
		t.Fatal("Set should be reflected by subsequent At")
	}
	if g.At(3, 2) != Wall {
		t.Fatal("Set(2,3) must not touch (3,2)")
	}
}

func TestFromRows(t *testing.T) {
	g := FromRows([][]int{
		{1, 0, 1},
		{0, 0, 1},
	})
	if g.Width != 3 || g.Height != 2 {
		t.Fatalf("size = %dx%d, want 3x2", g.Width, g.Height)
	}
	if g.At(1, 0) != Floor || g.At(0, 1) != Floor || g.At(2, 1) != Wall {
		t.Errorf("unexpected cells:\n%s", g)
	}
}

func TestClone(t *testing.T) {
	g := New(3, 3)
	c := g.Clone()
	c.Set(1, 1, Floor)
	if g.At(1, 1) != Wall {
		t.Error("mutating the clone changed the original")
	}
}

func TestWithBorder(t *testing.T) {
	g := New(4, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			g.Set(x, y, Floor)
		}
	}
	b := g.WithBorder(2)
	if b.Width != 8 || b.Height != 7 {
		t.Fatalf("bordered size = %dx%d, want 8x7", b.Width, b.Height)
	}
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			inside := x >= 2 && x < 6 && y >= 2 && y < 5
			if inside && b.At(x, y) != Floor {
				t.Errorf("(%d,%d) should be copied floor", x, y)
			}
			if !inside && b.At(x, y) != Wall {
				t.Errorf("(%d,%d) should be border wall", x, y)
			}
		}
	}
}

func TestString(t *testing.T) {
	g := FromRows([][]int{
		{1, 0},
		{1, 1},
	})
	want := "##\n#.\n"
	if got := g.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
