// Package render draws generated caves onto a tcell screen.
package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"cavemesh/internal/generate"
	"cavemesh/internal/grid"
	"cavemesh/internal/mesh"
)

// Frame is everything drawn in one refresh.
type Frame struct {
	Cave     *generate.Cave
	Mesh     *mesh.Result // optional; only feeds the status line
	Spawn    *grid.Coord  // bordered coordinates, optional
	Messages []string
}

// Renderer draws caves onto a tcell screen. Tile row 0 is the bottom of the
// cave, so rows are flipped on the way to the screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	theme  Theme
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen, theme Theme) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(0, 0, theme.CellWidth(), w, max(h-HUDRows, 0)),
		theme:  theme,
	}
}

// Theme returns the active theme.
func (r *Renderer) Theme() Theme { return r.theme }

// SetTheme switches tile sets. The camera keeps its centre tile.
func (r *Renderer) SetTheme(t Theme) {
	cx, cy := r.camera.ScreenToWorld(r.camera.ViewWidth/2, r.camera.ViewHeight/2)
	r.theme = t
	r.camera.CellWidth = t.CellWidth()
	r.camera.Center(cx, cy)
}

// Resize refits the viewport to the current screen size.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.ViewWidth = w
	r.camera.ViewHeight = max(h-HUDRows, 0)
}

// CenterOn recenters the camera on tile t of g.
func (r *Renderer) CenterOn(g *grid.Grid, t grid.Coord) {
	r.camera.Center(t.X, g.Height-1-t.Y)
}

// Pan moves the view by (dx, dy) tiles; positive dy moves towards the top
// of the cave.
func (r *Renderer) Pan(dx, dy int) { r.camera.Pan(dx, -dy) }

// TileAt returns the tile of g under screen cell (sx, sy).
func (r *Renderer) TileAt(g *grid.Grid, sx, sy int) (grid.Coord, bool) {
	x, row := r.camera.ScreenToWorld(sx, sy)
	t := grid.Coord{X: x, Y: g.Height - 1 - row}
	return t, g.InBounds(t.X, t.Y)
}

// WorldToScreen converts tile t of g to screen coordinates.
// visible is false when the tile falls outside the viewport.
func (r *Renderer) WorldToScreen(g *grid.Grid, t grid.Coord) (sx, sy int, visible bool) {
	return r.camera.WorldToScreen(t.X, g.Height-1-t.Y)
}

// DrawFrame renders the cave, its passages, the spawn marker, and the HUD.
func (r *Renderer) DrawFrame(f Frame) {
	r.screen.Clear()
	if f.Cave != nil {
		r.drawMap(f.Cave.Grid)
		r.drawPassages(f.Cave)
		if f.Spawn != nil {
			r.drawTile(f.Cave.Grid, *f.Spawn, r.theme.Spawn)
		}
	}
	r.DrawHUD(f)
	r.screen.Show()
}

func (r *Renderer) drawMap(g *grid.Grid) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			glyph := r.theme.Floor
			if g.At(x, y) == grid.Wall {
				glyph = r.theme.Wall
			}
			r.drawTile(g, grid.Coord{X: x, Y: y}, glyph)
		}
	}
}

// drawPassages marks the centre line of every carved passage.
func (r *Renderer) drawPassages(c *generate.Cave) {
	b := c.BorderSize
	for _, p := range c.Passages {
		from := grid.Coord{X: p.From.X + b, Y: p.From.Y + b}
		to := grid.Coord{X: p.To.X + b, Y: p.To.Y + b}
		for _, t := range generate.Line(from, to) {
			if !c.Grid.IsWall(t.X, t.Y) {
				r.drawTile(c.Grid, t, r.theme.Passage)
			}
		}
	}
}

func (r *Renderer) drawTile(g *grid.Grid, t grid.Coord, glyph string) {
	sx, sy, onScreen := r.WorldToScreen(g, t)
	if !onScreen {
		return
	}
	r.putGlyph(sx, sy, glyph, r.theme.Style)
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	// Pad narrow glyphs so every tile spans the full cell width.
	for i := runewidth.StringWidth(glyph); i < r.camera.CellWidth; i++ {
		r.screen.SetContent(x+i, y, ' ', nil, style)
	}
}
