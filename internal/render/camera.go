package render

// Camera translates between tile coordinates and screen coordinates.
// Tiles may be wider than one terminal column when the theme uses emoji.
type Camera struct {
	OffsetX    int
	OffsetY    int
	CellWidth  int // terminal columns per tile
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera centered on (cx, cy).
func NewCamera(cx, cy, cellWidth, viewW, viewH int) *Camera {
	if cellWidth < 1 {
		cellWidth = 1
	}
	c := &Camera{CellWidth: cellWidth, ViewWidth: viewW, ViewHeight: viewH}
	c.Center(cx, cy)
	return c
}

// Center repositions the camera so that tile (cx, cy) is in the middle.
func (c *Camera) Center(cx, cy int) {
	c.OffsetX = cx - (c.ViewWidth/c.CellWidth)/2
	c.OffsetY = cy - c.ViewHeight/2
}

// Pan moves the camera by (dx, dy) tiles.
func (c *Camera) Pan(dx, dy int) {
	c.OffsetX += dx
	c.OffsetY += dy
}

// WorldToScreen converts tile (wx, wy) to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	sx = (wx - c.OffsetX) * c.CellWidth
	sy = wy - c.OffsetY
	visible = sx >= 0 && sx+c.CellWidth <= c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts screen (sx, sy) to tile coordinates.
func (c *Camera) ScreenToWorld(sx, sy int) (int, int) {
	return sx/c.CellWidth + c.OffsetX, sy + c.OffsetY
}
