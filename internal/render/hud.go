package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// HUDRows is the number of screen rows reserved below the map.
const HUDRows = 4

// DrawHUD renders the status bar and message log at the bottom of the screen.
func (r *Renderer) DrawHUD(f Frame) {
	_, screenH := r.screen.Size()
	hudY := screenH - HUDRows

	r.drawHLine(hudY, tcell.ColorGray)

	status := fmt.Sprintf("[%s]", r.theme.Name)
	if c := f.Cave; c != nil {
		status += fmt.Sprintf("  seed %q  %dx%d  rooms %d  passages %d",
			c.Seed, c.Grid.Width, c.Grid.Height, len(c.Rooms), len(c.Passages))
	}
	if m := f.Mesh; m != nil {
		status += fmt.Sprintf("  surface %d tris  walls %d tris  outlines %d",
			m.Surface.TriangleCount(), m.Walls.TriangleCount(), len(m.Outlines))
	}
	r.drawText(0, hudY+1, status, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	// Message log (last 2 messages).
	start := max(len(f.Messages)-2, 0)
	for i, msg := range f.Messages[start:] {
		r.drawText(0, hudY+2+i, msg, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

// drawText writes text starting at column x, clipped to the screen width.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	w, _ := r.screen.Size()
	text = runewidth.Truncate(text, w-x, "…")
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += runewidth.RuneWidth(ch)
	}
}
