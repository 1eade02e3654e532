package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Theme holds the glyphs used to draw one cave.
type Theme struct {
	Name    string
	Wall    string
	Floor   string
	Passage string // floor tiles on a carved passage's centre line
	Spawn   string
	Style   tcell.Style
}

// CellWidth is the widest glyph of the theme in terminal columns.
func (t Theme) CellWidth() int {
	w := 1
	for _, g := range []string{t.Wall, t.Floor, t.Passage, t.Spawn} {
		w = max(w, runewidth.StringWidth(g))
	}
	return w
}

// Themes lists the available tile sets. Index 0 is plain ASCII and works on
// any terminal.
var Themes = []Theme{
	{
		Name:    "ascii",
		Wall:    "#",
		Floor:   ".",
		Passage: "+",
		Spawn:   "@",
		Style:   tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	},
	{
		// granite: grey stone walls, dirt floor
		Name:    "granite",
		Wall:    "🪨",
		Floor:   "🟫",
		Passage: "🟨",
		Spawn:   "🧍",
		Style:   tcell.StyleDefault.Background(tcell.ColorBlack),
	},
	{
		// glacier: ice walls, snowfield floor
		Name:    "glacier",
		Wall:    "🧊",
		Floor:   "⬜",
		Passage: "🟦",
		Spawn:   "🐧",
		Style:   tcell.StyleDefault.Background(tcell.ColorBlack),
	},
	{
		// warren: fungal growth on the walls, moss underfoot
		Name:    "warren",
		Wall:    "🍄",
		Floor:   "🌿",
		Passage: "🟩",
		Spawn:   "🐌",
		Style:   tcell.StyleDefault.Background(tcell.ColorBlack),
	},
	{
		// magma: volcanic walls, ember floor
		Name:    "magma",
		Wall:    "🌋",
		Floor:   "🟥",
		Passage: "🟧",
		Spawn:   "🦎",
		Style:   tcell.StyleDefault.Background(tcell.ColorBlack),
	},
}

// ThemeByName returns the theme called name, or Themes[0].
func ThemeByName(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return Themes[0], false
}
