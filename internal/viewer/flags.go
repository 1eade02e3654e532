package viewer

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"

	"cavemesh/internal/render"
)

// Flags binds the generation and display options shared by every program.
type Flags struct {
	cfg   Config
	seed  string
	theme string
}

// NewFlags registers the options on fs with DefaultConfig values.
func NewFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{cfg: DefaultConfig()}
	g := &f.cfg.Generate
	fs.IntVar(&g.Width, "width", g.Width, "cave width in tiles, before the border")
	fs.IntVar(&g.Height, "height", g.Height, "cave height in tiles, before the border")
	fs.StringVar(&f.seed, "seed", "", "seed string (random if empty)")
	fs.IntVar(&g.RandomFillPercent, "fill", g.RandomFillPercent, "initial wall percentage, 0..100")
	fs.IntVar(&g.SmoothingIterations, "smooth", g.SmoothingIterations, "smoothing passes")
	fs.IntVar(&g.WallThreshold, "wall-threshold", g.WallThreshold, "wall regions smaller than this become floor")
	fs.IntVar(&g.RoomThreshold, "room-threshold", g.RoomThreshold, "floor regions smaller than this become wall")
	fs.IntVar(&g.PassageRadius, "radius", g.PassageRadius, "passage radius in tiles")
	fs.IntVar(&g.BorderSize, "border", g.BorderSize, "solid wall border width")
	fs.Func("square-size", fmt.Sprintf("mesh square size (default %v)", f.cfg.Mesh.SquareSize), func(s string) error {
		_, err := fmt.Sscan(s, &f.cfg.Mesh.SquareSize)
		return err
	})
	fs.Func("wall-height", fmt.Sprintf("mesh wall height (default %v)", f.cfg.Mesh.WallHeight), func(s string) error {
		_, err := fmt.Sscan(s, &f.cfg.Mesh.WallHeight)
		return err
	})
	fs.StringVar(&f.theme, "theme", f.cfg.Theme.Name, "tile theme: "+themeNames())
	fs.BoolVar(&f.cfg.History, "history", true, "append generated caves to the history file")
	return f
}

// Config returns the parsed configuration. Call after fs.Parse.
func (f *Flags) Config(logger *slog.Logger) (Config, error) {
	cfg := f.cfg
	cfg.Generate.Seed = f.seed
	cfg.Generate.UseRandomSeed = f.seed == ""
	theme, ok := render.ThemeByName(f.theme)
	if !ok {
		return cfg, fmt.Errorf("unknown theme %q (want one of %s)", f.theme, themeNames())
	}
	cfg.Theme = theme
	cfg.Logger = logger
	cfg.Generate.Logger = logger
	if err := cfg.Generate.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func themeNames() string {
	names := make([]string, len(render.Themes))
	for i, t := range render.Themes {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}
