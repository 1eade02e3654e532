// Package viewer runs the interactive terminal cave viewer.
package viewer

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"cavemesh/internal/generate"
	"cavemesh/internal/genlog"
	"cavemesh/internal/grid"
	"cavemesh/internal/mesh"
	"cavemesh/internal/render"
)

// maxMessages bounds the message log.
const maxMessages = 20

// Config bundles everything a viewer needs to build caves.
type Config struct {
	Generate generate.Config
	Mesh     mesh.Options
	Theme    render.Theme
	History  bool   // append every cave to the genlog history
	Source   string // recorded in history entries
	Logger   *slog.Logger
}

// DefaultConfig returns the default generation settings with an ASCII theme.
func DefaultConfig() Config {
	return Config{
		Generate: *generate.DefaultConfig(),
		Mesh:     mesh.DefaultOptions(),
		Theme:    render.Themes[0],
		Source:   "local",
	}
}

// Viewer is the top-level orchestrator for one terminal.
type Viewer struct {
	screen    tcell.Screen
	renderer  *render.Renderer
	cfg       Config
	log       *slog.Logger
	rng       *rand.Rand
	cave      *generate.Cave
	mesh      *mesh.Result
	spawn     *grid.Coord
	messages  []string
	themeIdx  int
	mouseDown bool
}

// New creates a Viewer drawing on an initialised screen.
// No cave exists until Regenerate or Run is called.
func New(screen tcell.Screen, cfg Config) *Viewer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	v := &Viewer{
		screen:   screen,
		renderer: render.NewRenderer(screen, cfg.Theme),
		cfg:      cfg,
		log:      logger,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for i, t := range render.Themes {
		if t.Name == cfg.Theme.Name {
			v.themeIdx = i
		}
	}
	if v.cfg.Generate.Logger == nil {
		v.cfg.Generate.Logger = logger
	}
	return v
}

// Cave returns the cave on display, or nil.
func (v *Viewer) Cave() *generate.Cave { return v.cave }

// Mesh returns the mesh of the cave on display, or nil.
func (v *Viewer) Mesh() *mesh.Result { return v.mesh }

// Regenerate builds a new cave. With sameSeed the current cave's seed is
// reused; otherwise the first cave follows the configuration and later ones
// draw a fresh random seed. On failure the previous cave stays on screen.
func (v *Viewer) Regenerate(sameSeed bool) error {
	cfg := v.cfg.Generate
	switch {
	case sameSeed && v.cave != nil:
		cfg.Seed, cfg.UseRandomSeed = v.cave.Seed, false
	case v.cave != nil:
		cfg.UseRandomSeed = true
	}

	cave, err := generate.Generate(&cfg)
	if err != nil {
		v.log.Warn("generation failed", "error", err)
		if errors.Is(err, generate.ErrNoViableRooms) {
			v.addMessage("No room survived pruning; press space to try another seed.")
		} else {
			v.addMessage(fmt.Sprintf("Generation failed: %v", err))
		}
		return err
	}
	res, err := mesh.Build(cave.Grid, v.cfg.Mesh)
	if err != nil {
		v.log.Warn("mesh build failed", "seed", cave.Seed, "error", err)
		v.addMessage(fmt.Sprintf("Mesh failed: %v", err))
		return err
	}

	v.cave, v.mesh, v.spawn = cave, res, nil
	if t, ok := cave.RandomFloor(v.rng); ok {
		v.spawn = &t
	}
	v.recenter()
	v.addMessage(fmt.Sprintf("Cave %q: %d rooms, %d passages.", cave.Seed, len(cave.Rooms), len(cave.Passages)))

	if v.cfg.History {
		genlog.Save(genlog.NewEntry(cave, res, cfg.RandomFillPercent, v.cfg.Source), v.log)
	}
	return nil
}

// recenter puts the spawn marker, or the middle of the cave, on screen centre.
func (v *Viewer) recenter() {
	if v.cave == nil {
		return
	}
	g := v.cave.Grid
	c := grid.Coord{X: g.Width / 2, Y: g.Height / 2}
	if v.spawn != nil {
		c = *v.spawn
	}
	v.renderer.CenterOn(g, c)
}

// Run draws the first cave and processes input until the user quits.
// The screen is finalised on return.
func (v *Viewer) Run() {
	defer v.screen.Fini()

	if v.cave == nil {
		_ = v.Regenerate(false)
	}
	v.addMessage("space: new cave  r: same seed  arrows/hjkl: pan  t: theme  q: quit")

	for {
		v.draw()
		if !v.handle(v.screen.PollEvent()) {
			return
		}
	}
}

func (v *Viewer) draw() {
	v.renderer.DrawFrame(render.Frame{
		Cave:     v.cave,
		Mesh:     v.mesh,
		Spawn:    v.spawn,
		Messages: v.messages,
	})
}

// handle applies one event and reports whether the viewer should keep running.
func (v *Viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case nil:
		// PollEvent returns nil once the screen is finalised.
		return false
	case *tcell.EventResize:
		v.screen.Sync()
		v.renderer.Resize()
	case *tcell.EventMouse:
		pressed := ev.Buttons()&tcell.Button1 != 0
		if pressed && !v.mouseDown {
			_ = v.Regenerate(false)
		}
		v.mouseDown = pressed
	case *tcell.EventKey:
		return v.apply(keyToAction(ev))
	}
	return true
}

func (v *Viewer) apply(a Action) bool {
	switch a {
	case ActionQuit:
		return false
	case ActionRegenerate:
		_ = v.Regenerate(false)
	case ActionReplay:
		_ = v.Regenerate(true)
	case ActionRecenter:
		v.recenter()
	case ActionNextTheme:
		v.themeIdx = (v.themeIdx + 1) % len(render.Themes)
		v.renderer.SetTheme(render.Themes[v.themeIdx])
	default:
		if dx, dy := actionToDelta(a); dx != 0 || dy != 0 {
			v.renderer.Pan(dx, dy)
		}
	}
	return true
}

func (v *Viewer) addMessage(msg string) {
	v.messages = append(v.messages, msg)
	if len(v.messages) > maxMessages {
		v.messages = v.messages[len(v.messages)-maxMessages:]
	}
}
