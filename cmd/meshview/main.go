// meshview shows the marching-squares mesh of a generated cave in a window.
//
// Click or press space for a new cave, R to rebuild the same seed, arrows to
// pan, +/- to zoom, T to toggle the oblique wall view, O for outlines and
// P for passages.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"cavemesh/internal/generate"
	"cavemesh/internal/genlog"
	"cavemesh/internal/mesh"
	"cavemesh/internal/viewer"
)

var (
	backgroundColor = color.RGBA{0x10, 0x10, 0x18, 0xff}
	surfaceColor    = color.RGBA{0x5a, 0x60, 0x70, 0xff}
	wallColor       = color.RGBA{0x30, 0x34, 0x40, 0xff}
	outlineColor    = color.RGBA{0xf0, 0xd0, 0x60, 0xff}
	passageColor    = color.RGBA{0xe0, 0x40, 0x40, 0xff}
)

const (
	panStep = 1.0 // mesh units per frame while an arrow is held
	tilt    = 0.5
)

type meshView struct {
	cfg  viewer.Config
	log  *slog.Logger
	cave *generate.Cave
	res  *mesh.Result
	msg  string

	white *ebiten.Image

	width, height int
	panX, panZ    float32
	zoom          float32
	oblique       bool
	showOutlines  bool
	showPassages  bool
}

func newMeshView(cfg viewer.Config) *meshView {
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)
	return &meshView{
		cfg:          cfg,
		log:          cfg.Logger,
		white:        white,
		zoom:         1,
		showOutlines: true,
		showPassages: true,
	}
}

// regenerate builds a new cave, reusing the current seed when sameSeed is set.
func (v *meshView) regenerate(sameSeed bool) error {
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
		v.msg = err.Error()
		return err
	}
	res, err := mesh.Build(cave.Grid, v.cfg.Mesh)
	if err != nil {
		v.log.Warn("mesh build failed", "seed", cave.Seed, "error", err)
		v.msg = err.Error()
		return err
	}
	v.cave, v.res, v.msg = cave, res, ""
	v.panX, v.panZ, v.zoom = 0, 0, 1
	if v.cfg.History {
		genlog.Save(genlog.NewEntry(cave, res, cfg.RandomFillPercent, v.cfg.Source), v.log)
	}
	return nil
}

func (v *meshView) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		_ = v.regenerate(false)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		_ = v.regenerate(true)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		v.oblique = !v.oblique
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		v.showOutlines = !v.showOutlines
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		v.showPassages = !v.showPassages
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		v.zoom *= 1.25
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		v.zoom /= 1.25
	}

	step := float32(panStep) / v.zoom
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		v.panX -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		v.panX += step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		v.panZ += step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		v.panZ -= step
	}
	return nil
}

func (v *meshView) projection() projection {
	g := v.cave.Grid
	s := v.cfg.Mesh.SquareSize
	p := projection{
		centerX: float32(v.width) / 2,
		centerY: float32(v.height) / 2,
		panX:    v.panX,
		panZ:    v.panZ,
		scale:   fitScale(v.width, v.height, float32(g.Width)*s, float32(g.Height)*s) * v.zoom,
	}
	if v.oblique {
		p.tilt = tilt
	}
	return p
}

func (v *meshView) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	if v.cave == nil {
		ebitenutil.DebugPrint(screen, "no cave: "+v.msg)
		return
	}
	p := v.projection()

	if v.oblique {
		v.drawMesh(screen, v.res.Walls, p, wallColor)
	}
	v.drawMesh(screen, v.res.Surface, p, surfaceColor)

	if v.showOutlines {
		for _, loop := range v.res.Outlines {
			for i := 0; i+1 < len(loop); i++ {
				x0, y0 := p.point(v.res.Surface.Vertices[loop[i]])
				x1, y1 := p.point(v.res.Surface.Vertices[loop[i+1]])
				vector.StrokeLine(screen, x0, y0, x1, y1, 1.5, outlineColor, true)
			}
		}
	}
	if v.showPassages {
		s := v.cfg.Mesh.SquareSize
		for _, ps := range v.cave.Passages {
			ax, az := v.cave.WorldPoint(ps.From)
			bx, bz := v.cave.WorldPoint(ps.To)
			x0, y0 := p.point(mesh.Vec3{X: float32(ax) * s, Z: float32(az) * s})
			x1, y1 := p.point(mesh.Vec3{X: float32(bx) * s, Z: float32(bz) * s})
			vector.StrokeLine(screen, x0, y0, x1, y1, 2, passageColor, true)
		}
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"seed %q  rooms %d  passages %d\nsurface %d tris  walls %d tris  outlines %d\nFPS %.0f  %s",
		v.cave.Seed, len(v.cave.Rooms), len(v.cave.Passages),
		v.res.Surface.TriangleCount(), v.res.Walls.TriangleCount(), len(v.res.Outlines),
		ebiten.ActualFPS(), v.msg))
}

func (v *meshView) drawMesh(screen *ebiten.Image, m mesh.Mesh, p projection, clr color.Color) {
	for _, b := range triangleBatches(m, p, clr) {
		screen.DrawTriangles(b.vertices, b.indices, v.white, &ebiten.DrawTrianglesOptions{})
	}
}

func (v *meshView) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.width, v.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func main() {
	vf := viewer.NewFlags(flag.CommandLine)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg, err := vf.Config(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	cfg.Source = "meshview"

	v := newMeshView(cfg)
	if err := v.regenerate(false); err != nil && !errors.Is(err, generate.ErrNoViableRooms) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(1280, 800)
	ebiten.SetWindowTitle("cavemesh")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(v); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
