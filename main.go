// cavemesh generates cellular-automata caves and meshes them with marching
// squares. Without -obj or -dump it opens the interactive terminal viewer.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"

	"cavemesh/internal/generate"
	"cavemesh/internal/genlog"
	"cavemesh/internal/mesh"
	"cavemesh/internal/viewer"
)

func main() {
	objPath := flag.String("obj", "", "write the cave mesh as Wavefront OBJ to this file and exit")
	dump := flag.Bool("dump", false, "print the cave grid to stdout and exit")
	logPath := flag.String("log", "", "log file (default: stderr for -obj/-dump, none for the viewer)")
	vf := viewer.NewFlags(flag.CommandLine)
	flag.Parse()

	batch := *objPath != "" || *dump
	logger, closeLog, err := openLogger(*logPath, batch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := vf.Config(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if batch {
		cfg.Source = "cli"
		err = runBatch(cfg, *objPath, *dump, os.Stdout)
	} else {
		err = runViewer(cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func openLogger(path string, batch bool) (*slog.Logger, func(), error) {
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log: %w", err)
		}
		return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})), func() { f.Close() }, nil
	case batch:
		return slog.New(slog.NewTextHandler(os.Stderr, nil)), func() {}, nil
	default:
		// The viewer owns the terminal.
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
}

func runViewer(cfg viewer.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	viewer.New(screen, cfg).Run()
	return nil
}

// runBatch generates one cave, writing the grid to out when dump is set and
// the mesh to objPath when it is non-empty.
func runBatch(cfg viewer.Config, objPath string, dump bool, out io.Writer) error {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	cave, err := generate.Generate(&cfg.Generate)
	if err != nil {
		return err
	}
	res, err := mesh.Build(cave.Grid, cfg.Mesh)
	if err != nil {
		return err
	}

	if dump {
		fmt.Fprintf(out, "seed %q  rooms %d  passages %d\n", cave.Seed, len(cave.Rooms), len(cave.Passages))
		fmt.Fprint(out, cave.Grid.String())
	}
	if objPath != "" {
		f, err := os.Create(objPath)
		if err != nil {
			return fmt.Errorf("create obj: %w", err)
		}
		if err := res.WriteOBJ(f); err != nil {
			f.Close()
			return fmt.Errorf("write obj: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("write obj: %w", err)
		}
		cfg.Logger.Info("mesh written", "path", objPath,
			"surface_triangles", res.Surface.TriangleCount(),
			"wall_triangles", res.Walls.TriangleCount())
	}

	if cfg.History {
		genlog.Save(genlog.NewEntry(cave, res, cfg.Generate.RandomFillPercent, cfg.Source), cfg.Logger)
	}
	return nil
}
