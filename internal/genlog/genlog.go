// Package genlog keeps a history of generated caves as JSON lines.
package genlog

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"cavemesh/internal/generate"
	"cavemesh/internal/mesh"
)

// FileName is the history file inside Dir.
const FileName = "caves.jsonl"

// Entry records one generated cave.
type Entry struct {
	Timestamp         time.Time `json:"timestamp"`
	Seed              string    `json:"seed"`
	Width             int       `json:"width"`
	Height            int       `json:"height"`
	RandomFillPercent int       `json:"random_fill_percent"`
	Rooms             int       `json:"rooms"`
	Passages          int       `json:"passages"`
	SurfaceVertices   int       `json:"surface_vertices"`
	SurfaceTriangles  int       `json:"surface_triangles"`
	WallTriangles     int       `json:"wall_triangles"`
	Outlines          int       `json:"outlines"`
	Source            string    `json:"source,omitempty"` // "local", "ssh", "meshview"
}

// NewEntry summarises a cave and its mesh.
func NewEntry(c *generate.Cave, m *mesh.Result, fillPercent int, source string) Entry {
	return Entry{
		Timestamp:         time.Now(),
		Seed:              c.Seed,
		Width:             c.Grid.Width,
		Height:            c.Grid.Height,
		RandomFillPercent: fillPercent,
		Rooms:             len(c.Rooms),
		Passages:          len(c.Passages),
		SurfaceVertices:   len(m.Surface.Vertices),
		SurfaceTriangles:  m.Surface.TriangleCount(),
		WallTriangles:     m.Walls.TriangleCount(),
		Outlines:          len(m.Outlines),
		Source:            source,
	}
}

// Save appends e as a single JSON line to caves.jsonl.
// Errors are logged but never returned; history is best effort.
func Save(e Entry, logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	dir, err := Dir()
	if err != nil {
		logger.Warn("cave log: cannot determine data dir", "error", err)
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("cave log: cannot create data dir", "error", err)
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Warn("cave log: cannot open file", "error", err)
		return
	}
	defer f.Close()
	data, err := json.Marshal(e)
	if err != nil {
		logger.Warn("cave log: cannot marshal JSON", "error", err)
		return
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		logger.Warn("cave log: write failed", "error", err)
	}
}

// Dir returns $XDG_DATA_HOME/cavemesh, defaulting to ~/.local/share/cavemesh.
func Dir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "cavemesh"), nil
}
