// Package mesh turns an occupancy grid into a marching-squares surface mesh
// and extrudes walls along its outlines.
package mesh

import (
	"errors"
	"fmt"

	"cavemesh/internal/grid"
)

var (
	// ErrEmptyGrid indicates a nil or zero-sized grid.
	ErrEmptyGrid = errors.New("mesh: grid must have at least one cell")
	// ErrInvalidOptions indicates a non-positive square size or a negative wall height.
	ErrInvalidOptions = errors.New("mesh: invalid options")
)

// DefaultWallHeight is the default extrusion depth.
const DefaultWallHeight = 5

// Mesh is an indexed triangle list. len(Triangles) is a multiple of 3.
type Mesh struct {
	Vertices  []Vec3
	Triangles []int
}

// TriangleCount returns the number of triangles.
func (m Mesh) TriangleCount() int { return len(m.Triangles) / 3 }

// Options controls the mesh scale.
type Options struct {
	SquareSize float32 // world size of one grid cell
	WallHeight float32
}

// DefaultOptions returns unit squares and default-height walls.
func DefaultOptions() Options {
	return Options{SquareSize: 1, WallHeight: DefaultWallHeight}
}

// Result bundles everything produced from one grid.
type Result struct {
	Surface  Mesh    // marching-squares cover of the wall cells, at Y=0
	Walls    Mesh    // vertical quads hanging below every outline
	Outlines [][]int // closed loops of Surface vertex indices
}

// Build triangulates g, extracts its outlines, and extrudes the walls.
func Build(g *grid.Grid, opts Options) (*Result, error) {
	if g == nil || g.Width <= 0 || g.Height <= 0 {
		return nil, ErrEmptyGrid
	}
	if opts.SquareSize <= 0 {
		return nil, fmt.Errorf("%w: square size %v", ErrInvalidOptions, opts.SquareSize)
	}
	if opts.WallHeight < 0 {
		return nil, fmt.Errorf("%w: wall height %v", ErrInvalidOptions, opts.WallHeight)
	}

	b := newBuilder()
	b.triangulate(NewSquareGrid(g, opts.SquareSize))
	outlines := b.calculateOutlines()

	return &Result{
		Surface:  Mesh{Vertices: b.vertices, Triangles: b.triangles},
		Walls:    extrudeWalls(b.vertices, outlines, opts.WallHeight),
		Outlines: outlines,
	}, nil
}
