package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"cavemesh/internal/mesh"
)

// maxBatchVertices is the most vertices one DrawTriangles call can address
// with uint16 indices.
var maxBatchVertices = math.MaxUint16 + 1

// projection maps mesh space onto the window. X runs right, Z runs up the
// screen, and a non-zero tilt shears height into screen Y for an oblique view.
type projection struct {
	centerX, centerY float32 // screen centre in pixels
	panX, panZ       float32 // mesh point shown at the centre
	scale            float32 // pixels per mesh unit
	tilt             float32 // fraction of scale applied to height
}

func (p projection) point(v mesh.Vec3) (float32, float32) {
	x := p.centerX + (v.X-p.panX)*p.scale
	y := p.centerY - (v.Z-p.panZ)*p.scale - v.Y*p.tilt*p.scale
	return x, y
}

// fitScale returns the pixels per unit that fit a w×h mesh extent into the
// screen with a small margin.
func fitScale(screenW, screenH int, meshW, meshH float32) float32 {
	if meshW <= 0 || meshH <= 0 {
		return 1
	}
	return 0.95 * min(float32(screenW)/meshW, float32(screenH)/meshH)
}

// batch is one DrawTriangles call.
type batch struct {
	vertices []ebiten.Vertex
	indices  []uint16
}

// triangleBatches projects m and splits it into batches small enough for
// uint16 indices. Vertices shared within a batch are emitted once.
func triangleBatches(m mesh.Mesh, p projection, clr color.Color) []batch {
	r, g, b, a := clr.RGBA()
	cr, cg, cb, ca := float32(r)/0xffff, float32(g)/0xffff, float32(b)/0xffff, float32(a)/0xffff

	var out []batch
	var cur batch
	local := make(map[int]uint16)
	for i := 0; i+2 < len(m.Triangles); i += 3 {
		if len(cur.vertices)+3 > maxBatchVertices {
			out = append(out, cur)
			cur = batch{}
			clear(local)
		}
		for _, gi := range m.Triangles[i : i+3] {
			li, ok := local[gi]
			if !ok {
				li = uint16(len(cur.vertices))
				local[gi] = li
				x, y := p.point(m.Vertices[gi])
				cur.vertices = append(cur.vertices, ebiten.Vertex{
					DstX: x, DstY: y,
					ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
				})
			}
			cur.indices = append(cur.indices, li)
		}
	}
	if len(cur.indices) > 0 {
		out = append(out, cur)
	}
	return out
}
