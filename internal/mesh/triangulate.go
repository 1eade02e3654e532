package mesh

import "github.com/zyedidia/generic/mapset"

// Triangle is a triple of vertex indices.
type Triangle struct {
	A, B, C int
}

// At returns the i-th index (0..2).
func (t Triangle) At(i int) int {
	switch i {
	case 0:
		return t.A
	case 1:
		return t.B
	default:
		return t.C
	}
}

// Contains reports whether v is one of the triangle's vertices.
func (t Triangle) Contains(v int) bool {
	return v == t.A || v == t.B || v == t.C
}

// configurations lists, for every square configuration, the polygon to emit.
// Each polygon is fanned from its first point.
var configurations = [16][]point{
	0: nil,

	// one corner
	1: {centerLeft, centerBottom, bottomLeft},
	2: {bottomRight, centerBottom, centerRight},
	4: {topRight, centerRight, centerTop},
	8: {topLeft, centerTop, centerLeft},

	// two corners
	3:  {centerRight, bottomRight, bottomLeft, centerLeft},
	6:  {centerTop, topRight, bottomRight, centerBottom},
	9:  {topLeft, centerTop, centerBottom, bottomLeft},
	12: {topLeft, topRight, centerRight, centerLeft},
	5:  {centerTop, topRight, centerRight, centerBottom, bottomLeft, centerLeft},
	10: {topLeft, centerTop, centerRight, bottomRight, centerBottom, centerLeft},

	// three corners
	7:  {centerTop, topRight, bottomRight, bottomLeft, centerLeft},
	11: {topLeft, centerTop, centerRight, bottomRight, bottomLeft},
	13: {topLeft, topRight, centerRight, centerBottom, bottomLeft},
	14: {topLeft, topRight, bottomRight, centerBottom, centerLeft},

	// all four: no midpoints
	15: {topLeft, topRight, bottomRight, bottomLeft},
}

// builder accumulates one triangulation pass.
type builder struct {
	vertices  []Vec3
	triangles []int
	byVertex  map[int][]Triangle // vertex -> triangles that use it
	checked   mapset.Set[int]    // vertices that cannot start or extend an outline
}

func newBuilder() *builder {
	return &builder{
		byVertex: make(map[int][]Triangle),
		checked:  mapset.New[int](),
	}
}

// triangulate emits the polygon of every square, column by column.
func (b *builder) triangulate(sg *SquareGrid) {
	for _, column := range sg.Squares {
		for _, sq := range column {
			b.triangulateSquare(sq)
		}
	}
}

func (b *builder) triangulateSquare(sq *Square) {
	pts := configurations[sq.Configuration]
	if len(pts) == 0 {
		return
	}
	nodes := make([]*Node, len(pts))
	for i, p := range pts {
		nodes[i] = sq.node(p)
	}
	b.meshFromPoints(nodes)

	// Corners inside solid wall can never lie on an outline.
	if sq.Configuration == 15 {
		b.checked.Put(sq.TopLeft.VertexIndex)
		b.checked.Put(sq.TopRight.VertexIndex)
		b.checked.Put(sq.BottomRight.VertexIndex)
		b.checked.Put(sq.BottomLeft.VertexIndex)
	}
}

func (b *builder) meshFromPoints(nodes []*Node) {
	for _, n := range nodes {
		if n.VertexIndex == -1 {
			n.VertexIndex = len(b.vertices)
			b.vertices = append(b.vertices, n.Position)
		}
	}
	for i := 1; i+1 < len(nodes); i++ {
		b.createTriangle(nodes[0], nodes[i], nodes[i+1])
	}
}

func (b *builder) createTriangle(n1, n2, n3 *Node) {
	t := Triangle{n1.VertexIndex, n2.VertexIndex, n3.VertexIndex}
	b.triangles = append(b.triangles, t.A, t.B, t.C)
	b.byVertex[t.A] = append(b.byVertex[t.A], t)
	b.byVertex[t.B] = append(b.byVertex[t.B], t)
	b.byVertex[t.C] = append(b.byVertex[t.C], t)
}
