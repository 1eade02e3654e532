package mesh

import "cavemesh/internal/grid"

// Vec3 is a point or offset in mesh space. Y is up.
type Vec3 struct {
	X, Y, Z float32
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(f float32) Vec3 { return Vec3{v.X * f, v.Y * f, v.Z * f} }

var (
	up      = Vec3{0, 1, 0}
	right   = Vec3{1, 0, 0}
	forward = Vec3{0, 0, 1}
)

// Node is a vertex candidate. VertexIndex stays -1 until the node is first
// used by a triangle.
type Node struct {
	Position    Vec3
	VertexIndex int
}

func newNode(pos Vec3) *Node {
	return &Node{Position: pos, VertexIndex: -1}
}

// ControlNode sits on a grid cell. It owns the midpoints to its right and
// above, which neighbouring squares share.
type ControlNode struct {
	Node
	Active bool
	Above  *Node
	Right  *Node
}

func newControlNode(pos Vec3, active bool, squareSize float32) *ControlNode {
	return &ControlNode{
		Node:   Node{Position: pos, VertexIndex: -1},
		Active: active,
		Above:  newNode(pos.Add(forward.Scale(squareSize / 2))),
		Right:  newNode(pos.Add(right.Scale(squareSize / 2))),
	}
}

// Square is one marching-squares cell.
type Square struct {
	TopLeft, TopRight, BottomRight, BottomLeft       *ControlNode
	CenterTop, CenterRight, CenterBottom, CenterLeft *Node

	// Configuration has one bit per active corner:
	// top-left 8, top-right 4, bottom-right 2, bottom-left 1.
	Configuration int
}

func newSquare(tl, tr, br, bl *ControlNode) *Square {
	s := &Square{
		TopLeft:      tl,
		TopRight:     tr,
		BottomRight:  br,
		BottomLeft:   bl,
		CenterTop:    tl.Right,
		CenterRight:  br.Above,
		CenterBottom: bl.Right,
		CenterLeft:   bl.Above,
	}
	if tl.Active {
		s.Configuration += 8
	}
	if tr.Active {
		s.Configuration += 4
	}
	if br.Active {
		s.Configuration += 2
	}
	if bl.Active {
		s.Configuration += 1
	}
	return s
}

// point names one of a square's eight nodes.
type point uint8

const (
	topLeft point = iota
	topRight
	bottomRight
	bottomLeft
	centerTop
	centerRight
	centerBottom
	centerLeft
)

func (s *Square) node(p point) *Node {
	switch p {
	case topLeft:
		return &s.TopLeft.Node
	case topRight:
		return &s.TopRight.Node
	case bottomRight:
		return &s.BottomRight.Node
	case bottomLeft:
		return &s.BottomLeft.Node
	case centerTop:
		return s.CenterTop
	case centerRight:
		return s.CenterRight
	case centerBottom:
		return s.CenterBottom
	default:
		return s.CenterLeft
	}
}

// SquareGrid holds the (W-1)×(H-1) squares of a grid, indexed [x][y].
type SquareGrid struct {
	Squares [][]*Square
}

// NewSquareGrid places a control node on every cell of g, active where the
// cell is a wall, and wires neighbouring squares to shared nodes. The grid is
// centred on the origin in the XZ plane.
func NewSquareGrid(g *grid.Grid, squareSize float32) *SquareGrid {
	countX, countY := g.Width, g.Height
	mapWidth := float32(countX) * squareSize
	mapHeight := float32(countY) * squareSize

	controls := make([][]*ControlNode, countX)
	for x := range controls {
		controls[x] = make([]*ControlNode, countY)
		for y := range controls[x] {
			pos := Vec3{
				X: -mapWidth/2 + float32(x)*squareSize + squareSize/2,
				Z: -mapHeight/2 + float32(y)*squareSize + squareSize/2,
			}
			controls[x][y] = newControlNode(pos, g.At(x, y) == grid.Wall, squareSize)
		}
	}

	sg := &SquareGrid{}
	if countX < 2 || countY < 2 {
		return sg
	}
	sg.Squares = make([][]*Square, countX-1)
	for x := range sg.Squares {
		sg.Squares[x] = make([]*Square, countY-1)
		for y := range sg.Squares[x] {
			sg.Squares[x][y] = newSquare(controls[x][y+1], controls[x+1][y+1], controls[x+1][y], controls[x][y])
		}
	}
	return sg
}
