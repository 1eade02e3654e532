package mesh

// calculateOutlines walks every boundary of the triangulated surface.
// An outline edge is one used by exactly one triangle. Each returned loop
// repeats its first vertex at the end.
func (b *builder) calculateOutlines() [][]int {
	var outlines [][]int
	for v := range b.vertices {
		if b.checked.Has(v) {
			continue
		}
		next := b.connectedOutlineVertex(v)
		if next == -1 {
			continue
		}
		b.checked.Put(v)

		outline := []int{v}
		for next != -1 {
			outline = append(outline, next)
			b.checked.Put(next)
			next = b.connectedOutlineVertex(next)
		}
		outlines = append(outlines, append(outline, v))
	}
	return outlines
}

// connectedOutlineVertex returns an unchecked vertex joined to v by an
// outline edge, or -1.
func (b *builder) connectedOutlineVertex(v int) int {
	for _, t := range b.byVertex[v] {
		for i := 0; i < 3; i++ {
			other := t.At(i)
			if other == v || b.checked.Has(other) {
				continue
			}
			if b.isOutlineEdge(v, other) {
				return other
			}
		}
	}
	return -1
}

func (b *builder) isOutlineEdge(va, vb int) bool {
	shared := 0
	for _, t := range b.byVertex[va] {
		if t.Contains(vb) {
			shared++
			if shared > 1 {
				return false
			}
		}
	}
	return shared == 1
}
