package mesh

// extrudeWalls drops a quad of the given height below every outline segment.
func extrudeWalls(vertices []Vec3, outlines [][]int, height float32) Mesh {
	var walls Mesh
	drop := up.Scale(height)
	for _, outline := range outlines {
		for i := 0; i+1 < len(outline); i++ {
			start := len(walls.Vertices)
			a, b := vertices[outline[i]], vertices[outline[i+1]]
			walls.Vertices = append(walls.Vertices, a, b, a.Sub(drop), b.Sub(drop))

			// counter-clockwise seen from the open side
			walls.Triangles = append(walls.Triangles,
				start+0, start+2, start+3,
				start+3, start+1, start+0,
			)
		}
	}
	return walls
}
