package mesh

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOBJ writes the surface and walls as two Wavefront OBJ objects.
func (r *Result) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)
	offset := 1 // OBJ indices are 1-based and global across objects
	for _, part := range []struct {
		name string
		m    Mesh
	}{
		{"surface", r.Surface},
		{"walls", r.Walls},
	} {
		fmt.Fprintf(bw, "o %s\n", part.name)
		for _, v := range part.m.Vertices {
			fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
		}
		for i := 0; i+2 < len(part.m.Triangles); i += 3 {
			t := part.m.Triangles
			fmt.Fprintf(bw, "f %d %d %d\n", t[i]+offset, t[i+1]+offset, t[i+2]+offset)
		}
		offset += len(part.m.Vertices)
	}
	return bw.Flush()
}
