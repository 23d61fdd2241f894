package bodymesh

import "bodyscan-recon/internal/mathutil"

// Buffers is the triangle soup produced by synthesis: flat vertex and
// normal arrays (three floats per entry, normals unit length) and a
// triangle index list with counter-clockwise winding.
type Buffers struct {
	Vertices []float32
	Normals  []float32
	Indices  []uint32
}

// Empty reports whether nothing was synthesized.
func (b Buffers) Empty() bool {
	return len(b.Vertices) == 0
}

func (b Buffers) VertexCount() int {
	return len(b.Vertices) / 3
}

func (b Buffers) TriangleCount() int {
	return len(b.Indices) / 3
}

// Bounds returns the axis-aligned corners of the vertex set.
// ok is false for an empty buffer.
func (b Buffers) Bounds() (min, max mathutil.Vec3, ok bool) {
	for i := 0; i+2 < len(b.Vertices); i += 3 {
		v := mathutil.Vec3{
			float64(b.Vertices[i]),
			float64(b.Vertices[i+1]),
			float64(b.Vertices[i+2]),
		}
		if !ok {
			min, max = v, v
			ok = true
			continue
		}
		for c := 0; c < 3; c++ {
			if v[c] < min[c] {
				min[c] = v[c]
			}
			if v[c] > max[c] {
				max[c] = v[c]
			}
		}
	}
	return min, max, ok
}
