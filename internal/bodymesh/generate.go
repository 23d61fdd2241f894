package bodymesh

import (
	"math"

	"bodyscan-recon/internal/mathutil"
)

// builder accumulates sub-meshes into one shared buffer set. Indices
// are offset by the vertex count already present, so segments never
// share vertices.
type builder struct {
	buf Buffers
}

func (m *builder) push(p, n mathutil.Vec3) {
	m.buf.Vertices = append(m.buf.Vertices,
		float32(p[0]), float32(p[1]), float32(p[2]))
	m.buf.Normals = append(m.buf.Normals,
		float32(n[0]), float32(n[1]), float32(n[2]))
}

func (m *builder) tri(a, b, c uint32) {
	m.buf.Indices = append(m.buf.Indices, a, b, c)
}

// ellipsoid emits a UV sphere scaled per axis: rings sweep pole to
// pole, sectors sweep the full turn with a duplicated seam column.
// Normals come from the parametric surface, so they stay exact under
// unequal radii.
func (m *builder) ellipsoid(center, radii mathutil.Vec3, segments int) {
	if radii[0] <= 0 || radii[1] <= 0 || radii[2] <= 0 || segments < 4 {
		return
	}
	rings := segments / 2
	sectors := segments
	base := uint32(m.buf.VertexCount())

	for i := 0; i <= rings; i++ {
		theta := math.Pi * float64(i) / float64(rings)
		st, ct := math.Sin(theta), math.Cos(theta)
		for j := 0; j <= sectors; j++ {
			phi := 2 * math.Pi * float64(j) / float64(sectors)
			sp, cp := math.Sin(phi), math.Cos(phi)

			dir := mathutil.Vec3{st * cp, ct, st * sp}
			p := center.Add(mathutil.Vec3{
				radii[0] * dir[0],
				radii[1] * dir[1],
				radii[2] * dir[2],
			})
			n := mathutil.Vec3{
				dir[0] / radii[0],
				dir[1] / radii[1],
				dir[2] / radii[2],
			}.Normalize()
			m.push(p, n)
		}
	}

	for i := 0; i < rings; i++ {
		for j := 0; j < sectors; j++ {
			first := base + uint32(i*(sectors+1)+j)
			second := base + uint32((i+1)*(sectors+1)+j)
			m.tri(first, first+1, second)
			m.tri(second, first+1, second+1)
		}
	}
}

// cylinder emits an open tube from a to b: one duplicated-seam ring
// of radial normals at each end, joined by side quads. Ends stay
// uncapped since neighboring segments overlap them anyway.
func (m *builder) cylinder(a, b mathutil.Vec3, radius float64, segments int) {
	axis := b.Sub(a)
	if axis.Len() < 1e-9 || radius <= 0 || segments < 3 {
		return
	}
	u, v := mathutil.OrthoBasis(axis)
	base := uint32(m.buf.VertexCount())

	for _, end := range [2]mathutil.Vec3{a, b} {
		for j := 0; j <= segments; j++ {
			ang := 2 * math.Pi * float64(j) / float64(segments)
			n := u.Scale(math.Cos(ang)).Add(v.Scale(math.Sin(ang)))
			m.push(end.Add(n.Scale(radius)), n)
		}
	}

	ring := uint32(segments + 1)
	for j := uint32(0); j < uint32(segments); j++ {
		b0 := base + j
		t0 := base + ring + j
		m.tri(b0, b0+1, t0)
		m.tri(t0, b0+1, t0+1)
	}
}
