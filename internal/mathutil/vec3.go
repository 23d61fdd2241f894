package mathutil

import "math"

// Vec3 is a point or direction in the right-handed, Y-up space the
// reconstruction works in. Units are centimeters unless a caller says
// otherwise.
type Vec3 [3]float64

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func (a Vec3) Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Normalize returns the unit vector along v, or the zero vector when v
// is too short to carry a direction.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Mid returns the midpoint of a and b.
func Mid(a, b Vec3) Vec3 {
	return Vec3{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2, (a[2] + b[2]) / 2}
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Vec3) float64 {
	return a.Sub(b).Len()
}

// OrthoBasis returns two unit vectors spanning the plane perpendicular
// to axis. The reference axis is +Y, switched to +X when axis runs
// nearly parallel to +Y, so the frame never degenerates.
func OrthoBasis(axis Vec3) (u, v Vec3) {
	dir := axis.Normalize()
	ref := Vec3{0, 1, 0}
	if math.Abs(dir.Dot(ref)) > 0.99 {
		ref = Vec3{1, 0, 0}
	}
	u = dir.Cross(ref).Normalize()
	v = dir.Cross(u)
	return u, v
}
