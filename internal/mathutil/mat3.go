package mathutil

import "math"

// Mat3 is a row-major 3×3 matrix.
type Mat3 [9]float64

// RotY returns the matrix rotating by a radians around the vertical
// axis. The capture rig and the preview renderer only ever turn the
// subject on the spot, so this is the sole rotation the package needs.
func RotY(a float64) Mat3 {
	s, c := math.Sincos(a)
	return Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

// Apply returns m·v.
func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
