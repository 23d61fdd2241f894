package keypoint

import "math"

// Count is the length of the canonical full-body keypoint layout:
// 33 detector landmarks expanded with interpolated and padded entries.
const Count = 135

// Point2 is a detector-space keypoint, normalized to [0,1] with the
// origin at the top-left of the source image.
type Point2 struct {
	X, Y float32
}

// Point3 is a reconstructed keypoint in centimeters, +Y up.
// The zero value doubles as the "undetected" sentinel.
type Point3 struct {
	X, Y, Z float32
}

// Zero reports whether p is exactly the sentinel origin.
func (p Point3) Zero() bool {
	return p.X == 0 && p.Y == 0 && p.Z == 0
}

// Valid reports whether p carries usable geometry: all components
// finite and not the zero sentinel.
func (p Point3) Valid() bool {
	if p.Zero() {
		return false
	}
	return finite(p.X) && finite(p.Y) && finite(p.Z)
}

func finite(f float32) bool {
	f64 := float64(f)
	return !math.IsNaN(f64) && !math.IsInf(f64, 0)
}

// CountValid returns the number of valid points in pts.
func CountValid(pts []Point3) int {
	n := 0
	for _, p := range pts {
		if p.Valid() {
			n++
		}
	}
	return n
}

// Bounds returns the axis-aligned bounding box over the valid points.
// ok is false when pts holds no valid point.
func Bounds(pts []Point3) (min, max Point3, ok bool) {
	for _, p := range pts {
		if !p.Valid() {
			continue
		}
		if !ok {
			min, max = p, p
			ok = true
			continue
		}
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}
	return min, max, ok
}
