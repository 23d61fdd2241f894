package multiview

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"bodyscan-recon/internal/camera"
	"bodyscan-recon/internal/keypoint"
)

// scaleSpanLimit caps how many leading front-view keypoints feed the
// height estimate.
const scaleSpanLimit = 50

// spanToCm roughly converts a normalized front-view vertical span to
// centimeters at the rig's subject distance.
const spanToCm = 200.0

// Reconstruct triangulates one 3D keypoint per index from the three
// rig views and scales the cloud so its vertical span matches the
// subject's height in centimeters. Any input other than exactly three
// views yields an all-zero cloud. Indices that cannot be solved, or
// that solve to non-finite coordinates, come back as the zero
// sentinel rather than NaN.
func Reconstruct(views [][]keypoint.Point2, heightCm float32) []keypoint.Point3 {
	out := make([]keypoint.Point3, keypoint.Count)
	if len(views) != camera.NumViews {
		return out
	}

	// The scale factor lives on this call's stack, so reconstructions
	// running concurrently never see each other's subject height.
	scale := heightScale(views[camera.Front], heightCm)

	pFront := camera.Projection(camera.Front)
	pLeft := camera.Projection(camera.Left)

	for i := 0; i < keypoint.Count; i++ {
		covered := true
		for _, v := range views {
			if i >= len(v) {
				covered = false
				break
			}
		}
		if !covered {
			continue
		}

		xf, yf := camera.Denormalize(views[camera.Front][i])
		xl, yl := camera.Denormalize(views[camera.Left][i])

		p, ok := triangulate(pFront, pLeft, xf, yf, xl, yl)
		if !ok {
			continue
		}

		// Flip Y so "up" is positive in the world frame.
		p3 := keypoint.Point3{
			X: float32(p[0] * scale),
			Y: float32(-p[1] * scale),
			Z: float32(p[2] * scale),
		}
		if !p3.Valid() {
			continue
		}
		out[i] = p3
	}
	return out
}

// heightScale derives the cm-per-unit factor from the vertical span
// of the leading front-view keypoints, measured against the subject's
// stated height. A missing or degenerate span leaves the cloud
// unscaled.
func heightScale(front []keypoint.Point2, heightCm float32) float64 {
	h := float64(heightCm)
	if !(h > 0) || math.IsInf(h, 0) {
		return 1
	}

	minY := math.MaxFloat64
	maxY := -math.MaxFloat64
	n := len(front)
	if n > scaleSpanLimit {
		n = scaleSpanLimit
	}
	for j := 0; j < n; j++ {
		y := float64(front[j].Y)
		if y > 0 && y < 1 {
			minY = math.Min(minY, y)
			maxY = math.Max(maxY, y)
		}
	}
	if maxY <= minY {
		return 1
	}

	est := (maxY - minY) * spanToCm
	if est <= 0 {
		return 1
	}
	return h / est
}

// triangulate solves the homogeneous two-view DLT system for one
// keypoint: each view contributes two rows of the 4×4 design matrix,
// and the solution is the right singular vector of the smallest
// singular value.
func triangulate(p0, p1 *mat.Dense, x0, y0, x1, y1 float64) ([3]float64, bool) {
	var pt [3]float64

	a := mat.NewDense(4, 4, nil)
	for c := 0; c < 4; c++ {
		a.Set(0, c, x0*p0.At(2, c)-p0.At(0, c))
		a.Set(1, c, y0*p0.At(2, c)-p0.At(1, c))
		a.Set(2, c, x1*p1.At(2, c)-p1.At(0, c))
		a.Set(3, c, y1*p1.At(2, c)-p1.At(1, c))
	}

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDFullV) {
		return pt, false
	}
	var v mat.Dense
	svd.VTo(&v)

	w := v.At(3, 3)
	if w == 0 {
		return pt, false
	}
	pt[0] = v.At(0, 3) / w
	pt[1] = v.At(1, 3) / w
	pt[2] = v.At(2, 3) / w
	for _, c := range pt {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return pt, false
		}
	}
	return pt, true
}
