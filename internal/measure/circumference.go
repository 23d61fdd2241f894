package measure

import (
	"math"

	"bodyscan-recon/internal/keypoint"
)

// Measurement indices in the output vector.
const (
	Waist = iota
	Chest
	Hips
	ThighL
	ThighR
	ArmL
	ArmR
	NumMeasurements
)

// Names labels the measurement vector slots, in order.
var Names = [NumMeasurements]string{
	"waist", "chest", "hips", "thigh_left", "thigh_right", "arm_left", "arm_right",
}

// Band levels as fractions of the vertical extent, measured downward
// from the top of the cloud.
const (
	fracChest = 0.25
	fracArm   = 0.30
	fracWaist = 0.50
	fracHip   = 0.60
	fracThigh = 0.70
)

// bandTolerance is a slice's half-height as a fraction of the extent.
const bandTolerance = 0.05

// minBandPoints is the least cross-section size a conic fit accepts.
const minBandPoints = 5

// minCloudPoints guards against measuring a cloud too sparse to slice.
const minCloudPoints = 10

// Side of the body by sign of X.
type side int

const (
	bothSides side = iota
	leftSide
	rightSide
)

// Circumferences estimates seven tape measurements from a
// reconstructed cloud, in centimeters: waist, chest, hips, then
// thighs and upper arms split left/right by the sign of X. A cloud
// with fewer than ten points or no vertical extent measures all
// zeros, and any band that cannot support an ellipse fit measures
// zero on its own.
func Circumferences(points []keypoint.Point3) [NumMeasurements]float32 {
	var out [NumMeasurements]float32
	if len(points) < minCloudPoints {
		return out
	}

	minY := math.MaxFloat64
	maxY := -math.MaxFloat64
	for _, p := range points {
		y := float64(p.Y)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}
	height := maxY - minY
	if height <= 0 {
		return out
	}

	level := func(frac float64) float64 { return maxY - frac*height }
	tol := height * bandTolerance

	out[Waist] = bandCircumference(points, level(fracWaist), tol, bothSides)
	out[Chest] = bandCircumference(points, level(fracChest), tol, bothSides)
	out[Hips] = bandCircumference(points, level(fracHip), tol, bothSides)
	out[ThighL] = bandCircumference(points, level(fracThigh), tol, leftSide)
	out[ThighR] = bandCircumference(points, level(fracThigh), tol, rightSide)
	out[ArmL] = bandCircumference(points, level(fracArm), tol, leftSide)
	out[ArmR] = bandCircumference(points, level(fracArm), tol, rightSide)
	return out
}

// bandCircumference slices the cloud at a height level, projects the
// slice onto the horizontal plane, and measures the fitted ellipse.
func bandCircumference(points []keypoint.Point3, level, tol float64, s side) float32 {
	var xs, zs []float64
	for _, p := range points {
		if math.Abs(float64(p.Y)-level) >= tol {
			continue
		}
		switch s {
		case leftSide:
			if p.X >= 0 {
				continue
			}
		case rightSide:
			if p.X <= 0 {
				continue
			}
		}
		xs = append(xs, float64(p.X))
		zs = append(zs, float64(p.Z))
	}
	if len(xs) < minBandPoints {
		return 0
	}

	e, ok := FitEllipse(xs, zs)
	if !ok {
		return 0
	}
	c := e.Circumference()
	if c <= 0 || math.IsNaN(c) || math.IsInf(c, 0) {
		return 0
	}
	return float32(c)
}
