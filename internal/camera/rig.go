package camera

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"bodyscan-recon/internal/keypoint"
	"bodyscan-recon/internal/mathutil"
)

// View indices for the fixed capture rig.
const (
	Front = 0
	Left  = 1
	Right = 2

	// NumViews is the number of poses in the rig.
	NumViews = 3
)

const (
	// OrbitRadiusCm is the camera distance from the subject.
	OrbitRadiusCm = 200.0

	// ImageWidth and ImageHeight are the detector's working resolution.
	// Normalized keypoints are denormalized against these.
	ImageWidth  = 640.0
	ImageHeight = 480.0
)

// FocalLength models a ~60° horizontal field of view at the working
// width: w / (2·tan(30°)).
var FocalLength = ImageWidth / (2 * math.Tan(mathutil.Deg2Rad(30)))

// Principal point of the synthetic pinhole.
const (
	principalX = 320.0
	principalY = 320.0
)

// viewAngles places the three poses around the subject: front, then
// ±120° around the vertical axis.
var viewAngles = [NumViews]float64{0, 120, -120}

// projections holds the precomputed K·[R|t] for each pose.
var projections = [NumViews]*mat.Dense{
	pose(viewAngles[Front]),
	pose(viewAngles[Left]),
	pose(viewAngles[Right]),
}

// Projection returns the 3×4 projection matrix for a rig view.
// The returned matrix is shared and must not be modified.
func Projection(view int) *mat.Dense {
	return projections[view]
}

// Denormalize maps a [0,1]² keypoint onto the working pixel grid.
func Denormalize(p keypoint.Point2) (x, y float64) {
	return float64(p.X) * ImageWidth, float64(p.Y) * ImageHeight
}

// Observe maps a world-space point to the normalized image spot a
// capture of the given view would show it at. Captures model the
// subject turning on the spot in front of a fixed lens, so the view
// angle spins the world while the camera stays OrbitRadiusCm away.
func Observe(view int, p mathutil.Vec3) keypoint.Point2 {
	a := mathutil.Deg2Rad(viewAngles[view])
	c := mathutil.RotY(a).Apply(p)

	z := c[2] + OrbitRadiusCm
	if z == 0 {
		return keypoint.Point2{}
	}
	u := (FocalLength*c[0] + principalX*z) / z
	v := (FocalLength*c[1] + principalY*z) / z
	return keypoint.Point2{
		X: float32(u / ImageWidth),
		Y: float32(v / ImageHeight),
	}
}

// pose builds K·[R|t] for a camera orbiting the subject at angleDeg.
// The rotation spins the world around +Y and the translation keeps the
// subject OrbitRadiusCm in front of the lens.
func pose(angleDeg float64) *mat.Dense {
	a := mathutil.Deg2Rad(angleDeg)
	r := mathutil.RotY(a)
	t := mathutil.Vec3{
		OrbitRadiusCm * math.Sin(a),
		0,
		OrbitRadiusCm * math.Cos(a),
	}

	rt := mat.NewDense(3, 4, []float64{
		r[0], r[1], r[2], t[0],
		r[3], r[4], r[5], t[1],
		r[6], r[7], r[8], t[2],
	})

	var p mat.Dense
	p.Mul(intrinsics(), rt)
	return &p
}

// intrinsics is the shared synthetic pinhole matrix. The principal
// point sits at (320, 320), matching the capture calibration the
// detector output was tuned against.
func intrinsics() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		FocalLength, 0, principalX,
		0, FocalLength, principalY,
		0, 0, 1,
	})
}
