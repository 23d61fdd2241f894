package camera_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"bodyscan-recon/internal/camera"
	"bodyscan-recon/internal/keypoint"
	"bodyscan-recon/internal/mathutil"
)

// TestFocalLength verifies the 60 degree field of view at the working
// width.
func TestFocalLength(t *testing.T) {
	want := camera.ImageWidth / (2 * math.Tan(30*math.Pi/180))
	require.InDelta(t, want, camera.FocalLength, 1e-9)
	require.InDelta(t, 554.256, camera.FocalLength, 1e-3)
}

// TestProjectionFrontCenter verifies that the subject origin projects to
// the principal point at the rig distance.
func TestProjectionFrontCenter(t *testing.T) {
	p := camera.Projection(camera.Front)

	var img mat.VecDense
	img.MulVec(p, mat.NewVecDense(4, []float64{0, 0, 0, 1}))

	require.InDelta(t, camera.OrbitRadiusCm, img.AtVec(2), 1e-9)
	require.InDelta(t, 320, img.AtVec(0)/img.AtVec(2), 1e-9)
	require.InDelta(t, 320, img.AtVec(1)/img.AtVec(2), 1e-9)
}

// TestDenormalize verifies mapping normalized keypoints onto the
// working pixel grid.
func TestDenormalize(t *testing.T) {
	x, y := camera.Denormalize(keypoint.Point2{X: 0.5, Y: 0.5})
	require.InDelta(t, 320, x, 1e-6)
	require.InDelta(t, 240, y, 1e-6)

	x, y = camera.Denormalize(keypoint.Point2{})
	require.Zero(t, x)
	require.Zero(t, y)
}

// TestObserveMatchesFrontProjection verifies that a front-view capture
// lands where the front projection matrix puts it.
func TestObserveMatchesFrontProjection(t *testing.T) {
	worlds := []mathutil.Vec3{
		{0, 0, 0},
		{30, -80, 10},
		{-55, 40, -12},
	}
	p := camera.Projection(camera.Front)
	for _, w := range worlds {
		var img mat.VecDense
		img.MulVec(p, mat.NewVecDense(4, []float64{w[0], w[1], w[2], 1}))
		wantU := img.AtVec(0) / img.AtVec(2)
		wantV := img.AtVec(1) / img.AtVec(2)

		gotU, gotV := camera.Denormalize(camera.Observe(camera.Front, w))
		require.InDelta(t, wantU, gotU, 1e-3)
		require.InDelta(t, wantV, gotV, 1e-3)
	}
}

// TestObserveSpinsAroundVerticalAxis verifies that points on the turn
// axis image identically in every view while off-axis points move.
func TestObserveSpinsAroundVerticalAxis(t *testing.T) {
	axis := mathutil.Vec3{0, -60, 0}
	front := camera.Observe(camera.Front, axis)
	require.Equal(t, front, camera.Observe(camera.Left, axis))
	require.Equal(t, front, camera.Observe(camera.Right, axis))

	off := mathutil.Vec3{40, -60, 0}
	require.NotEqual(t, camera.Observe(camera.Front, off), camera.Observe(camera.Left, off))
	require.NotEqual(t, camera.Observe(camera.Left, off), camera.Observe(camera.Right, off))
}

// TestObserveAtCameraReturnsZero verifies the guard for a point sitting
// exactly on the lens.
func TestObserveAtCameraReturnsZero(t *testing.T) {
	at := mathutil.Vec3{0, 0, -camera.OrbitRadiusCm}
	require.Equal(t, keypoint.Point2{}, camera.Observe(camera.Front, at))
}
