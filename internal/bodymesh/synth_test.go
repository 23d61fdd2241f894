package bodymesh_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"bodyscan-recon/internal/bodymesh"
	"bodyscan-recon/internal/keypoint"
	"bodyscan-recon/internal/landmark"
	"bodyscan-recon/internal/mathutil"
)

// tposeJoints builds a plausible adult skeleton in centimeters, +Y up,
// arms straight out to the sides.
func tposeJoints() []keypoint.Point3 {
	j := make([]keypoint.Point3, landmark.JointCount)
	set := func(i int, x, y, z float32) { j[i] = keypoint.Point3{X: x, Y: y, Z: z} }

	set(landmark.JointNose, 0, 168, 9)
	set(landmark.JointNeck, 0, 150, 0)
	set(landmark.JointShoulderR, 20, 150, 0)
	set(landmark.JointElbowR, 45, 150, 0)
	set(landmark.JointWristR, 68, 150, 0)
	set(landmark.JointShoulderL, -20, 150, 0)
	set(landmark.JointElbowL, -45, 150, 0)
	set(landmark.JointWristL, -68, 150, 0)
	set(landmark.JointMidHip, 0, 105, 0)
	set(landmark.JointHipR, 10, 105, 0)
	set(landmark.JointKneeR, 12, 55, 0)
	set(landmark.JointAnkleR, 13, 10, 0)
	set(landmark.JointHipL, -10, 105, 0)
	set(landmark.JointKneeL, -12, 55, 0)
	set(landmark.JointAnkleL, -13, 10, 0)
	set(landmark.JointEyeR, 3, 172, 10)
	set(landmark.JointEyeL, -3, 172, 10)
	set(landmark.JointEarR, 8, 170, 2)
	set(landmark.JointEarL, -8, 170, 2)
	return j
}

// TestSynthesizeRejectsShortInput verifies empty buffers for inputs
// below the skeletal layout.
func TestSynthesizeRejectsShortInput(t *testing.T) {
	require.True(t, bodymesh.Synthesize(nil).Empty())
	short := make([]keypoint.Point3, bodymesh.MinSkeletonKeypoints-1)
	require.True(t, bodymesh.Synthesize(short).Empty())
}

// TestSynthesizeRejectsSparseCloud verifies empty buffers when too few
// joints carry real geometry.
func TestSynthesizeRejectsSparseCloud(t *testing.T) {
	pts := make([]keypoint.Point3, landmark.JointCount)
	for i := 0; i < bodymesh.MinValidKeypoints-1; i++ {
		pts[i] = keypoint.Point3{X: 1, Y: float32(i), Z: 1}
	}
	require.True(t, bodymesh.Synthesize(pts).Empty())
}

// TestSynthesizeCollapsedCloudFallsBack verifies the placeholder when
// every limb collapses onto a single position and no ellipsoid anchor
// survives.
func TestSynthesizeCollapsedCloudFallsBack(t *testing.T) {
	pts := make([]keypoint.Point3, landmark.JointCount)
	at := keypoint.Point3{X: 7, Y: -3, Z: 2}
	for _, i := range []int{
		landmark.JointShoulderR, landmark.JointElbowR, landmark.JointWristR,
		landmark.JointShoulderL, landmark.JointElbowL, landmark.JointWristL,
		landmark.JointHipR, landmark.JointKneeR, landmark.JointAnkleR,
		landmark.JointHipL, landmark.JointKneeL, landmark.JointAnkleL,
	} {
		pts[i] = at
	}

	got := bodymesh.Synthesize(pts)
	require.False(t, got.Empty())
	require.Equal(t, bodymesh.Placeholder(), got)
}

// TestPlaceholderMannequin verifies the fixed fallback model: meter
// scale, unit normals, and indices that address real vertices.
func TestPlaceholderMannequin(t *testing.T) {
	m := bodymesh.Placeholder()
	require.False(t, m.Empty())
	require.Equal(t, len(m.Vertices), len(m.Normals))
	require.Zero(t, len(m.Indices)%3)
	require.Equal(t, m.VertexCount()*3, len(m.Vertices))

	for _, idx := range m.Indices {
		require.Less(t, int(idx), m.VertexCount())
	}
	for i := 0; i+2 < len(m.Normals); i += 3 {
		l := math.Sqrt(float64(m.Normals[i])*float64(m.Normals[i]) +
			float64(m.Normals[i+1])*float64(m.Normals[i+1]) +
			float64(m.Normals[i+2])*float64(m.Normals[i+2]))
		require.InDelta(t, 1, l, 1e-5)
	}

	min, max, ok := m.Bounds()
	require.True(t, ok)
	require.InDelta(t, -0.75, min[1], 1e-6)
	require.InDelta(t, 0.75, max[1], 1e-6)
}

// TestSynthesizeFullSkeleton verifies a centimeter skeleton comes out
// as a centered meter-scale mesh with sane proportions.
func TestSynthesizeFullSkeleton(t *testing.T) {
	m := bodymesh.Synthesize(tposeJoints())
	require.False(t, m.Empty())
	require.Equal(t, len(m.Vertices), len(m.Normals))
	require.Zero(t, len(m.Indices)%3)
	for _, idx := range m.Indices {
		require.Less(t, int(idx), m.VertexCount())
	}

	min, max, ok := m.Bounds()
	require.True(t, ok)

	// Head top to ankles, converted to meters and recentered.
	spanY := max[1] - min[1]
	require.InDelta(t, 1.75, spanY, 0.1)
	require.InDelta(t, 0, min[1]+max[1], 1e-4)
	require.InDelta(t, 0, min[0]+max[0], 1e-4)

	// Arms out: the X span carries the wrist cylinders but stays below
	// the vertical extent.
	spanX := max[0] - min[0]
	require.Greater(t, spanX, 1.2)
	require.Less(t, spanX, spanY)
}

// TestSynthesizeWinding verifies counter-clockwise triangles: the face
// normal implied by the index order points along the averaged vertex
// normals.
func TestSynthesizeWinding(t *testing.T) {
	m := bodymesh.Synthesize(tposeJoints())

	vert := func(i uint32) mathutil.Vec3 {
		return mathutil.Vec3{
			float64(m.Vertices[i*3]),
			float64(m.Vertices[i*3+1]),
			float64(m.Vertices[i*3+2]),
		}
	}
	norm := func(i uint32) mathutil.Vec3 {
		return mathutil.Vec3{
			float64(m.Normals[i*3]),
			float64(m.Normals[i*3+1]),
			float64(m.Normals[i*3+2]),
		}
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		face := vert(b).Sub(vert(a)).Cross(vert(c).Sub(vert(a)))
		if face.Len() < 1e-12 {
			continue // pole triangles collapse to a line
		}
		n := norm(a).Add(norm(b)).Add(norm(c))
		require.Positive(t, face.Dot(n), "triangle %d", i/3)
	}
}

// TestSynthesizeDeterministic verifies identical buffers for identical
// joints.
func TestSynthesizeDeterministic(t *testing.T) {
	require.Equal(t, bodymesh.Synthesize(tposeJoints()), bodymesh.Synthesize(tposeJoints()))
}
