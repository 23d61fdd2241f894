package bodymesh

import (
	"bodyscan-recon/internal/keypoint"
	"bodyscan-recon/internal/landmark"
	"bodyscan-recon/internal/mathutil"
)

const (
	// MinSkeletonKeypoints is the shortest input that can still carry
	// the full skeletal joint set.
	MinSkeletonKeypoints = landmark.JointCount

	// MinValidKeypoints is the fewest valid points accepted as an
	// actual person. Below it synthesis refuses outright instead of
	// falling back to the placeholder.
	MinValidKeypoints = 10

	// DefaultSegments is the angular resolution of generated surfaces.
	DefaultSegments = 16

	// canonicalTorsoCm anchors body proportions: the neck to mid-hip
	// distance of a reference adult.
	canonicalTorsoCm = 45.0
)

// Model normalization bounds.
const (
	// cmExtentThreshold: a span above this is assumed to be
	// centimeters and converted to meters.
	cmExtentThreshold = 100.0
	cmToMeters        = 0.01

	// tinyExtentThreshold: a span below this is rescaled up to the
	// canonical model height.
	tinyExtentThreshold = 1.0
	canonicalModelM     = 1.5

	// degenerateExtent: below this every vertex sits on one point and
	// the mesh is discarded for the placeholder.
	degenerateExtent = 1e-6
)

// Placeholder mannequin in meters: head plus torso, spanning exactly
// canonicalModelM vertically.
var (
	placeholderTorsoCenter = mathutil.Vec3{0, -0.30, 0}
	placeholderTorsoRadii  = mathutil.Vec3{0.27, 0.45, 0.18}
	placeholderHeadCenter  = mathutil.Vec3{0, 0.57, 0}
	placeholderHeadRadii   = mathutil.Vec3{0.15, 0.18, 0.15}
)

// Synthesize builds the procedural body mesh from a skeletal-layout
// cloud. Too few points, or too few valid ones, yields empty buffers.
// A joint set that collapses to a single position yields the fixed
// placeholder mannequin instead, so every accepted input renders.
// The returned model is centered on its bounding box and rescaled to
// meters.
func Synthesize(points []keypoint.Point3) Buffers {
	if len(points) < MinSkeletonKeypoints {
		return Buffers{}
	}
	if keypoint.CountValid(points) < MinValidKeypoints {
		return Buffers{}
	}

	scale := torsoScale(points)
	var m builder
	for _, seg := range segments {
		emitSegment(&m, seg, points, scale)
	}

	min, max, ok := m.buf.Bounds()
	if !ok || maxExtent(min, max) < degenerateExtent {
		return Placeholder()
	}
	normalize(&m.buf, min, max)
	return m.buf
}

// Placeholder returns the fixed two-ellipsoid mannequin.
func Placeholder() Buffers {
	var m builder
	m.ellipsoid(placeholderTorsoCenter, placeholderTorsoRadii, DefaultSegments)
	m.ellipsoid(placeholderHeadCenter, placeholderHeadRadii, DefaultSegments)
	return m.buf
}

func emitSegment(m *builder, seg Segment, pts []keypoint.Point3, bodyScale float64) {
	switch seg.Kind {
	case KindHead:
		nose, ok := joint(pts, seg.JointA)
		if !ok {
			return
		}
		r := headFallbackCm * bodyScale
		if sw, ok := shoulderWidth(pts); ok {
			r = headWidthFrac * sw
		}
		m.ellipsoid(nose, mathutil.Vec3{r, r * headAspect, r}, DefaultSegments)

	case KindTorso:
		neck, ok1 := joint(pts, seg.JointA)
		hip, ok2 := joint(pts, seg.JointB)
		if !ok1 || !ok2 {
			return
		}
		length := mathutil.Dist(neck, hip)
		if length <= 0 {
			return
		}
		rx := 0.30 * length
		rz := 0.18 * length
		if sw, ok := shoulderWidth(pts); ok {
			rx = torsoWidthFrac * sw
			rz = torsoDepthFrac * sw
		}
		center := mathutil.Mid(neck, hip)
		m.ellipsoid(center, mathutil.Vec3{rx, torsoHalfFrac * length, rz}, DefaultSegments)

	case KindPelvis:
		hip, ok := joint(pts, seg.JointA)
		if !ok {
			return
		}
		hw := pelvisFallbackCm * bodyScale
		if w, ok := hipWidth(pts); ok {
			hw = w
		}
		radii := mathutil.Vec3{
			pelvisWidthFrac * hw,
			pelvisHeightFrac * hw,
			pelvisDepthFrac * hw,
		}
		m.ellipsoid(hip, radii, DefaultSegments)

	case KindLimb:
		a, ok1 := joint(pts, seg.JointA)
		b, ok2 := joint(pts, seg.JointB)
		if !ok1 || !ok2 {
			return
		}
		r := seg.RadiusFrac * mathutil.Dist(a, b)
		m.cylinder(a, b, r, DefaultSegments)
	}
}

// torsoScale is the neck to mid-hip distance measured against the
// canonical torso, or 1 when that chain is missing.
func torsoScale(pts []keypoint.Point3) float64 {
	neck, ok1 := joint(pts, landmark.JointNeck)
	hip, ok2 := joint(pts, landmark.JointMidHip)
	if !ok1 || !ok2 {
		return 1
	}
	d := mathutil.Dist(neck, hip)
	if d <= 0 {
		return 1
	}
	return d / canonicalTorsoCm
}

func shoulderWidth(pts []keypoint.Point3) (float64, bool) {
	l, ok1 := joint(pts, landmark.JointShoulderL)
	r, ok2 := joint(pts, landmark.JointShoulderR)
	if !ok1 || !ok2 {
		return 0, false
	}
	w := mathutil.Dist(l, r)
	return w, w > 0
}

func hipWidth(pts []keypoint.Point3) (float64, bool) {
	l, ok1 := joint(pts, landmark.JointHipL)
	r, ok2 := joint(pts, landmark.JointHipR)
	if !ok1 || !ok2 {
		return 0, false
	}
	w := mathutil.Dist(l, r)
	return w, w > 0
}

func joint(pts []keypoint.Point3, i int) (mathutil.Vec3, bool) {
	if i < 0 || i >= len(pts) || !pts[i].Valid() {
		return mathutil.Vec3{}, false
	}
	p := pts[i]
	return mathutil.Vec3{float64(p.X), float64(p.Y), float64(p.Z)}, true
}

func maxExtent(min, max mathutil.Vec3) float64 {
	e := max[0] - min[0]
	if d := max[1] - min[1]; d > e {
		e = d
	}
	if d := max[2] - min[2]; d > e {
		e = d
	}
	return e
}

// normalize recenters the model on its bounding box and maps it onto
// the canonical meter scale: centimeter-sized spans shrink by 100,
// sub-unit spans grow to the canonical model height, anything in
// between is left alone.
func normalize(b *Buffers, min, max mathutil.Vec3) {
	center := mathutil.Mid(min, max)
	extent := maxExtent(min, max)

	factor := 1.0
	switch {
	case extent > cmExtentThreshold:
		factor = cmToMeters
	case extent < tinyExtentThreshold:
		factor = canonicalModelM / extent
	}

	for i := 0; i+2 < len(b.Vertices); i += 3 {
		b.Vertices[i] = float32((float64(b.Vertices[i]) - center[0]) * factor)
		b.Vertices[i+1] = float32((float64(b.Vertices[i+1]) - center[1]) * factor)
		b.Vertices[i+2] = float32((float64(b.Vertices[i+2]) - center[2]) * factor)
	}
}
