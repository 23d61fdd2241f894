package landmark

import "bodyscan-recon/internal/keypoint"

// Skeletal joint indices consumed by mesh synthesis. The layout packs
// the torso chain first so a mesh can be built from the head down:
// nose, neck, right arm, left arm, mid-hip, right leg, left leg, then
// face extras. Neck and mid-hip are synthesized midpoints with no
// detector counterpart.
const (
	JointNose      = 0
	JointNeck      = 1
	JointShoulderR = 2
	JointElbowR    = 3
	JointWristR    = 4
	JointShoulderL = 5
	JointElbowL    = 6
	JointWristL    = 7
	JointMidHip    = 8
	JointHipR      = 9
	JointKneeR     = 10
	JointAnkleR    = 11
	JointHipL      = 12
	JointKneeL     = 13
	JointAnkleL    = 14
	JointEyeR      = 15
	JointEyeL      = 16
	JointEarR      = 17
	JointEarL      = 18

	// JointCount is the number of named skeletal joints.
	JointCount = 19
)

// jointSources maps each directly-copied skeletal joint to its
// detector landmark. Neck and mid-hip are absent; they are derived.
var jointSources = map[int]int{
	JointNose:      LmNose,
	JointShoulderR: LmShoulderR,
	JointElbowR:    LmElbowR,
	JointWristR:    LmWristR,
	JointShoulderL: LmShoulderL,
	JointElbowL:    LmElbowL,
	JointWristL:    LmWristL,
	JointHipR:      LmHipR,
	JointKneeR:     LmKneeR,
	JointAnkleR:    LmAnkleR,
	JointHipL:      LmHipL,
	JointKneeL:     LmKneeL,
	JointAnkleL:    LmAnkleL,
	JointEyeR:      LmEyeR,
	JointEyeL:      LmEyeL,
	JointEarR:      LmEarR,
	JointEarL:      LmEarL,
}

// RemapSkeleton rewrites a reconstructed cloud from the detector
// layout into the skeletal layout above: indices 0-18 become the
// named joints (invalid sources stay the zero sentinel) and the rest
// of the cloud is carried over unchanged. An input shorter than the
// detector layout comes back as all zeros.
func RemapSkeleton(points []keypoint.Point3) []keypoint.Point3 {
	out := make([]keypoint.Point3, len(points))
	if len(points) < DetectorCount {
		return out
	}

	copy(out[JointCount:], points[JointCount:])

	for joint, lm := range jointSources {
		out[joint] = points[lm]
	}
	out[JointNeck] = midJoint(points[LmShoulderL], points[LmShoulderR])
	out[JointMidHip] = midJoint(points[LmHipL], points[LmHipR])
	return out
}

// midJoint is the midpoint of two valid points, or the sentinel when
// either side is missing.
func midJoint(a, b keypoint.Point3) keypoint.Point3 {
	if !a.Valid() || !b.Valid() {
		return keypoint.Point3{}
	}
	return keypoint.Point3{
		X: (a.X + b.X) / 2,
		Y: (a.Y + b.Y) / 2,
		Z: (a.Z + b.Z) / 2,
	}
}
