package bodymesh

import "bodyscan-recon/internal/landmark"

// SegmentKind selects the geometry rule for one body segment.
type SegmentKind int

const (
	// KindHead is an ellipsoid at the nose, sized by shoulder width.
	KindHead SegmentKind = iota
	// KindTorso is an ellipsoid spanning neck to mid-hip.
	KindTorso
	// KindPelvis is an ellipsoid at the mid-hip, sized by hip width.
	KindPelvis
	// KindLimb is a cylinder between two joints with a radius derived
	// from the segment length.
	KindLimb
)

// Segment is one body part: a kind, its anchor joints, and for limbs
// the radius as a fraction of segment length.
type Segment struct {
	Kind       SegmentKind
	JointA     int
	JointB     int
	RadiusFrac float64
}

// segments drives synthesis top-down. The order is fixed so identical
// input always yields identical buffers.
var segments = []Segment{
	{Kind: KindHead, JointA: landmark.JointNose},
	{Kind: KindLimb, JointA: landmark.JointNeck, JointB: landmark.JointNose, RadiusFrac: neckRadiusFrac},
	{Kind: KindTorso, JointA: landmark.JointNeck, JointB: landmark.JointMidHip},
	{Kind: KindPelvis, JointA: landmark.JointMidHip},
	{Kind: KindLimb, JointA: landmark.JointHipL, JointB: landmark.JointKneeL, RadiusFrac: thighRadiusFrac},
	{Kind: KindLimb, JointA: landmark.JointHipR, JointB: landmark.JointKneeR, RadiusFrac: thighRadiusFrac},
	{Kind: KindLimb, JointA: landmark.JointKneeL, JointB: landmark.JointAnkleL, RadiusFrac: shinRadiusFrac},
	{Kind: KindLimb, JointA: landmark.JointKneeR, JointB: landmark.JointAnkleR, RadiusFrac: shinRadiusFrac},
	{Kind: KindLimb, JointA: landmark.JointShoulderL, JointB: landmark.JointElbowL, RadiusFrac: upperArmRadiusFrac},
	{Kind: KindLimb, JointA: landmark.JointShoulderR, JointB: landmark.JointElbowR, RadiusFrac: upperArmRadiusFrac},
	{Kind: KindLimb, JointA: landmark.JointElbowL, JointB: landmark.JointWristL, RadiusFrac: forearmRadiusFrac},
	{Kind: KindLimb, JointA: landmark.JointElbowR, JointB: landmark.JointWristR, RadiusFrac: forearmRadiusFrac},
}

// Limb radii as fractions of segment length.
const (
	neckRadiusFrac     = 0.20
	thighRadiusFrac    = 0.12
	shinRadiusFrac     = 0.10
	upperArmRadiusFrac = 0.10
	forearmRadiusFrac  = 0.08
)

// Ellipsoid proportions.
const (
	headWidthFrac  = 0.35 // of shoulder width
	headAspect     = 1.2  // vertical stretch over the head radius
	headFallbackCm = 11.0 // body-scaled radius when shoulders are missing

	torsoHalfFrac  = 0.55 // of torso length, vertical semi-axis
	torsoWidthFrac = 0.55 // of shoulder width
	torsoDepthFrac = 0.30 // of shoulder width

	pelvisWidthFrac  = 0.60 // of hip width
	pelvisHeightFrac = 0.35
	pelvisDepthFrac  = 0.45
	pelvisFallbackCm = 20.0 // body-scaled hip width when hips are missing
)
