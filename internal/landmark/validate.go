package landmark

import "math"

// Validation is the full-body visibility verdict for one detector
// result, used by callers to explain empty reconstructions.
type Validation struct {
	HasPerson  bool
	FullBody   bool
	Confidence float32
	Message    string
}

// A landmark may slightly overflow the unit square when it sits
// partially outside the frame. Coordinates pinned at the origin mean
// the detector never placed it.
const (
	minInFrame = -0.1
	maxInFrame = 1.1
	zeroEps    = 0.001
)

// minPersonLandmarks is the usable-landmark count below which a frame
// is treated as containing no person at all.
const minPersonLandmarks = 10

// Usable reports whether the landmark was actually placed by the
// detector: inside the padded unit square and not at the origin.
func (l Raw) Usable() bool {
	inRange := l.X >= minInFrame && l.X <= maxInFrame &&
		l.Y >= minInFrame && l.Y <= maxInFrame
	notZero := math.Abs(float64(l.X)) > zeroEps || math.Abs(float64(l.Y)) > zeroEps
	return inRange && notZero
}

// Validate checks one detector result for a fully visible person.
// The verdict degrades region by region (head, arms, hands, legs,
// feet) and Message names the first missing region.
func Validate(raw []Raw) Validation {
	var v Validation
	if len(raw) != DetectorCount {
		v.Message = "No person detected"
		return v
	}

	usable := 0
	for _, lm := range raw {
		if lm.Usable() {
			usable++
		}
	}
	if usable < minPersonLandmarks {
		v.Message = "No person detected"
		return v
	}

	v.HasPerson = true
	v.Confidence = float32(math.Min(1, float64(usable)/DetectorCount))

	ok := func(i int) bool { return raw[i].Usable() }

	nose := ok(LmNose)
	eyeL := ok(LmEyeL) || ok(LmEyeInnerL) || ok(LmEyeOuterL)
	eyeR := ok(LmEyeR) || ok(LmEyeInnerR) || ok(LmEyeOuterR)
	earL := ok(LmEarL)
	earR := ok(LmEarR)
	head := nose && (eyeL || eyeR) && (earL || earR)

	shoulderL, shoulderR := ok(LmShoulderL), ok(LmShoulderR)
	elbowL, elbowR := ok(LmElbowL), ok(LmElbowR)
	wristL, wristR := ok(LmWristL), ok(LmWristR)
	upperBody := shoulderL && shoulderR && elbowL && elbowR && wristL && wristR

	handL := wristL && (ok(LmPinkyL) || ok(LmIndexL) || ok(LmThumbL))
	handR := wristR && (ok(LmPinkyR) || ok(LmIndexR) || ok(LmThumbR))

	hipL, hipR := ok(LmHipL), ok(LmHipR)
	kneeL, kneeR := ok(LmKneeL), ok(LmKneeR)
	ankleL, ankleR := ok(LmAnkleL), ok(LmAnkleR)
	lowerBody := hipL && hipR && kneeL && kneeR && ankleL && ankleR

	footL := ankleL && (ok(LmHeelL) || ok(LmFootIndexL))
	footR := ankleR && (ok(LmHeelR) || ok(LmFootIndexR))

	if head && upperBody && handL && handR && lowerBody && footL && footR {
		v.FullBody = true
		v.Confidence = float32(math.Min(1, float64(v.Confidence)+0.2))
		return v
	}

	switch {
	case !head:
		switch {
		case !nose:
			v.Message = "Head not fully visible - nose not detected"
		case !eyeL && !eyeR:
			v.Message = "Face not clearly visible - eyes not detected"
		case !earL && !earR:
			v.Message = "Head not fully visible - ears not detected"
		default:
			v.Message = "Head not fully visible"
		}
	case !upperBody:
		switch {
		case !shoulderL && !shoulderR:
			v.Message = "Upper body not visible - shoulders not detected"
		case !elbowL && !elbowR:
			v.Message = "Arms not fully visible - elbows not detected"
		case !wristL && !wristR:
			v.Message = "Arms not fully visible - wrists not detected"
		default:
			v.Message = "Upper body not fully visible"
		}
	case !handL:
		v.Message = "Left hand not fully visible"
	case !handR:
		v.Message = "Right hand not fully visible"
	case !lowerBody:
		switch {
		case !hipL && !hipR:
			v.Message = "Lower body not visible - hips not detected"
		case !kneeL && !kneeR:
			v.Message = "Legs not fully visible - knees not detected"
		case !ankleL && !ankleR:
			v.Message = "Legs not fully visible - ankles not detected"
		default:
			v.Message = "Lower body not fully visible"
		}
	case !footL:
		v.Message = "Left foot not fully visible"
	case !footR:
		v.Message = "Right foot not fully visible"
	default:
		v.Message = "Full body not clearly visible"
	}
	return v
}
