package landmark

import "bodyscan-recon/internal/keypoint"

// DetectorCount is the landmark count of the external pose detector.
// Anything else means "no detection".
const DetectorCount = 33

// Raw is one detector landmark, normalized to the source image, in
// the shape the detector dumps it. Z carries depth or confidence
// depending on the detector build; the mapper only consumes X and Y.
type Raw struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Detector landmark indices (fixed 33-point layout).
const (
	LmNose       = 0
	LmEyeInnerL  = 1
	LmEyeL       = 2
	LmEyeOuterL  = 3
	LmEyeInnerR  = 4
	LmEyeR       = 5
	LmEyeOuterR  = 6
	LmEarL       = 7
	LmEarR       = 8
	LmMouthL     = 9
	LmMouthR     = 10
	LmShoulderL  = 11
	LmShoulderR  = 12
	LmElbowL     = 13
	LmElbowR     = 14
	LmWristL     = 15
	LmWristR     = 16
	LmPinkyL     = 17
	LmPinkyR     = 18
	LmIndexL     = 19
	LmIndexR     = 20
	LmThumbL     = 21
	LmThumbR     = 22
	LmHipL       = 23
	LmHipR       = 24
	LmKneeL      = 25
	LmKneeR      = 26
	LmAnkleL     = 27
	LmAnkleR     = 28
	LmHeelL      = 29
	LmHeelR      = 30
	LmFootIndexL = 31
	LmFootIndexR = 32
)

// midpointArcs lists the adjacent limb landmark pairs that receive an
// interpolated midpoint, in output order starting at index 33.
var midpointArcs = [8][2]int{
	{LmShoulderL, LmElbowL},
	{LmElbowL, LmWristL},
	{LmShoulderR, LmElbowR},
	{LmElbowR, LmWristR},
	{LmHipL, LmKneeL},
	{LmKneeL, LmAnkleL},
	{LmHipR, LmKneeR},
	{LmKneeR, LmAnkleR},
}

// MapTo135 expands a raw detector result into the canonical 135-point
// layout: landmarks 0-32 copied verbatim, limb midpoints appended,
// and the tail padded by repeating the last usable keypoint. A pair
// with an off-frame endpoint is skipped, so midpoint slots compress
// toward index 33. Indices past the midpoints carry no anatomical
// meaning beyond "filler".
//
// An input that is not exactly 33 landmarks yields all zeros, the
// pipeline's "no detection" signal.
func MapTo135(raw []Raw) []keypoint.Point2 {
	out := make([]keypoint.Point2, keypoint.Count)
	if len(raw) != DetectorCount {
		return out
	}

	for i, lm := range raw {
		out[i] = keypoint.Point2{X: lm.X, Y: lm.Y}
	}

	idx := DetectorCount
	for _, arc := range midpointArcs {
		a, b := raw[arc[0]], raw[arc[1]]
		if a.X <= 0 || b.X <= 0 {
			continue
		}
		out[idx] = keypoint.Point2{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
		idx++
	}

	for ; idx < keypoint.Count; idx++ {
		if out[idx-1].X > 0 {
			out[idx] = out[idx-1]
		} else {
			out[idx] = keypoint.Point2{X: 0.5, Y: 0.5}
		}
	}
	return out
}
