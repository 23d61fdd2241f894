package scan

import (
	"bodyscan-recon/internal/camera"
	"bodyscan-recon/internal/landmark"
	"bodyscan-recon/internal/mathutil"
)

// anchor places one landmark on the canonical T-posed figure, in
// fractions of figure height: x runs to the subject's left, y from
// sole (0) to crown (1), z out the chest.
type anchor struct{ x, y, z float64 }

var tpose = [landmark.DetectorCount]anchor{
	landmark.LmNose:       {0, 0.935, 0.06},
	landmark.LmEyeInnerL:  {0.015, 0.95, 0.055},
	landmark.LmEyeL:       {0.025, 0.95, 0.05},
	landmark.LmEyeOuterL:  {0.04, 0.95, 0.045},
	landmark.LmEyeInnerR:  {-0.015, 0.95, 0.055},
	landmark.LmEyeR:       {-0.025, 0.95, 0.05},
	landmark.LmEyeOuterR:  {-0.04, 0.95, 0.045},
	landmark.LmEarL:       {0.055, 0.94, 0},
	landmark.LmEarR:       {-0.055, 0.94, 0},
	landmark.LmMouthL:     {0.018, 0.915, 0.055},
	landmark.LmMouthR:     {-0.018, 0.915, 0.055},
	landmark.LmShoulderL:  {0.12, 0.82, 0},
	landmark.LmShoulderR:  {-0.12, 0.82, 0},
	landmark.LmElbowL:     {0.255, 0.82, 0},
	landmark.LmElbowR:     {-0.255, 0.82, 0},
	landmark.LmWristL:     {0.385, 0.82, 0},
	landmark.LmWristR:     {-0.385, 0.82, 0},
	landmark.LmPinkyL:     {0.43, 0.82, -0.005},
	landmark.LmPinkyR:     {-0.43, 0.82, -0.005},
	landmark.LmIndexL:     {0.44, 0.825, 0.01},
	landmark.LmIndexR:     {-0.44, 0.825, 0.01},
	landmark.LmThumbL:     {0.415, 0.81, 0.02},
	landmark.LmThumbR:     {-0.415, 0.81, 0.02},
	landmark.LmHipL:       {0.065, 0.52, 0},
	landmark.LmHipR:       {-0.065, 0.52, 0},
	landmark.LmKneeL:      {0.07, 0.285, 0.01},
	landmark.LmKneeR:      {-0.07, 0.285, 0.01},
	landmark.LmAnkleL:     {0.075, 0.045, -0.01},
	landmark.LmAnkleR:     {-0.075, 0.045, -0.01},
	landmark.LmHeelL:      {0.075, 0.02, -0.045},
	landmark.LmHeelR:      {-0.075, 0.02, -0.045},
	landmark.LmFootIndexL: {0.08, 0.01, 0.085},
	landmark.LmFootIndexR: {-0.08, 0.01, 0.085},
}

// The mannequin is modeled at 150 cm so every landmark stays inside
// the 640x480 frame at the rig's subject distance; the session's
// height field carries the stature the caller asked for. World "up"
// is negative Y here because captures have image Y growing downward.
const (
	synthFigureCm = 150.0
	synthLiftCm   = 25.0
)

// Synthetic builds a full three-view session for a T-posed mannequin
// as the rig would capture it. Useful for exercising the pipeline
// without a phone capture.
func Synthetic(name string, heightCm float32) *Session {
	views := make([]View, camera.NumViews)
	for v := 0; v < camera.NumViews; v++ {
		lms := make([]landmark.Raw, landmark.DetectorCount)
		for i, a := range tpose {
			w := mathutil.Vec3{
				a.x * synthFigureCm,
				-((a.y-0.5)*synthFigureCm + synthLiftCm),
				a.z * synthFigureCm,
			}
			p := camera.Observe(v, w)
			lms[i] = landmark.Raw{X: p.X, Y: p.Y}
		}
		views[v] = View{Landmarks: lms}
	}

	return &Session{
		Name:     name,
		HeightCm: heightCm,
		Views:    views,
	}
}
