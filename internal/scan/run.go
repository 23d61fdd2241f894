package scan

import (
	"bodyscan-recon/internal/bodymesh"
	"bodyscan-recon/internal/glb"
	"bodyscan-recon/internal/keypoint"
	"bodyscan-recon/internal/landmark"
	"bodyscan-recon/internal/measure"
	"bodyscan-recon/internal/multiview"
)

// Result is everything one session produces. Zero-valued fields mean
// the corresponding stage signalled failure, not that it crashed.
type Result struct {
	Points       []keypoint.Point3
	Measurements [measure.NumMeasurements]float32
	Mesh         bodymesh.Buffers
	GLB          []byte
	Validations  []landmark.Validation
}

// OK reports whether the pipeline got all the way to a mesh.
func (r *Result) OK() bool {
	return len(r.GLB) > 0
}

// ValidPoints is the number of reconstructed keypoints that carry
// real geometry.
func (r *Result) ValidPoints() int {
	return keypoint.CountValid(r.Points)
}

// Run executes the whole pipeline on one session: per-view landmark
// expansion, triangulation, circumference measurement, skeletal
// remap, mesh synthesis, and GLB serialization. Run keeps no state
// between calls; sessions processed concurrently cannot interfere.
func Run(s *Session) *Result {
	views := make([][]keypoint.Point2, len(s.Views))
	vals := make([]landmark.Validation, len(s.Views))
	for i, v := range s.Views {
		views[i] = landmark.MapTo135(v.Landmarks)
		vals[i] = landmark.Validate(v.Landmarks)
	}

	points := multiview.Reconstruct(views, s.HeightCm)
	mesh := bodymesh.Synthesize(landmark.RemapSkeleton(points))

	return &Result{
		Points:       points,
		Measurements: measure.Circumferences(points),
		Mesh:         mesh,
		GLB:          glb.Encode(mesh),
		Validations:  vals,
	}
}
