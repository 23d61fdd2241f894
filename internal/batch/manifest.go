package batch

import (
	"encoding/json"
	"fmt"
	"os"

	"bodyscan-recon/internal/measure"
	"bodyscan-recon/internal/scan"
)

// Report is the per-session JSON written next to the GLB.
type Report struct {
	Name         string             `json:"name"`
	HeightCm     float32            `json:"height_cm"`
	ValidPoints  int                `json:"valid_points"`
	Measurements map[string]float32 `json:"measurements_cm"`
	Views        []ViewReport       `json:"views"`
}

// ViewReport summarizes landmark validation for one captured view.
type ViewReport struct {
	HasPerson  bool    `json:"has_person"`
	FullBody   bool    `json:"full_body"`
	Confidence float32 `json:"confidence"`
	Message    string  `json:"message,omitempty"`
}

func writeReport(path string, sess *scan.Session, res *scan.Result) error {
	meas := make(map[string]float32, measure.NumMeasurements)
	for i, name := range measure.Names {
		meas[name] = res.Measurements[i]
	}

	views := make([]ViewReport, len(res.Validations))
	for i, v := range res.Validations {
		views[i] = ViewReport{
			HasPerson:  v.HasPerson,
			FullBody:   v.FullBody,
			Confidence: v.Confidence,
			Message:    v.Message,
		}
	}

	rep := Report{
		Name:         sess.Name,
		HeightCm:     sess.HeightCm,
		ValidPoints:  res.ValidPoints(),
		Measurements: meas,
		Views:        views,
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ManifestEntry represents one session in the output manifest.
type ManifestEntry struct {
	Name        string `json:"name"`
	Model       string `json:"model,omitempty"`
	Report      string `json:"report,omitempty"`
	Preview     string `json:"preview,omitempty"`
	ValidPoints int    `json:"valid_points"`
	OK          bool   `json:"ok"`
	Error       string `json:"error,omitempty"`
}

// WriteManifest writes manifest.json to the output directory.
func WriteManifest(path string, cfg Config, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		e := ManifestEntry{
			Name:        r.Name,
			Model:       r.GLBFile,
			ValidPoints: r.ValidPoints,
			OK:          r.Success,
			Error:       r.Error,
		}
		if r.GLBFile != "" {
			e.Report = r.Name + ".json"
		}
		if r.Success && cfg.Preview != "none" {
			ext := "webp"
			if cfg.Preview == "tga" {
				ext = "tga"
			}
			e.Preview = fmt.Sprintf("%s.%s", r.Name, ext)
		}
		entries[i] = e
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
