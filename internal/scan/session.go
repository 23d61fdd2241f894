package scan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"bodyscan-recon/internal/landmark"
)

// Session is one captured scan: the subject's stated height and the
// raw detector output for each rig view, front first.
type Session struct {
	Name     string  `json:"name,omitempty"`
	HeightCm float32 `json:"height_cm"`
	Views    []View  `json:"views"`
}

// View is one photo's detector result.
type View struct {
	Landmarks []landmark.Raw `json:"landmarks"`
}

// LoadSession reads a session JSON file. A missing name falls back to
// the file's base name. Malformed geometry is not rejected here; the
// pipeline degrades it to zero outputs instead.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scan: read %s: %w", path, err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scan: parse %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &s, nil
}

// SaveSession writes a session as indented JSON.
func SaveSession(path string, s *Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("scan: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("scan: write %s: %w", path, err)
	}
	return nil
}

// FindSessions lists the session JSON files directly inside dir,
// sorted by name.
func FindSessions(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan: list %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
