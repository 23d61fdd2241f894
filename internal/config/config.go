package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
)

// Config holds all configurable paths and pipeline settings.
type Config struct {
	// Paths
	SessionDir string `json:"session_dir"`
	OutputDir  string `json:"output_dir"`

	// Preview settings
	Preview       string  `json:"preview"` // "webp", "tga", or "none"
	RenderSize    int     `json:"render_size"`
	Supersample   int     `json:"supersample"`
	PreviewYawDeg float64 `json:"preview_yaw_deg"`
	FillRatio     float64 `json:"fill_ratio"`

	Workers int `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.SessionDir != "" {
		c.SessionDir = flags.SessionDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Preview != "" {
		c.Preview = flags.Preview
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Defaults
	if c.SessionDir == "" {
		c.SessionDir = "sessions"
	}
	if c.OutputDir == "" {
		c.OutputDir = "out"
	}
	if c.Preview == "" {
		c.Preview = "webp"
	}
	if c.RenderSize <= 0 {
		c.RenderSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.FillRatio <= 0 {
		c.FillRatio = 0.9
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	SessionDir string
	OutputDir  string
	Preview    string
	Workers    int
}
