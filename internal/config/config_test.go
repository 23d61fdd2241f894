package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"bodyscan-recon/internal/config"
)

// TestLoadErrors verifies read and parse failures name the file.
func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := config.Load(filepath.Join(dir, "missing.json"))
	require.ErrorContains(t, err, "config: read")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	_, err = config.Load(bad)
	require.ErrorContains(t, err, "config: parse")
}

// TestLoadValues verifies every field unmarshals from its JSON key.
func TestLoadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"session_dir": "captures",
		"output_dir": "models",
		"preview": "tga",
		"render_size": 512,
		"supersample": 4,
		"preview_yaw_deg": 30,
		"fill_ratio": 0.8,
		"workers": 6
	}`), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, config.Config{
		SessionDir:    "captures",
		OutputDir:     "models",
		Preview:       "tga",
		RenderSize:    512,
		Supersample:   4,
		PreviewYawDeg: 30,
		FillRatio:     0.8,
		Workers:       6,
	}, cfg)
}

// TestResolveDefaults verifies a zero config resolves to the standard
// settings.
func TestResolveDefaults(t *testing.T) {
	var cfg config.Config
	cfg.Resolve(config.Flags{})

	require.Equal(t, "sessions", cfg.SessionDir)
	require.Equal(t, "out", cfg.OutputDir)
	require.Equal(t, "webp", cfg.Preview)
	require.Equal(t, 256, cfg.RenderSize)
	require.Equal(t, 2, cfg.Supersample)
	require.Zero(t, cfg.PreviewYawDeg)
	require.InDelta(t, 0.9, cfg.FillRatio, 1e-9)
	require.Equal(t, runtime.NumCPU(), cfg.Workers)
}

// TestResolveFlagPrecedence verifies flags beat file values and file
// values beat defaults.
func TestResolveFlagPrecedence(t *testing.T) {
	cfg := config.Config{
		SessionDir: "from-file",
		OutputDir:  "file-out",
		Preview:    "tga",
		Workers:    3,
	}
	cfg.Resolve(config.Flags{
		SessionDir: "from-flag",
		Workers:    8,
	})

	require.Equal(t, "from-flag", cfg.SessionDir)
	require.Equal(t, "file-out", cfg.OutputDir)
	require.Equal(t, "tga", cfg.Preview)
	require.Equal(t, 8, cfg.Workers)
}
