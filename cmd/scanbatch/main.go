package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bodyscan-recon/internal/batch"
	"bodyscan-recon/internal/config"
	"bodyscan-recon/internal/scan"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	testN := flag.Int("test", 0, "Process only first N sessions for testing")
	sessionDir := flag.String("sessions", "", "Directory of scan session JSON files (default: sessions)")
	outputDir := flag.String("output", "", "Output directory (default: out)")
	preview := flag.String("preview", "", "Preview format: webp, tga, or none (default: webp)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		SessionDir: *sessionDir,
		OutputDir:  *outputDir,
		Preview:    *preview,
		Workers:    *workers,
	})

	// Collect sessions
	paths, err := scan.FindSessions(cfg.SessionDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing sessions: %v\n", err)
		os.Exit(1)
	}

	// Limit for testing
	if *testN > 0 && *testN < len(paths) {
		paths = paths[:*testN]
	}

	if len(paths) == 0 {
		fmt.Println("No sessions to process.")
		os.Exit(0)
	}

	// Print summary
	mode := ""
	if *testN > 0 {
		mode = fmt.Sprintf(" (TEST: first %d)", *testN)
	}

	fmt.Printf("Body Scan Reconstruction → GLB%s\n", mode)
	fmt.Printf("Sessions: %d, Workers: %d\n", len(paths), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		OutputDir:     cfg.OutputDir,
		Preview:       cfg.Preview,
		RenderSize:    cfg.RenderSize,
		Supersample:   cfg.Supersample,
		PreviewYawDeg: cfg.PreviewYawDeg,
		FillRatio:     cfg.FillRatio,
		Workers:       cfg.Workers,
	}

	results := batch.Run(batchCfg, paths)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Reconstructed: %d/%d\n", success, len(paths))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, batchCfg, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
