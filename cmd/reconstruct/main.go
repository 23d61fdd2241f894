package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bodyscan-recon/internal/batch"
	"bodyscan-recon/internal/keypoint"
	"bodyscan-recon/internal/measure"
	"bodyscan-recon/internal/scan"
)

func main() {
	out := flag.String("o", "", "Output GLB path (default: session name + .glb)")
	height := flag.Float64("height", 0, "Override subject height in cm")
	preview := flag.String("preview", "", "Also write a preview image: webp or tga")
	previewSize := flag.Int("preview-size", 256, "Preview image size in pixels")

	flag.Parse()

	if *preview != "" && *preview != "webp" && *preview != "tga" {
		fmt.Fprintf(os.Stderr, "Unknown preview format %q (want webp or tga)\n", *preview)
		os.Exit(2)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: reconstruct [flags] <session.json>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	sess, err := scan.LoadSession(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *height > 0 {
		sess.HeightCm = float32(*height)
	}

	res := scan.Run(sess)

	for i, v := range res.Validations {
		status := "ok"
		if v.Message != "" {
			status = v.Message
		}
		fmt.Printf("View %d: confidence %.2f, %s\n", i, v.Confidence, status)
	}
	fmt.Printf("Keypoints: %d/%d valid\n", res.ValidPoints(), keypoint.Count)

	fmt.Println("Measurements (cm):")
	for i, name := range measure.Names {
		fmt.Printf("  %-12s %6.1f\n", name, res.Measurements[i])
	}

	outPath := *out
	if outPath == "" {
		outPath = strings.TrimSuffix(path, filepath.Ext(path)) + ".glb"
	}
	if err := os.WriteFile(outPath, res.GLB, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: write %s: %v\n", outPath, err)
		os.Exit(1)
	}

	if !res.OK() {
		fmt.Printf("No usable reconstruction; wrote empty %s\n", outPath)
		os.Exit(1)
	}
	fmt.Printf("Mesh: %d vertices, %d triangles → %s (%d bytes)\n",
		res.Mesh.VertexCount(), res.Mesh.TriangleCount(), outPath, len(res.GLB))

	if *preview != "" {
		cfg := batch.Config{
			OutputDir:   filepath.Dir(outPath),
			Preview:     *preview,
			RenderSize:  *previewSize,
			Supersample: 2,
			FillRatio:   0.9,
		}
		name := strings.TrimSuffix(filepath.Base(outPath), filepath.Ext(outPath))
		if err := batch.WritePreview(cfg, name, res); err != nil {
			fmt.Fprintf(os.Stderr, "Error: preview: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Preview: %s\n", filepath.Join(cfg.OutputDir, name+"."+*preview))
	}
}
