package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"bodyscan-recon/internal/postprocess"
	"bodyscan-recon/internal/raster"
	"bodyscan-recon/internal/scan"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// Config holds all shared settings for a batch run.
type Config struct {
	OutputDir     string
	Preview       string // "webp", "tga", or "none"
	RenderSize    int
	Supersample   int
	PreviewYawDeg float64
	FillRatio     float64
	Workers       int
}

// Result holds the outcome of processing one session.
type Result struct {
	Name        string
	GLBFile     string
	ValidPoints int
	Success     bool
	Error       string
}

// Run processes all session files using a worker pool.
func Run(cfg Config, paths []string) []Result {
	total := len(paths)
	results := make([]Result, total)
	var processed atomic.Int64

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		for i, p := range paths {
			results[i] = Result{Name: sessionName(p), Error: err.Error()}
		}
		return results
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f scans/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	sessionChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range sessionChan {
				results[idx] = processSession(cfg, paths[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range paths {
		sessionChan <- i
	}
	close(sessionChan)

	wg.Wait()
	close(done)

	return results
}

func processSession(cfg Config, path string) Result {
	sess, err := scan.LoadSession(path)
	if err != nil {
		return Result{Name: sessionName(path), Error: err.Error()}
	}

	res := scan.Run(sess)

	// The GLB is written even when reconstruction failed; a zero-length
	// file is the agreed signal for "no usable scan".
	glbFile := sess.Name + ".glb"
	if err := os.WriteFile(filepath.Join(cfg.OutputDir, glbFile), res.GLB, 0644); err != nil {
		return Result{Name: sess.Name, Error: err.Error()}
	}

	if err := writeReport(filepath.Join(cfg.OutputDir, sess.Name+".json"), sess, res); err != nil {
		return Result{Name: sess.Name, Error: err.Error()}
	}

	if cfg.Preview != "none" && !res.Mesh.Empty() {
		if err := WritePreview(cfg, sess.Name, res); err != nil {
			return Result{Name: sess.Name, Error: err.Error()}
		}
	}

	r := Result{
		Name:        sess.Name,
		GLBFile:     glbFile,
		ValidPoints: res.ValidPoints(),
		Success:     res.OK(),
	}
	if !r.Success {
		r.Error = firstProblem(res)
	}
	return r
}

// WritePreview renders the result mesh and writes
// <OutputDir>/<name>.<format> in the configured preview format.
func WritePreview(cfg Config, name string, res *scan.Result) error {
	img := raster.Render(res.Mesh, cfg.RenderSize, cfg.Supersample, cfg.PreviewYawDeg)
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.RenderSize)
	}
	img = postprocess.CropAndCenter(img, cfg.RenderSize, cfg.FillRatio)

	ext := "webp"
	if cfg.Preview == "tga" {
		ext = "tga"
	}

	f, err := os.Create(filepath.Join(cfg.OutputDir, name+"."+ext))
	if err != nil {
		return err
	}
	defer f.Close()

	switch ext {
	case "tga":
		if err := tga.Encode(f, img); err != nil {
			return fmt.Errorf("TGA encode: %v", err)
		}
	default:
		if err := nativewebp.Encode(f, img, nil); err != nil {
			return fmt.Errorf("WebP encode: %v", err)
		}
	}
	return nil
}

// firstProblem picks the most informative validation message for a
// failed reconstruction.
func firstProblem(res *scan.Result) string {
	for _, v := range res.Validations {
		if v.Message != "" {
			return v.Message
		}
	}
	return "insufficient valid keypoints"
}

func sessionName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
