package postprocess_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"bodyscan-recon/internal/postprocess"
)

// blobImage builds a transparent canvas with one opaque grey
// rectangle.
func blobImage(w, h int, blob image.Rectangle) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := blob.Min.Y; y < blob.Max.Y; y++ {
		for x := blob.Min.X; x < blob.Max.X; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}
	return img
}

// TestDownsampleHalves verifies the supersampled frame shrinks to the
// target with color and coverage intact.
func TestDownsampleHalves(t *testing.T) {
	src := blobImage(128, 128, image.Rect(32, 32, 96, 96))
	got := postprocess.Downsample(src, 64)

	require.Equal(t, 64, got.Bounds().Dx())
	require.Equal(t, 64, got.Bounds().Dy())

	// Blob center survives at full alpha and the source grey.
	center := got.NRGBAAt(32, 32)
	require.EqualValues(t, 255, center.A)
	require.InDelta(t, 200, float64(center.R), 2)

	// Background stays fully transparent away from the blob edge.
	require.Zero(t, got.NRGBAAt(2, 2).A)
}

// TestDownsampleNoOpWhenSmall verifies frames already at or below the
// target pass through untouched.
func TestDownsampleNoOpWhenSmall(t *testing.T) {
	src := blobImage(64, 64, image.Rect(10, 10, 20, 20))
	require.Same(t, src, postprocess.Downsample(src, 64))
	require.Same(t, src, postprocess.Downsample(src, 128))
}

// TestCropAndCenterRecentersBlob verifies an off-center blob comes
// back centered at the fill ratio.
func TestCropAndCenterRecentersBlob(t *testing.T) {
	src := blobImage(100, 100, image.Rect(70, 10, 80, 20))
	got := postprocess.CropAndCenter(src, 50, 0.8)

	require.Equal(t, 50, got.Bounds().Dx())
	require.Equal(t, 50, got.Bounds().Dy())

	require.EqualValues(t, 255, got.NRGBAAt(25, 25).A)
	require.Zero(t, got.NRGBAAt(1, 25).A)
	require.Zero(t, got.NRGBAAt(48, 25).A)
	require.Zero(t, got.NRGBAAt(25, 1).A)
	require.Zero(t, got.NRGBAAt(25, 48).A)

	// The square blob fills 80% of the canvas and sits symmetric.
	minX, maxX, width := 50, -1, 0
	for x := 0; x < 50; x++ {
		if got.NRGBAAt(x, 25).A != 0 {
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			width++
		}
	}
	require.InDelta(t, 40, float64(width), 2)
	require.LessOrEqual(t, abs(minX-(49-maxX)), 1)
}

// TestCropAndCenterTransparentInput verifies a blank render maps to a
// blank canvas at the requested size.
func TestCropAndCenterTransparentInput(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 30, 30))
	got := postprocess.CropAndCenter(src, 40, 0.9)

	require.Equal(t, 40, got.Bounds().Dx())
	require.Equal(t, 40, got.Bounds().Dy())
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			require.Zero(t, got.NRGBAAt(x, y).A)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
