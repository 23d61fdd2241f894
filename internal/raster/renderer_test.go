package raster_test

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"bodyscan-recon/internal/bodymesh"
	"bodyscan-recon/internal/mathutil"
	"bodyscan-recon/internal/raster"
)

// opaqueWidth counts the covered pixels in one image row.
func opaqueWidth(img *image.NRGBA, y int) int {
	n := 0
	for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
		if img.NRGBAAt(x, y).A != 0 {
			n++
		}
	}
	return n
}

// TestRenderPlaceholderSilhouette verifies the mannequin lands in the
// frame center on a transparent background.
func TestRenderPlaceholderSilhouette(t *testing.T) {
	img := raster.Render(bodymesh.Placeholder(), 64, 1, 0)
	require.Equal(t, 64, img.Bounds().Dx())
	require.Equal(t, 64, img.Bounds().Dy())

	require.EqualValues(t, 255, img.NRGBAAt(32, 32).A)
	require.Zero(t, img.NRGBAAt(1, 1).A)
	require.Zero(t, img.NRGBAAt(62, 62).A)
	require.Zero(t, img.NRGBAAt(1, 62).A)
}

// TestRenderSupersampleScalesCanvas verifies the raw render grows by
// the supersample factor.
func TestRenderSupersampleScalesCanvas(t *testing.T) {
	img := raster.Render(bodymesh.Placeholder(), 64, 2, 0)
	require.Equal(t, 128, img.Bounds().Dx())
	require.Equal(t, 128, img.Bounds().Dy())
}

// TestRenderEmptyMesh verifies an empty mesh renders a fully
// transparent canvas at the requested size.
func TestRenderEmptyMesh(t *testing.T) {
	img := raster.Render(bodymesh.Buffers{}, 32, 1, 0)
	require.Equal(t, 32, img.Bounds().Dx())
	for y := 0; y < 32; y++ {
		require.Zero(t, opaqueWidth(img, y), "row %d", y)
	}
}

// TestRenderYawShowsProfile verifies a quarter turn narrows the torso
// to its depth.
func TestRenderYawShowsProfile(t *testing.T) {
	front := raster.Render(bodymesh.Placeholder(), 64, 1, 0)
	side := raster.Render(bodymesh.Placeholder(), 64, 1, 90)

	frontW := opaqueWidth(front, 40)
	sideW := opaqueWidth(side, 40)
	require.Positive(t, sideW)
	require.Greater(t, frontW, sideW)
}

// TestLightConfigShading verifies a light-facing surface reads
// brighter than one edge-on to the key light, and that grey input
// shades to grey.
func TestLightConfigShading(t *testing.T) {
	lc := raster.DefaultLightConfig()

	u, _ := mathutil.OrthoBasis(lc.LightDir)
	aligned := lc.ComputeShade(lc.LightDir)
	side := lc.ComputeShade(u)
	require.Positive(t, side)
	require.Greater(t, aligned, side)

	r, g, b := lc.ShadeColor(230, 230, 230, aligned)
	require.Equal(t, r, g)
	require.Equal(t, g, b)
	require.Positive(t, r)
}
