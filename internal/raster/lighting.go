package raster

import (
	"math"

	"bodyscan-recon/internal/mathutil"
)

// LightConfig drives the preview shading. Directions are in view space
// and must be unit length; weights are tuned for the gray mannequin.
type LightConfig struct {
	LightDir mathutil.Vec3 // key light
	RimDir   mathutil.Vec3
	Ambient  float64
	Fill     float64 // hemisphere fill weight
	Key      float64
	Rim      float64
	Specular float64
	Gloss    float64 // Blinn-Phong exponent
	Exposure float64

	half     mathutil.Vec3 // half vector between key light and viewer
	invGamma float64
}

// DefaultLightConfig returns the standard preview rig: a warm key from
// the upper right, a cool rim from behind, and a vertical hemisphere
// fill.
func DefaultLightConfig() LightConfig {
	lightDir := mathutil.Vec3{180, 260, 140}.Normalize()
	viewDir := mathutil.Vec3{0, -110, -400}.Normalize()

	return LightConfig{
		LightDir: lightDir,
		RimDir:   mathutil.Vec3{-160, 130, -210}.Normalize(),
		Ambient:  0.55,
		Fill:     0.50,
		Key:      1.50,
		Rim:      0.60,
		Specular: 0.45,
		Gloss:    12.0,
		Exposure: 1.05,
		half:     lightDir.Sub(viewDir).Normalize(),
		invGamma: 1.0 / 2.2,
	}
}

// ComputeShade returns the combined lighting scalar for a face normal.
// Lambertian terms take the absolute dot so both sides of a face light
// the same way.
func (lc *LightConfig) ComputeShade(normal mathutil.Vec3) float64 {
	key := math.Abs(normal.Dot(lc.LightDir))
	rim := math.Abs(normal.Dot(lc.RimDir))
	fill := ((1 - math.Abs(normal[1])) * 0.5) + 0.5

	spec := math.Pow(max(normal.Dot(lc.half), 0), lc.Gloss) * lc.Specular

	return lc.Ambient + fill*lc.Fill + key*lc.Key + rim*lc.Rim + spec
}

// ShadeColor pushes a base sRGB color through the shading chain: decode
// to linear, scale by shade and exposure, ACES tone map, re-encode.
func (lc *LightConfig) ShadeColor(r, g, b uint8, shade float64) (uint8, uint8, uint8) {
	e := shade * lc.Exposure
	return lc.encode(srgbToLinear[r] * e),
		lc.encode(srgbToLinear[g] * e),
		lc.encode(srgbToLinear[b] * e)
}

func (lc *LightConfig) encode(x float64) uint8 {
	v := math.Pow(acesTonemap(x), lc.invGamma) * 255
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// acesTonemap is the ACES filmic curve fitted by Krzysztof Narkowicz.
func acesTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

var srgbToLinear [256]float64

func init() {
	for i := range srgbToLinear {
		srgbToLinear[i] = math.Pow(float64(i)/255, 2.2)
	}
}
