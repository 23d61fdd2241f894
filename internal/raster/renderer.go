package raster

import (
	"image"
	"math"

	"bodyscan-recon/internal/bodymesh"
	"bodyscan-recon/internal/mathutil"
)

// Surface color for the untextured body mesh, the sRGB encoding of the
// material grey (0.8 linear) carried in the exported model.
const (
	baseR = 230
	baseG = 230
	baseB = 230
)

// FrameBuffer holds the rendering target as flat slices for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	ZBuf   []float64 // depth per pixel, len = W*H, initialized to -inf
}

// NewFrameBuffer allocates a zeroed color buffer and -inf z-buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	zbuf := make([]float64, n)
	for i := range zbuf {
		zbuf[i] = math.Inf(-1)
	}
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, n*4),
		ZBuf:   zbuf,
	}
}

// Render draws the mesh into a square orthographic preview, seen from a
// turntable position yawDeg degrees around the vertical axis. The mesh is
// framed to fill the image minus a fixed margin; the background stays
// transparent. Pass supersample > 1 and downsample afterwards for
// antialiased output.
func Render(buf bodymesh.Buffers, size, supersample int, yawDeg float64) *image.NRGBA {
	if supersample < 1 {
		supersample = 1
	}
	if buf.Empty() || size <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, size, size))
	}

	renderSize := size * supersample
	view := mathutil.RotY(mathutil.Deg2Rad(yawDeg))

	// Transform all vertices up front and track the view-space bounding box.
	n := buf.VertexCount()
	tx := make([]float64, n)
	ty := make([]float64, n)
	tz := make([]float64, n)
	allMin := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	allMax := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i := 0; i < n; i++ {
		t := view.Apply(mathutil.Vec3{
			float64(buf.Vertices[i*3]),
			float64(buf.Vertices[i*3+1]),
			float64(buf.Vertices[i*3+2]),
		})
		tx[i], ty[i], tz[i] = t[0], t[1], t[2]
		for k := 0; k < 3; k++ {
			if t[k] < allMin[k] {
				allMin[k] = t[k]
			}
			if t[k] > allMax[k] {
				allMax[k] = t[k]
			}
		}
	}

	center := [3]float64{
		(allMin[0] + allMax[0]) / 2,
		(allMin[1] + allMax[1]) / 2,
		(allMin[2] + allMax[2]) / 2,
	}
	spanX := allMax[0] - allMin[0]
	spanY := allMax[1] - allMin[1]
	span := max(spanX, spanY, 0.001)

	margin := 16 * supersample
	scale := float64(renderSize-2*margin) / span

	// Project to screen: X right, Y down, depth increasing toward the viewer.
	px := make([]float64, n)
	py := make([]float64, n)
	pz := make([]float64, n)
	half := float64(renderSize) / 2
	for i := 0; i < n; i++ {
		px[i] = half + (tx[i]-center[0])*scale
		py[i] = half - (ty[i]-center[1])*scale
		pz[i] = (tz[i] - center[2]) * scale
	}

	fb := NewFrameBuffer(renderSize, renderSize)
	lc := DefaultLightConfig()

	for i := 0; i+2 < len(buf.Indices); i += 3 {
		idx := [3]int{int(buf.Indices[i]), int(buf.Indices[i+1]), int(buf.Indices[i+2])}
		RasterizeTriangle(fb, px, py, pz, idx, baseR, baseG, baseB, &lc)
	}

	img := image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	copy(img.Pix, fb.Color)

	return img
}
