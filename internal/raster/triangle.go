package raster

import (
	"bodyscan-recon/internal/mathutil"
)

// RasterizeTriangle fills a single triangle with z-buffering and flat
// per-face lighting.
//
// This is the HOT PATH. The surface color is constant across a face, so the
// full shading chain runs once up front and the pixel loop is only the
// barycentric test, the depth compare, and the write.
func RasterizeTriangle(
	fb *FrameBuffer,
	px, py, pz []float64,
	idx [3]int,
	r, g, b uint8,
	lc *LightConfig,
) {
	nv := len(px)
	for _, i := range idx {
		if i < 0 || i >= nv {
			return
		}
	}

	x0, y0, z0 := px[idx[0]], py[idx[0]], pz[idx[0]]
	x1, y1, z1 := px[idx[1]], py[idx[1]], pz[idx[1]]
	x2, y2, z2 := px[idx[2]], py[idx[2]], pz[idx[2]]

	// Degenerate faces have no normal to light.
	e1 := mathutil.Vec3{x1 - x0, y1 - y0, z1 - z0}
	e2 := mathutil.Vec3{x2 - x0, y2 - y0, z2 - z0}
	n := e1.Cross(e2)
	if n.Len() < 1e-8 {
		return
	}

	shade := lc.ComputeShade(n.Normalize())
	cr, cg, cb := lc.ShadeColor(r, g, b, shade)

	size := fb.Width
	minX := max(int(min(x0, x1, x2)), 0)
	maxX := min(int(max(x0, x1, x2))+1, size-1)
	minY := max(int(min(y0, y1, y2)), 0)
	maxY := min(int(max(y0, y1, y2))+1, size-1)
	if minX >= maxX || minY >= maxY {
		return
	}

	// Barycentric setup. A vanishing determinant means an edge-on face.
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - y2
		rowOff := sy * size
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - x2
			b0 := (dy12*dsx + dx21*dsy) * invDet
			b1 := (dy20*dsx + dx02*dsy) * invDet
			b2 := 1.0 - b0 - b1

			// Slack admits pixels sitting exactly on a shared edge.
			if b0 < -0.001 || b1 < -0.001 || b2 < -0.001 {
				continue
			}

			z := b0*z0 + b1*z1 + b2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}
			fb.ZBuf[zIdx] = z

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = cr
			fb.Color[pxIdx+1] = cg
			fb.Color[pxIdx+2] = cb
			fb.Color[pxIdx+3] = 255
		}
	}
}
