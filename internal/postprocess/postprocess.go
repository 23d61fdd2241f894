// Package postprocess finishes rendered previews: downsampling of
// supersampled frames and framing on a fixed-size canvas.
package postprocess

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Downsample reduces image size with premultiplied-alpha-aware CatmullRom
// filtering. Scaling straight NRGBA would bleed the (black, transparent)
// background into edge pixels and leave dark halos.
func Downsample(img *image.NRGBA, targetSize int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= targetSize && b.Dy() <= targetSize {
		return img
	}

	// Premultiply alpha
	premul := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := premul.PixOffset(x, y)
			a := float64(img.Pix[si+3]) / 255.0
			premul.Pix[di] = uint8(float64(img.Pix[si])*a + 0.5)
			premul.Pix[di+1] = uint8(float64(img.Pix[si+1])*a + 0.5)
			premul.Pix[di+2] = uint8(float64(img.Pix[si+2])*a + 0.5)
			premul.Pix[di+3] = img.Pix[si+3]
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetSize, targetSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	// Unpremultiply alpha
	result := image.NewNRGBA(dst.Bounds())
	for y := 0; y < targetSize; y++ {
		for x := 0; x < targetSize; x++ {
			si := dst.PixOffset(x, y)
			di := result.PixOffset(x, y)
			a := float64(dst.Pix[si+3])
			if a > 1 {
				inv := 255.0 / a
				result.Pix[di] = clamp8(float64(dst.Pix[si]) * inv)
				result.Pix[di+1] = clamp8(float64(dst.Pix[si+1]) * inv)
				result.Pix[di+2] = clamp8(float64(dst.Pix[si+2]) * inv)
			}
			result.Pix[di+3] = dst.Pix[si+3]
		}
	}

	return result
}

// CropAndCenter crops to the bounding box of non-transparent pixels, then
// scales the crop to fillRatio of a square canvas and centers it.
func CropAndCenter(img *image.NRGBA, size int, fillRatio float64) *image.NRGBA {
	cropped := cropAlpha(img)
	return scaleAndCenter(cropped, size, fillRatio)
}

func cropAlpha(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	minX, minY := w, h
	maxX, maxY := 0, 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if img.Pix[y*img.Stride+x*4+3] > 0 {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}

	if maxX <= minX || maxY <= minY {
		return img
	}

	cropW := maxX - minX + 1
	cropH := maxY - minY + 1
	cropped := image.NewNRGBA(image.Rect(0, 0, cropW, cropH))
	for y := 0; y < cropH; y++ {
		srcOff := (minY+y)*img.Stride + minX*4
		dstOff := y * cropped.Stride
		copy(cropped.Pix[dstOff:dstOff+cropW*4], img.Pix[srcOff:srcOff+cropW*4])
	}
	return cropped
}

func scaleAndCenter(img *image.NRGBA, canvasSize int, fillRatio float64) *image.NRGBA {
	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if srcW == 0 || srcH == 0 {
		return image.NewNRGBA(image.Rect(0, 0, canvasSize, canvasSize))
	}

	maxDim := float64(canvasSize) * fillRatio
	scaleF := maxDim / math.Max(float64(srcW), float64(srcH))
	newW := int(float64(srcW)*scaleF + 0.5)
	newH := int(float64(srcH)*scaleF + 0.5)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	scaled := image.NewNRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	// Center on a transparent canvas
	canvas := image.NewNRGBA(image.Rect(0, 0, canvasSize, canvasSize))
	offX := (canvasSize - newW) / 2
	offY := (canvasSize - newH) / 2
	for y := 0; y < newH; y++ {
		if offY+y < 0 || offY+y >= canvasSize {
			continue
		}
		srcOff := y * scaled.Stride
		dstOff := (offY+y)*canvas.Stride + offX*4
		copyLen := newW * 4
		if offX+newW > canvasSize {
			copyLen = (canvasSize - offX) * 4
		}
		if offX >= 0 && copyLen > 0 {
			copy(canvas.Pix[dstOff:dstOff+copyLen], scaled.Pix[srcOff:srcOff+copyLen])
		}
	}

	return canvas
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
