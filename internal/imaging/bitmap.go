package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/doodle-guess-mcp/internal/sketch"
)

// ToBitmap converts an image into a sketch.Bitmap.
//
// # Algorithm
//
//  1. Composite the image onto an opaque white canvas so transparent
//     regions of a saved canvas read as background rather than black ink.
//  2. When maxSide > 0 and either side exceeds it, downscale with
//     imaging.Fit (aspect preserved, Lanczos filter).
//  3. Copy the non-premultiplied pixels row by row into a tightly packed
//     RGBA buffer.
//
// The result's bounds always start at (0, 0).
func ToBitmap(img image.Image, maxSide int) *sketch.Bitmap {
	b := img.Bounds()
	flat := imaging.Overlay(imaging.New(b.Dx(), b.Dy(), color.White), img, image.Pt(0, 0), 1.0)
	if maxSide > 0 && (flat.Rect.Dx() > maxSide || flat.Rect.Dy() > maxSide) {
		flat = imaging.Fit(flat, maxSide, maxSide, imaging.Lanczos)
	}
	return fromNRGBA(flat)
}

// fromNRGBA copies an NRGBA image into a packed bitmap.
func fromNRGBA(img *image.NRGBA) *sketch.Bitmap {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	bm := &sketch.Bitmap{Width: w, Height: h, Pix: make([]uint8, w*h*4)}
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+w*4]
		copy(bm.Pix[y*w*4:(y+1)*w*4], src)
	}
	return bm
}

// ToImage wraps a bitmap's pixels as an *image.NRGBA without copying.
func ToImage(bm *sketch.Bitmap) *image.NRGBA {
	return &image.NRGBA{
		Pix:    bm.Pix,
		Stride: bm.Width * 4,
		Rect:   image.Rect(0, 0, bm.Width, bm.Height),
	}
}
