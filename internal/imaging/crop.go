package imaging

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/doodle-guess-mcp/internal/sketch"
)

// CropToInk cuts the image down to an ink bounding box grown by pad pixels
// on every side. The padded box is clipped to the image bounds. The result's
// bounds start at (0, 0).
func CropToInk(img image.Image, box sketch.Box, pad int) *image.NRGBA {
	if pad < 0 {
		pad = 0
	}
	// Box is inclusive, image rectangles are half-open.
	r := image.Rect(box.MinX-pad, box.MinY-pad, box.MaxX+1+pad, box.MaxY+1+pad)
	b := img.Bounds()
	r = r.Add(b.Min).Intersect(b)
	if r.Empty() {
		return imaging.Clone(img)
	}
	return imaging.Crop(img, r)
}

// Upscale enlarges an image by an integer factor with nearest-neighbour
// sampling so single-pixel features stay crisp. factor <= 1 returns a copy.
func Upscale(img image.Image, factor int) *image.NRGBA {
	if factor <= 1 {
		return imaging.Clone(img)
	}
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*factor, b.Dy()*factor, imaging.NearestNeighbor)
}
