package sketch

import (
	"errors"
	"fmt"
	"math"
)

// InkThreshold is the channel intensity below which a pixel counts as ink.
const InkThreshold = 250

// ErrInvalidBitmap is returned when a pixel buffer does not match its
// declared dimensions.
var ErrInvalidBitmap = errors.New("invalid bitmap")

// Bitmap is a raw RGBA raster, 4 bytes per pixel, row-major, with (0,0) at
// the top-left corner. It is borrowed read-only by Extract.
type Bitmap struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewBitmap wraps pix as a Bitmap after checking that its length is exactly
// width*height*4. The buffer is not copied.
func NewBitmap(width, height int, pix []uint8) (*Bitmap, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidBitmap, width, height)
	}
	if width > 0 && height > math.MaxInt/4/width {
		return nil, fmt.Errorf("%w: %dx%d RGBA overflows the addressable size", ErrInvalidBitmap, width, height)
	}
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("%w: buffer holds %d bytes, %dx%d RGBA needs %d",
			ErrInvalidBitmap, len(pix), width, height, width*height*4)
	}
	return &Bitmap{Width: width, Height: height, Pix: pix}, nil
}

// Blank returns a white, fully opaque bitmap.
func Blank(width, height int) *Bitmap {
	pix := make([]uint8, width*height*4)
	for i := range pix {
		pix[i] = 255
	}
	return &Bitmap{Width: width, Height: height, Pix: pix}
}

// IsInk reports whether the pixel at (x, y) is ink. The caller guarantees
// the coordinates are inside the bitmap.
func (b *Bitmap) IsInk(x, y int) bool {
	i := (y*b.Width + x) * 4
	return b.Pix[i] < InkThreshold || b.Pix[i+1] < InkThreshold || b.Pix[i+2] < InkThreshold
}

// SetRGBA writes one pixel. Out-of-range coordinates are ignored.
func (b *Bitmap) SetRGBA(x, y int, r, g, bl, a uint8) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	i := (y*b.Width + x) * 4
	b.Pix[i] = r
	b.Pix[i+1] = g
	b.Pix[i+2] = bl
	b.Pix[i+3] = a
}

// HasInk reports whether any pixel is ink. It stops at the first one found.
func (b *Bitmap) HasInk() bool {
	for i := 0; i+3 < len(b.Pix); i += 4 {
		if b.Pix[i] < InkThreshold || b.Pix[i+1] < InkThreshold || b.Pix[i+2] < InkThreshold {
			return true
		}
	}
	return false
}
