package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/doodle-guess-mcp/internal/sketch"
)

// OverlayStyle controls how Annotate draws the extracted geometry.
// Colours are hex strings ("#RRGGBB"); an unparseable colour falls back to
// the default for that element.
type OverlayStyle struct {
	BoxColor      string `json:"box_color" yaml:"box_color"`
	CentroidColor string `json:"centroid_color" yaml:"centroid_color"`
	EdgeColor     string `json:"edge_color" yaml:"edge_color"`
	CornerColor   string `json:"corner_color" yaml:"corner_color"`
	CurveColor    string `json:"curve_color" yaml:"curve_color"`

	// Fade blends the original ink towards white, 0 (untouched) to 1 (gone).
	Fade float64 `json:"fade" yaml:"fade"`

	// Crop trims the output to the ink bounding box plus Padding pixels.
	Crop    bool `json:"crop" yaml:"crop"`
	Padding int  `json:"padding" yaml:"padding"`

	// Scale is an integer upscale factor applied after cropping.
	Scale int `json:"scale" yaml:"scale"`

	// Caption is printed in a strip under the image when non-empty.
	Caption string `json:"caption,omitempty" yaml:"-"`
}

// DefaultOverlayStyle returns the colours used when none are configured.
func DefaultOverlayStyle() OverlayStyle {
	return OverlayStyle{
		BoxColor:      "#1E90FF",
		CentroidColor: "#FF00FF",
		EdgeColor:     "#2E8B57",
		CornerColor:   "#FF4500",
		CurveColor:    "#FFB000",
		Fade:          0.7,
		Padding:       8,
		Scale:         1,
	}
}

// OverlayResult contains the rendered overlay.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

const captionHeight = 18

// RenderOverlay draws the descriptor and trace over a faded copy of the
// bitmap.
//
// # Layers
//
// Drawn bottom to top: faded ink, plain edge pixels, curve pixels, corner
// pixels, the bounding box outline and a centroid cross. Cropping and
// scaling follow, then the caption strip is appended. A nil trace draws no
// edge layers; an empty descriptor draws neither box nor centroid.
func RenderOverlay(bm *sketch.Bitmap, d sketch.Descriptor, tr *sketch.Trace, style OverlayStyle) *image.NRGBA {
	def := DefaultOverlayStyle()
	boxC := parseHexColor(style.BoxColor, def.BoxColor)
	centroidC := parseHexColor(style.CentroidColor, def.CentroidColor)
	edgeC := parseHexColor(style.EdgeColor, def.EdgeColor)
	cornerC := parseHexColor(style.CornerColor, def.CornerColor)
	curveC := parseHexColor(style.CurveColor, def.CurveColor)

	canvas := fade(bm, style.Fade)

	if tr != nil {
		plot(canvas, tr.Edges, edgeC)
		plot(canvas, tr.Curves, curveC)
		plot(canvas, tr.Corners, cornerC)
	}

	if !d.Empty {
		drawBox(canvas, d.Box, boxC)
		cx, cy := int(d.Centroid.X+0.5), int(d.Centroid.Y+0.5)
		for i := -3; i <= 3; i++ {
			setSafe(canvas, cx+i, cy, centroidC)
			setSafe(canvas, cx, cy+i, centroidC)
		}
	}

	var out image.Image = canvas
	if style.Crop && !d.Empty {
		out = CropToInk(out, d.Box, style.Padding)
	}
	scaled := Upscale(out, style.Scale)

	if style.Caption == "" {
		return scaled
	}
	return withCaption(scaled, style.Caption)
}

// Annotate renders the overlay and returns it as a base64 PNG.
func Annotate(bm *sketch.Bitmap, d sketch.Descriptor, tr *sketch.Trace, style OverlayStyle) (*OverlayResult, error) {
	img := RenderOverlay(bm, d, tr, style)

	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return nil, err
	}

	return &OverlayResult{
		Width:       img.Rect.Dx(),
		Height:      img.Rect.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := imgio.PNGEncoder()(w, img); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// fade copies the bitmap, blending every ink pixel towards white.
func fade(bm *sketch.Bitmap, amount float64) *image.NRGBA {
	if amount < 0 {
		amount = 0
	}
	if amount > 1 {
		amount = 1
	}
	out := image.NewNRGBA(image.Rect(0, 0, bm.Width, bm.Height))
	white := colorful.Color{R: 1, G: 1, B: 1}
	for y := 0; y < bm.Height; y++ {
		for x := 0; x < bm.Width; x++ {
			i := (y*bm.Width + x) * 4
			if !bm.IsInk(x, y) {
				out.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
				continue
			}
			ink := colorful.Color{
				R: float64(bm.Pix[i]) / 255,
				G: float64(bm.Pix[i+1]) / 255,
				B: float64(bm.Pix[i+2]) / 255,
			}
			r, g, b := ink.BlendRgb(white, amount).Clamped().RGB255()
			out.SetNRGBA(x, y, color.NRGBA{r, g, b, 255})
		}
	}
	return out
}

func plot(img *image.NRGBA, pts []sketch.Pixel, c color.NRGBA) {
	for _, p := range pts {
		setSafe(img, p.X, p.Y, c)
	}
}

func drawBox(img *image.NRGBA, box sketch.Box, c color.NRGBA) {
	for x := box.MinX; x <= box.MaxX; x++ {
		setSafe(img, x, box.MinY, c)
		setSafe(img, x, box.MaxY, c)
	}
	for y := box.MinY; y <= box.MaxY; y++ {
		setSafe(img, box.MinX, y, c)
		setSafe(img, box.MaxX, y, c)
	}
}

func setSafe(img *image.NRGBA, x, y int, c color.NRGBA) {
	if image.Pt(x, y).In(img.Rect) {
		img.SetNRGBA(x, y, c)
	}
}

// withCaption appends a white strip with the caption in gg's default
// face (basicfont 7x13). Text that does not fit is truncated with "...".
func withCaption(img *image.NRGBA, caption string) *image.NRGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	dc := gg.NewContext(w, h+captionHeight)
	dc.SetColor(color.White)
	dc.Clear()
	dc.DrawImage(img, 0, 0)

	maxW := float64(w - 4)
	if tw, _ := dc.MeasureString(caption); tw > maxW {
		for len(caption) > 0 {
			caption = caption[:len(caption)-1]
			if tw, _ := dc.MeasureString(strings.TrimSpace(caption) + "..."); tw <= maxW {
				break
			}
		}
		if caption != "" {
			caption = strings.TrimSpace(caption) + "..."
		}
	}

	dc.SetColor(color.Black)
	dc.DrawString(caption, 2, float64(h+captionHeight-4))
	return imaging.Clone(dc.Image())
}

// parseHexColor parses "#RRGGBB" (or "RRGGBB") with go-colorful, falling
// back to def when hex is empty or malformed.
func parseHexColor(hex, def string) color.NRGBA {
	c, err := colorful.Hex(normalizeHex(hex))
	if err != nil {
		c, _ = colorful.Hex(def)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

func normalizeHex(hex string) string {
	hex = strings.TrimSpace(hex)
	if hex != "" && hex[0] != '#' {
		hex = "#" + hex
	}
	return hex
}
