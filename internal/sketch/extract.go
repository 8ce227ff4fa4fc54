package sketch

import "math"

// Edge pixels with at most cornerNeighbors filled neighbours are corners;
// those with at least curveNeighbors are curve segments.
const (
	cornerNeighbors = 2
	curveNeighbors  = 6
)

// Options selects how much detail Extract computes.
type Options struct {
	// ShapeDetail enables corner/curve classification and lane counting.
	ShapeDetail bool
}

// Extract computes the Descriptor of a bitmap.
//
// # Algorithm
//
//  1. Pass 1 scans every pixel row by row, classifies it as ink or
//     background, accumulates coordinate sums and tracks the bounding box.
//     The ink pixels are collected in scan order for the second pass.
//  2. Centroid, extents, aspect ratio, area and density are derived once
//     from the accumulated values.
//  3. Pass 2 visits the collected ink pixels and inspects each 8-neighbourhood.
//     A neighbour outside the bitmap or a background neighbour makes the pixel
//     an edge pixel.
//  4. Circularity is computed from the edge count and the bounding box area.
//
// Coordinate sums are kept as integers and divided once at the end, so the
// result is bit-for-bit reproducible for a given bitmap.
func Extract(b *Bitmap, opts Options) Descriptor {
	d, _ := extract(b, opts, false)
	return d
}

// ExtractTrace is Extract plus the classified edge pixels, for rendering.
// The Trace is nil when the bitmap is empty.
func ExtractTrace(b *Bitmap, opts Options) (Descriptor, *Trace) {
	return extract(b, opts, true)
}

func extract(b *Bitmap, opts Options, trace bool) (Descriptor, *Trace) {
	width, height := b.Width, b.Height

	minX, minY := width, height
	maxX, maxY := 0, 0
	var sumX, sumY int64
	ink := make([]Pixel, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !b.IsInk(x, y) {
				continue
			}
			sumX += int64(x)
			sumY += int64(y)
			ink = append(ink, Pixel{X: x, Y: y})

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

	if len(ink) == 0 {
		return Descriptor{Empty: true}, nil
	}

	count := float64(len(ink))
	boxW := float64(maxX - minX)
	boxH := float64(maxY - minY)
	area := boxW * boxH

	d := Descriptor{
		Centroid:    Point{X: float64(sumX) / count, Y: float64(sumY) / count},
		Box:         Box{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY},
		Width:       boxW,
		Height:      boxH,
		AspectRatio: aspectRatio(boxW, boxH),
		Area:        area,
		InkPixels:   len(ink),
		ShapeDetail: opts.ShapeDetail,
	}
	if area > 0 {
		d.Density = count / area
	} else {
		d.Density = count
	}

	var tr *Trace
	if trace {
		tr = &Trace{}
	}

	for _, p := range ink {
		edge, filled := neighborhood(b, p.X, p.Y)
		if !edge {
			continue
		}
		d.Perimeter++

		switch {
		case opts.ShapeDetail && filled <= cornerNeighbors:
			d.Corners++
			if tr != nil {
				tr.Corners = append(tr.Corners, p)
			}
		case opts.ShapeDetail && filled >= curveNeighbors:
			d.CurveSegments++
			if tr != nil {
				tr.Curves = append(tr.Curves, p)
			}
		default:
			if tr != nil {
				tr.Edges = append(tr.Edges, p)
			}
		}
	}

	if d.Perimeter > 0 {
		per := float64(d.Perimeter)
		d.Circularity = (4 * math.Pi * area) / (per * per)
	}

	if opts.ShapeDetail {
		d.HorizontalLines = countLanes(ink, func(p Pixel) int { return p.Y })
		d.VerticalLines = countLanes(ink, func(p Pixel) int { return p.X })
		d.DiagonalLines = countLanes(ink, func(p Pixel) int { return p.X - p.Y })
	}

	return d, tr
}

// aspectRatio divides width by height without ever returning NaN or Inf.
func aspectRatio(w, h float64) float64 {
	switch {
	case h > 0:
		return w / h
	case w > 0:
		return AspectSentinel
	default:
		return 1
	}
}

// neighborhood inspects the 8 neighbours of (x, y). It reports whether the
// pixel lies on an edge (some neighbour is background or off the bitmap) and
// how many in-bounds neighbours are ink.
func neighborhood(b *Bitmap, x, y int) (edge bool, filled int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= b.Width || ny < 0 || ny >= b.Height {
				edge = true
				continue
			}
			if b.IsInk(nx, ny) {
				filled++
			} else {
				edge = true
			}
		}
	}
	return edge, filled
}

// countLanes groups pixels by key and returns the number of distinct keys.
func countLanes(pixels []Pixel, key func(Pixel) int) int {
	lanes := make(map[int]struct{})
	for _, p := range pixels {
		lanes[key(p)] = struct{}{}
	}
	return len(lanes)
}
