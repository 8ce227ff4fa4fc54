package sketch

// AspectSentinel stands in for the aspect ratio of a box with zero height and
// non-zero width, which would otherwise be infinite.
const AspectSentinel = 1e6

// Point is a position in pixel space with sub-pixel precision.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pixel is an integer pixel coordinate.
type Pixel struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Box is the tightest axis-aligned box containing all ink pixels.
// All four edges are inclusive.
type Box struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// Descriptor is the geometric summary of a sketch.
//
// When Empty is true the bitmap held no ink and every other field is zero.
// Corners, CurveSegments and the three line counts are only populated when
// ShapeDetail is true.
type Descriptor struct {
	// Empty is true iff the bitmap has no ink pixels.
	Empty bool `json:"is_empty"`

	// Centroid is the mean position of the ink pixels.
	Centroid Point `json:"centroid"`

	// Box is the ink bounding box.
	Box Box `json:"bounding_box"`

	// Width and Height are the bounding box extents (MaxX-MinX, MaxY-MinY).
	// Either may be zero.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// AspectRatio is Width/Height, with the sentinel policy described in the
	// package documentation for degenerate boxes.
	AspectRatio float64 `json:"aspect_ratio"`

	// Area is the bounding box area (Width*Height), not the ink pixel count.
	Area float64 `json:"area"`

	// Density is InkPixels/Area.
	Density float64 `json:"density"`

	// InkPixels is the number of ink pixels.
	InkPixels int `json:"ink_pixels"`

	// Perimeter is the number of edge pixels.
	Perimeter int `json:"perimeter"`

	// Circularity is 4π·Area/Perimeter², or 0 when Perimeter is 0.
	Circularity float64 `json:"circularity"`

	ShapeDetail     bool `json:"shape_detail"`
	Corners         int  `json:"corner_count"`
	CurveSegments   int  `json:"curve_segment_count"`
	HorizontalLines int  `json:"horizontal_lines"`
	VerticalLines   int  `json:"vertical_lines"`
	DiagonalLines   int  `json:"diagonal_lines"`
}

// StraightLines is the sum of the horizontal, vertical and diagonal lane counts.
func (d *Descriptor) StraightLines() int {
	return d.HorizontalLines + d.VerticalLines + d.DiagonalLines
}

// Trace holds the edge pixels found during the second pass, split by class.
// Corners and Curves are only filled when ShapeDetail was requested; without
// it every edge pixel lands in Edges.
type Trace struct {
	Edges   []Pixel `json:"edges"`
	Corners []Pixel `json:"corners"`
	Curves  []Pixel `json:"curves"`
}
