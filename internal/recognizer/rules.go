package recognizer

import (
	"math"

	"github.com/ironsheep/doodle-guess-mcp/internal/sketch"
)

// Rule is one guarded heuristic. When When reports true, every Award adds
// (or assigns, depending on the profile) its weight to its label.
type Rule struct {
	Name   string
	When   func(d *sketch.Descriptor) bool
	Awards []Award
}

// Award is a single label contribution. Weights are clamped to [0, 1]
// before use.
type Award struct {
	Label  Label
	Weight func(d *sketch.Descriptor) float64
}

func always(*sketch.Descriptor) bool { return true }

// flat awards a constant weight.
func flat(l Label, w float64) Award {
	return Award{Label: l, Weight: func(*sketch.Descriptor) float64 { return w }}
}

// byCircularity awards a weight proportional to circularity.
func byCircularity(l Label, k float64) Award {
	return Award{Label: l, Weight: func(d *sketch.Descriptor) float64 { return d.Circularity * k }}
}

// formula wraps a single-label rule that always fires.
func formula(l Label, w func(d *sketch.Descriptor) float64) Rule {
	return Rule{Name: l.String(), When: always, Awards: []Award{{Label: l, Weight: w}}}
}

// pick returns hit when cond holds, miss otherwise.
func pick(cond bool, hit, miss float64) float64 {
	if cond {
		return hit
	}
	return miss
}

// between is the open interval test lo < v < hi.
func between(v, lo, hi float64) bool {
	return v > lo && v < hi
}

func extremeAspect(d *sketch.Descriptor) bool {
	return d.AspectRatio > 3 || d.AspectRatio < 0.33
}

func wideAndFlat(d *sketch.Descriptor) bool {
	return d.AspectRatio > 2 && d.Height < d.Width*0.3
}

// basicRules assign exactly one formula per label.
var basicRules = []Rule{
	formula(Circle, func(d *sketch.Descriptor) float64 {
		return d.Circularity * 2
	}),
	formula(Square, func(d *sketch.Descriptor) float64 {
		return (1 - math.Abs(d.AspectRatio-1)) * 2
	}),
	formula(Triangle, func(d *sketch.Descriptor) float64 {
		return (1 - d.Circularity) * 0.8
	}),
	formula(Line, func(d *sketch.Descriptor) float64 {
		return pick(extremeAspect(d), 0.9, 0.1)
	}),
	formula(Star, func(d *sketch.Descriptor) float64 {
		return d.Density*0.5 + (1-d.Circularity)*0.3
	}),
	formula(Heart, func(d *sketch.Descriptor) float64 {
		return d.Circularity*0.7 + (1-math.Abs(d.AspectRatio-1.2))*0.3
	}),
	formula(Smiley, func(d *sketch.Descriptor) float64 {
		return d.Circularity*0.8 + pick(d.Area > 1000, 0.2, 0)
	}),
	formula(House, func(d *sketch.Descriptor) float64 {
		return pick(between(d.AspectRatio, 1.2, 2), 0.7, 0.1)
	}),
	formula(Tree, func(d *sketch.Descriptor) float64 {
		return pick(d.AspectRatio < 0.8 && d.Density > 0.3, 0.6, 0.1)
	}),
	formula(Car, func(d *sketch.Descriptor) float64 {
		return pick(between(d.AspectRatio, 1.5, 3), 0.6, 0.1)
	}),
	formula(Cat, func(d *sketch.Descriptor) float64 {
		return d.Circularity*0.6 + pick(d.Area > 500, 0.2, 0)
	}),
	formula(Dog, func(d *sketch.Descriptor) float64 {
		return d.Circularity*0.5 + pick(d.Area > 800, 0.3, 0)
	}),
	formula(Bird, func(d *sketch.Descriptor) float64 {
		return d.Circularity*0.7 + pick(d.Area < 1000, 0.3, 0)
	}),
	formula(Fish, func(d *sketch.Descriptor) float64 {
		return pick(between(d.AspectRatio, 1.2, 2.5), 0.5, 0.1)
	}),
	formula(Flower, func(d *sketch.Descriptor) float64 {
		return d.Circularity*0.8 + pick(d.Area < 1500, 0.2, 0)
	}),
	formula(Sun, func(d *sketch.Descriptor) float64 {
		return d.Circularity*0.9 + pick(d.Area > 800, 0.1, 0)
	}),
	formula(Moon, func(d *sketch.Descriptor) float64 {
		return d.Circularity*0.8 + pick(between(d.Area, 500, 1500), 0.2, 0)
	}),
	formula(Cloud, func(d *sketch.Descriptor) float64 {
		return (1-d.Circularity)*0.7 + pick(d.AspectRatio > 1.5, 0.3, 0)
	}),
	formula(Rainbow, func(d *sketch.Descriptor) float64 {
		return pick(wideAndFlat(d), 0.6, 0.1)
	}),
}

// enhancedRules accumulate; several rules may feed the same label.
var enhancedRules = []Rule{
	{
		Name: "round",
		When: func(d *sketch.Descriptor) bool { return d.Circularity > 0.7 },
		Awards: []Award{
			byCircularity(Circle, 0.8),
			byCircularity(Sun, 0.6),
			byCircularity(Moon, 0.5),
			byCircularity(SmileyFace, 0.4),
			byCircularity(Flower, 0.3),
		},
	},
	{
		Name: "square",
		When: func(d *sketch.Descriptor) bool {
			return math.Abs(d.AspectRatio-1) < 0.2 && d.Corners >= 3
		},
		Awards: []Award{flat(Square, 0.8), flat(House, 0.4)},
	},
	{
		Name:   "rectangle",
		When:   func(d *sketch.Descriptor) bool { return between(d.AspectRatio, 1.2, 2.5) },
		Awards: []Award{flat(House, 0.6), flat(Car, 0.5), flat(Bus, 0.4), flat(Door, 0.3)},
	},
	{
		Name:   "triangle",
		When:   func(d *sketch.Descriptor) bool { return d.Corners >= 2 && d.Circularity < 0.3 },
		Awards: []Award{flat(Triangle, 0.7), flat(Mountain, 0.5)},
	},
	{
		Name:   "line",
		When:   extremeAspect,
		Awards: []Award{flat(Line, 0.8), flat(Pencil, 0.4)},
	},
	{
		Name:   "star",
		When:   func(d *sketch.Descriptor) bool { return d.Corners >= 5 && d.Density > 0.4 },
		Awards: []Award{flat(Star, 0.8)},
	},
	{
		Name: "heart",
		When: func(d *sketch.Descriptor) bool {
			return d.Circularity > 0.5 && between(d.AspectRatio, 0.8, 1.5)
		},
		Awards: []Award{flat(Heart, 0.6)},
	},
	{
		Name: "house",
		When: func(d *sketch.Descriptor) bool {
			return between(d.AspectRatio, 1.1, 2) && d.Corners >= 3
		},
		Awards: []Award{flat(House, 0.7)},
	},
	{
		Name: "tree",
		When: func(d *sketch.Descriptor) bool {
			return d.AspectRatio < 0.8 && d.Height > d.Width*1.2
		},
		Awards: []Award{flat(Tree, 0.6)},
	},
	{
		Name:   "vehicle",
		When:   func(d *sketch.Descriptor) bool { return between(d.AspectRatio, 1.5, 3) },
		Awards: []Award{flat(Car, 0.6), flat(Bus, 0.4)},
	},
	{
		Name: "large animal",
		When: func(d *sketch.Descriptor) bool {
			return between(d.Circularity, 0.4, 0.7) && d.Area > 1000
		},
		Awards: []Award{flat(Dog, 0.5), flat(Cat, 0.4)},
	},
	{
		Name: "small animal",
		When: func(d *sketch.Descriptor) bool {
			return between(d.Circularity, 0.4, 0.7) && d.Area <= 1000
		},
		Awards: []Award{flat(Bird, 0.5), flat(Mouse, 0.4)},
	},
	{
		Name: "fish",
		When: func(d *sketch.Descriptor) bool {
			return between(d.AspectRatio, 1.2, 2.5) && d.CurveSegments > 2
		},
		Awards: []Award{flat(Fish, 0.6)},
	},
	{
		Name:   "flower",
		When:   func(d *sketch.Descriptor) bool { return d.Circularity > 0.6 && d.Area < 1500 },
		Awards: []Award{flat(Flower, 0.6)},
	},
	{
		Name:   "cloud",
		When:   func(d *sketch.Descriptor) bool { return d.Circularity < 0.3 && d.AspectRatio > 1.5 },
		Awards: []Award{flat(Cloud, 0.7)},
	},
	{
		Name:   "rainbow",
		When:   wideAndFlat,
		Awards: []Award{flat(Rainbow, 0.7)},
	},
}
