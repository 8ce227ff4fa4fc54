package recognizer

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/doodle-guess-mcp/internal/sketch"
)

// fillRect paints an inclusive rectangle of black ink.
func fillRect(b *sketch.Bitmap, x1, y1, x2, y2 int) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			b.SetRGBA(x, y, 0, 0, 0, 255)
		}
	}
}

// fillDisk paints a filled disk of black ink. With inner > 0 it paints a ring.
func fillDisk(b *sketch.Bitmap, cx, cy, inner, outer int) {
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			dx, dy := x-cx, y-cy
			d := dx*dx + dy*dy
			if d <= outer*outer && d >= inner*inner {
				b.SetRGBA(x, y, 0, 0, 0, 255)
			}
		}
	}
}

func disk() *sketch.Bitmap {
	b := sketch.Blank(200, 200)
	fillDisk(b, 100, 100, 0, 40)
	return b
}

func horizontalStroke() *sketch.Bitmap {
	b := sketch.Blank(200, 100)
	fillRect(b, 10, 45, 189, 52)
	return b
}

func tallRect() *sketch.Bitmap {
	b := sketch.Blank(200, 200)
	fillRect(b, 72, 20, 127, 180)
	return b
}

func classify(t *testing.T, p *Profile, b *sketch.Bitmap) Predictions {
	t.Helper()
	preds, err := p.Classify(context.Background(), b)
	require.NoError(t, err)
	return preds
}

func assertDistribution(t *testing.T, p *Profile, preds Predictions) {
	t.Helper()
	require.Len(t, preds, len(p.Vocabulary()))
	if !preds.IsZero() {
		assert.InDelta(t, 1.0, preds.Sum(), 1e-9)
	}
	seen := make(map[string]bool, len(preds))
	for i, pr := range preds {
		assert.GreaterOrEqual(t, pr.Probability, 0.0)
		assert.LessOrEqual(t, pr.Probability, 1.0)
		assert.False(t, seen[pr.Label], "duplicate label %q", pr.Label)
		seen[pr.Label] = true
		if i > 0 {
			assert.GreaterOrEqual(t, preds[i-1].Probability, pr.Probability, "not sorted at %d", i)
		}
	}
}

func TestScore_EmptyReturnsVocabularyOrder(t *testing.T) {
	for _, p := range []*Profile{Basic, Enhanced} {
		t.Run(p.Name(), func(t *testing.T) {
			preds := classify(t, p, sketch.Blank(64, 64))
			require.Len(t, preds, len(p.Vocabulary()))
			assert.True(t, preds.IsZero())
			for i, l := range p.Labels() {
				assert.Equal(t, l, preds[i].Label)
			}
		})
	}
}

func TestScore_Distribution(t *testing.T) {
	bitmaps := map[string]*sketch.Bitmap{
		"disk":   disk(),
		"stroke": horizontalStroke(),
		"tall":   tallRect(),
	}
	for name, b := range bitmaps {
		for _, p := range []*Profile{Basic, Enhanced} {
			t.Run(name+"/"+p.Name(), func(t *testing.T) {
				assertDistribution(t, p, classify(t, p, b))
			})
		}
	}
}

func TestBasic_Disk(t *testing.T) {
	preds := classify(t, Basic, disk())

	// circle and square both saturate at 1; vocabulary order breaks the tie.
	assert.Equal(t, "circle", preds[0].Label)
	assert.Equal(t, "square", preds[1].Label)
	assert.Equal(t, preds[0].Probability, preds[1].Probability)
	assert.InDelta(t, 0.1104, preds[0].Probability, 1e-4)
	assert.Equal(t, "smiley", preds[2].Label)
}

func TestBasic_HorizontalStrokeRanksLine(t *testing.T) {
	preds := classify(t, Basic, horizontalStroke())

	_, rank := preds.Find("line")
	require.NotEqual(t, -1, rank)
	assert.Less(t, rank, 3)
	assert.Equal(t, "cloud", preds[0].Label)
}

func TestEnhanced_Disk(t *testing.T) {
	preds := classify(t, Enhanced, disk())

	want := []string{"circle", "heart", "sun", "moon", "smiley face", "flower"}
	for i, l := range want {
		assert.Equal(t, l, preds[i].Label, "rank %d", i)
	}
	assert.InDelta(t, 0.2392, preds[0].Probability, 1e-4)
}

func TestEnhanced_HorizontalStroke(t *testing.T) {
	preds := classify(t, Enhanced, horizontalStroke())

	assert.Equal(t, "line", preds[0].Label)
	assert.InDelta(t, 0.8/2.6, preds[0].Probability, 1e-9)
	// cloud and rainbow tie; cloud comes first in the vocabulary.
	assert.Equal(t, "cloud", preds[1].Label)
	assert.Equal(t, "rainbow", preds[2].Label)
	assert.Equal(t, "pencil", preds[3].Label)
	assert.Zero(t, preds[4].Probability)
}

func TestEnhanced_TallRectangleIsTree(t *testing.T) {
	preds := classify(t, Enhanced, tallRect())

	assert.Equal(t, "tree", preds[0].Label)
	assert.InDelta(t, 0.4, preds[0].Probability, 1e-9)
	assert.Equal(t, "dog", preds[1].Label)
	assert.Equal(t, "cat", preds[2].Label)
	assert.Zero(t, preds[3].Probability)
}

func TestEnhanced_NoRuleFires(t *testing.T) {
	dot := sketch.Blank(50, 50)
	dot.SetRGBA(10, 10, 0, 0, 0, 255)

	ring := sketch.Blank(200, 200)
	fillDisk(ring, 100, 100, 35, 40)

	for name, b := range map[string]*sketch.Bitmap{"dot": dot, "ring": ring} {
		t.Run(name, func(t *testing.T) {
			preds := classify(t, Enhanced, b)
			assert.True(t, preds.IsZero())
			for i, l := range Enhanced.Labels() {
				assert.Equal(t, l, preds[i].Label)
			}
		})
	}
}

func TestScore_Idempotent(t *testing.T) {
	b := tallRect()
	for _, p := range []*Profile{Basic, Enhanced} {
		first := classify(t, p, b)
		second := classify(t, p, b)
		assert.Equal(t, first, second)
	}
}

func TestScore_ClampsAwards(t *testing.T) {
	p := newProfile("test", []Label{Circle, Square, Line}, []Rule{
		{Name: "negative", When: always, Awards: []Award{flat(Circle, -3)}},
		{Name: "nan", When: always, Awards: []Award{flat(Square, math.NaN())}},
		{Name: "huge", When: always, Awards: []Award{flat(Line, 7)}},
	}, Assign, sketch.Options{})

	d := sketch.Descriptor{Width: 1, Height: 1}
	preds := Score(&d, p)

	require.Len(t, preds, 3)
	assert.Equal(t, "line", preds[0].Label)
	assert.Equal(t, 1.0, preds[0].Probability)
	assert.Zero(t, preds[1].Probability)
	assert.Zero(t, preds[2].Probability)
}

func TestScore_AccumulateCapsAtOne(t *testing.T) {
	p := newProfile("test", []Label{Circle, Square}, []Rule{
		{Name: "a", When: always, Awards: []Award{flat(Circle, 0.7), flat(Square, 0.5)}},
		{Name: "b", When: always, Awards: []Award{flat(Circle, 0.7)}},
	}, Accumulate, sketch.Options{})

	d := sketch.Descriptor{Width: 1, Height: 1}
	preds := Score(&d, p)

	assert.Equal(t, "circle", preds[0].Label)
	assert.InDelta(t, 1/1.5, preds[0].Probability, 1e-9)
	assert.InDelta(t, 0.5/1.5, preds[1].Probability, 1e-9)
}

func TestScore_AssignKeepsLastAward(t *testing.T) {
	p := newProfile("test", []Label{Circle, Square}, []Rule{
		{Name: "a", When: always, Awards: []Award{flat(Circle, 0.9), flat(Square, 0.3)}},
		{Name: "b", When: always, Awards: []Award{flat(Circle, 0.3)}},
	}, Assign, sketch.Options{})

	d := sketch.Descriptor{Width: 1, Height: 1}
	preds := Score(&d, p)

	assert.InDelta(t, 0.5, preds[0].Probability, 1e-9)
	assert.InDelta(t, 0.5, preds[1].Probability, 1e-9)
	assert.Equal(t, "circle", preds[0].Label)
}

func TestClassify_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Enhanced.Classify(ctx, disk())
	assert.ErrorIs(t, err, context.Canceled)
}
