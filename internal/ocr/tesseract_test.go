package ocr

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/doodle-guess-mcp/internal/imaging"
	"github.com/ironsheep/doodle-guess-mcp/internal/recognizer"
	"github.com/ironsheep/doodle-guess-mcp/internal/sketch"
)

// drawText draws text on an image using basicfont
func drawText(img *image.RGBA, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// textBitmap renders text and scales it up so Tesseract has a chance.
func textBitmap(text string, scale int) *sketch.Bitmap {
	small := image.NewRGBA(image.Rect(0, 0, len(text)*7+40, 40))
	draw.Draw(small, small.Bounds(), image.White, image.Point{}, draw.Src)
	drawText(small, 20, 25, text, color.Black)
	return imaging.ToBitmap(imaging.Upscale(small, scale), 0)
}

// inkedBitmap returns a small bitmap with a stroke so Classify reaches the engine.
func inkedBitmap() *sketch.Bitmap {
	bm := sketch.Blank(20, 20)
	for y := 8; y <= 10; y++ {
		for x := 2; x < 18; x++ {
			bm.SetRGBA(x, y, 0, 0, 0, 255)
		}
	}
	return bm
}

// fakeReader returns a Reader whose engine yields the given words.
func fakeReader(vocab []recognizer.Label, opts Options, words ...Word) *Reader {
	r := NewReader(vocab, opts)
	r.read = func([]byte, Options) ([]Word, error) { return words, nil }
	return r
}

func TestReader_SingleWord(t *testing.T) {
	r := fakeReader(recognizer.Enhanced.Vocabulary(), Options{},
		Word{Text: "Cat!", Confidence: 0.9},
	)

	preds, err := r.Classify(context.Background(), inkedBitmap())
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if len(preds) != 54 {
		t.Fatalf("len: got %d, want 54", len(preds))
	}
	if preds[0].Label != "cat" || preds[0].Probability != 1 {
		t.Errorf("top: got %v, want cat (100%%)", preds[0])
	}
}

func TestReader_PhraseAndPlural(t *testing.T) {
	r := fakeReader(recognizer.Enhanced.Vocabulary(), Options{},
		Word{Text: "two", Confidence: 0.9},
		Word{Text: "coffee", Confidence: 0.8},
		Word{Text: "cup", Confidence: 0.6},
		Word{Text: "dogs", Confidence: 0.7},
	)

	preds, err := r.Classify(context.Background(), inkedBitmap())
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if preds[0].Label != "coffee cup" || preds[1].Label != "dog" {
		t.Fatalf("ranking: got %s", preds.Top(2))
	}
	if diff := preds[0].Probability - 0.5; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("coffee cup: got %f, want 0.5", preds[0].Probability)
	}
}

func TestReader_VocabularyFilter(t *testing.T) {
	// "bus" is a QuickDraw label but not in the basic vocabulary.
	r := fakeReader(recognizer.Basic.Vocabulary(), Options{},
		Word{Text: "bus", Confidence: 0.9},
	)

	_, err := r.Classify(context.Background(), inkedBitmap())
	if !errors.Is(err, ErrNoText) {
		t.Errorf("err: got %v, want ErrNoText", err)
	}
}

func TestReader_MinConfidence(t *testing.T) {
	r := fakeReader(recognizer.Enhanced.Vocabulary(), Options{MinConfidence: 0.5},
		Word{Text: "sun", Confidence: 0.3},
		Word{Text: "moon", Confidence: 0.6},
	)

	preds, err := r.Classify(context.Background(), inkedBitmap())
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if preds[0].Label != "moon" || preds[1].Probability != 0 {
		t.Errorf("got %s", preds.Top(2))
	}
}

func TestReader_BlankAndCancelled(t *testing.T) {
	r := fakeReader(recognizer.Enhanced.Vocabulary(), Options{}, Word{Text: "cat", Confidence: 1})

	if _, err := r.Classify(context.Background(), sketch.Blank(10, 10)); !errors.Is(err, ErrNoText) {
		t.Errorf("blank: got %v, want ErrNoText", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Classify(ctx, inkedBitmap()); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled: got %v", err)
	}
}

func TestReader_EngineError(t *testing.T) {
	r := NewReader(recognizer.Enhanced.Vocabulary(), Options{})
	r.read = func([]byte, Options) ([]Word, error) { return nil, errors.New("tesseract exploded") }

	_, err := r.Classify(context.Background(), inkedBitmap())
	if err == nil || !strings.Contains(err.Error(), "tesseract exploded") {
		t.Errorf("err: got %v", err)
	}
}

func TestReader_FallsBackToHeuristics(t *testing.T) {
	r := fakeReader(recognizer.Enhanced.Vocabulary(), Options{}, Word{Text: "hello", Confidence: 1})
	chain := recognizer.Fallback{r, recognizer.Enhanced}

	preds, err := chain.Classify(context.Background(), inkedBitmap())
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if preds[0].Label != "line" {
		t.Errorf("top: got %s, want line", preds[0].Label)
	}
}

func TestNewReader_DefaultLanguage(t *testing.T) {
	r := NewReader(nil, Options{})
	if r.opts.Language != DefaultLanguage {
		t.Errorf("Language: got %q", r.opts.Language)
	}
}

func TestNormalizeWord(t *testing.T) {
	tests := map[string]string{
		"Cat":    "cat",
		"'tree'": "tree",
		"42":     "",
		"Sun.":   "sun",
	}
	for in, want := range tests {
		if got := normalizeWord(in); got != want {
			t.Errorf("normalizeWord(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestReader_Tesseract(t *testing.T) {
	if !GetInfo().Available {
		t.Skip("Tesseract not available")
	}

	r := NewReader(recognizer.Enhanced.Vocabulary(), Options{})
	preds, err := r.Classify(context.Background(), textBitmap("HOUSE", 4))
	if err != nil {
		if errors.Is(err, ErrNoText) ||
			strings.Contains(err.Error(), "language") ||
			strings.Contains(err.Error(), "tessdata") {
			t.Skipf("Tesseract could not read the sample: %v", err)
		}
		t.Fatalf("Classify failed: %v", err)
	}
	if preds[0].Label != "house" {
		t.Errorf("top: got %s, want house", preds[0].Label)
	}
}
