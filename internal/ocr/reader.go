package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/ironsheep/doodle-guess-mcp/internal/imaging"
	"github.com/ironsheep/doodle-guess-mcp/internal/recognizer"
	"github.com/ironsheep/doodle-guess-mcp/internal/sketch"
)

// ErrNoText is returned when no recognised word names a vocabulary label.
var ErrNoText = errors.New("no vocabulary words found in sketch")

// DefaultLanguage is the Tesseract language used when none is configured.
const DefaultLanguage = "eng"

// Options configures a Reader.
type Options struct {
	// Language is the Tesseract language code. Defaults to "eng".
	Language string

	// TessdataPrefix overrides where Tesseract looks for language data.
	TessdataPrefix string

	// MinConfidence drops words Tesseract is less sure of (0.0 to 1.0).
	MinConfidence float64
}

// Reader classifies sketches by reading handwritten labels. A child who
// writes "cat" next to a drawing gets the cat back, whatever the shape.
//
// Reader implements recognizer.Classifier and is meant to sit in front of a
// heuristic profile inside a recognizer.Fallback.
type Reader struct {
	vocab []recognizer.Label
	index map[recognizer.Label]int
	opts  Options
	read  func(pngData []byte, opts Options) ([]Word, error)
}

// NewReader creates a Reader that matches words against vocab.
func NewReader(vocab []recognizer.Label, opts Options) *Reader {
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	index := make(map[recognizer.Label]int, len(vocab))
	for i, l := range vocab {
		index[l] = i
	}
	return &Reader{
		vocab: vocab,
		index: index,
		opts:  opts,
		read:  tesseractWords,
	}
}

// Classify implements recognizer.Classifier.
//
// The bitmap is encoded as PNG and handed to Tesseract. Matching words and
// two-word phrases add their confidence to their label. The result covers
// the whole vocabulary. A blank bitmap, or one with no matching words,
// returns ErrNoText.
func (r *Reader) Classify(ctx context.Context, bm *sketch.Bitmap) (recognizer.Predictions, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !bm.HasInk() {
		return nil, ErrNoText
	}

	var buf bytes.Buffer
	if err := imaging.EncodePNG(&buf, imaging.ToImage(bm)); err != nil {
		return nil, err
	}

	words, err := r.read(buf.Bytes(), r.opts)
	if err != nil {
		return nil, fmt.Errorf("handwriting: %w", err)
	}

	scores, matched := r.match(words)
	if matched == 0 {
		return nil, ErrNoText
	}
	return recognizer.Rank(r.vocab, scores), nil
}

// match scores words against the vocabulary. Two-word phrases ("coffee
// cup") are tried before single words, and a trailing plural "s" is
// forgiven.
func (r *Reader) match(words []Word) ([]float64, int) {
	kept := make([]Word, 0, len(words))
	for _, w := range words {
		if w.Confidence < r.opts.MinConfidence {
			continue
		}
		w.Text = normalizeWord(w.Text)
		if w.Text != "" {
			kept = append(kept, w)
		}
	}

	scores := make([]float64, len(r.vocab))
	matched := 0
	for i := 0; i < len(kept); i++ {
		if i+1 < len(kept) {
			phrase := kept[i].Text + " " + kept[i+1].Text
			if idx, ok := r.lookup(phrase); ok {
				scores[idx] += (kept[i].Confidence + kept[i+1].Confidence) / 2
				matched++
				i++
				continue
			}
		}
		if idx, ok := r.lookup(kept[i].Text); ok {
			scores[idx] += kept[i].Confidence
			matched++
		}
	}
	return scores, matched
}

func (r *Reader) lookup(text string) (int, bool) {
	candidates := []string{text}
	if s, ok := strings.CutSuffix(text, "s"); ok && len(s) > 1 {
		candidates = append(candidates, s)
	}
	for _, c := range candidates {
		l, ok := recognizer.ParseLabel(c)
		if !ok {
			continue
		}
		if idx, ok := r.index[l]; ok {
			return idx, true
		}
	}
	return 0, false
}

// normalizeWord lower-cases a word and strips everything but letters.
func normalizeWord(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}
