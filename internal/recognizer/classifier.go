package recognizer

import (
	"context"
	"errors"

	"github.com/ironsheep/doodle-guess-mcp/internal/sketch"
)

// Classifier turns a bitmap into a ranked prediction list. The heuristic
// profiles implement it, as can any external recogniser.
type Classifier interface {
	Classify(ctx context.Context, b *sketch.Bitmap) (Predictions, error)
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(ctx context.Context, b *sketch.Bitmap) (Predictions, error)

// Classify calls f.
func (f ClassifierFunc) Classify(ctx context.Context, b *sketch.Bitmap) (Predictions, error) {
	return f(ctx, b)
}

// Fallback tries each classifier in order. It moves on when a classifier
// fails or returns an all-zero list, and returns the last answer it got when
// every classifier is exhausted. If all of them fail the errors are joined.
type Fallback []Classifier

// Classify implements Classifier.
func (f Fallback) Classify(ctx context.Context, b *sketch.Bitmap) (Predictions, error) {
	var (
		errs []error
		last Predictions
	)
	for _, c := range f {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		preds, err := c.Classify(ctx, b)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !preds.IsZero() {
			return preds, nil
		}
		last = preds
	}
	if last != nil {
		return last, nil
	}
	if len(errs) == 0 {
		return nil, errors.New("no classifiers configured")
	}
	return nil, errors.Join(errs...)
}
