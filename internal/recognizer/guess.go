package recognizer

import (
	"context"

	"github.com/ironsheep/doodle-guess-mcp/internal/sketch"
)

// Messages shown instead of a ranked list.
const (
	EmptySketchMessage = "Draw something first!"
	UnsureMessage      = "I'm not sure what that is."
)

// Guess is a classification ready for display.
type Guess struct {
	Profile     string      `json:"profile"`
	Empty       bool        `json:"empty"`
	Predictions Predictions `json:"predictions"`
	Summary     string      `json:"summary"`

	// Target reports how the requested label fared. Nil unless
	// GuessOptions.Target was set and the sketch had ink.
	Target *TargetResult `json:"target,omitempty"`
}

// TargetResult is the outcome for the label the user was asked to draw.
type TargetResult struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
	// Rank is 1-based over the full ranked list; 0 when the classifier did
	// not report the label.
	Rank int `json:"rank"`
	// Guessed is true when the label is among the reported predictions
	// with a non-zero probability.
	Guessed bool `json:"guessed"`
}

// GuessOptions trims the ranked list before display.
type GuessOptions struct {
	// TopK keeps the leading predictions. 0 keeps all.
	TopK int
	// MinProbability drops predictions at or below this value.
	MinProbability float64
	// Target is the display name of the label the user was asked to draw.
	Target string
}

// MakeGuess classifies a bitmap and formats the result. A bitmap without
// ink is not classified at all.
func MakeGuess(ctx context.Context, c Classifier, profile string, b *sketch.Bitmap, opts GuessOptions) (*Guess, error) {
	g := &Guess{Profile: profile, Predictions: Predictions{}}
	if !b.HasInk() {
		g.Empty = true
		g.Summary = EmptySketchMessage
		return g, nil
	}

	preds, err := c.Classify(ctx, b)
	if err != nil {
		return nil, err
	}
	ranked := preds
	if opts.MinProbability > 0 {
		preds = preds.Above(opts.MinProbability)
	}
	g.Predictions = preds.Top(opts.TopK)
	g.Summary = Summarize(g.Predictions)

	if opts.Target != "" {
		p, rank := ranked.Find(opts.Target)
		_, shown := g.Predictions.Find(opts.Target)
		g.Target = &TargetResult{
			Label:       opts.Target,
			Probability: p.Probability,
			Rank:        rank + 1,
			Guessed:     shown >= 0 && p.Probability > 0,
		}
	}
	return g, nil
}

// Summarize renders "I see: a (50.0%), b (25.0%)", or UnsureMessage when
// no prediction carries any probability.
func Summarize(ps Predictions) string {
	if ps.IsZero() {
		return UnsureMessage
	}
	return "I see: " + ps.String()
}
