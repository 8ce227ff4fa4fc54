package recognizer

import (
	"fmt"
	"strings"
)

// DefaultTopK is how many predictions callers usually show.
const DefaultTopK = 5

// Prediction is one candidate label with its probability in [0, 1].
type Prediction struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

// String renders the prediction as "label (xx.x%)".
func (p Prediction) String() string {
	return fmt.Sprintf("%s (%.1f%%)", p.Label, p.Probability*100)
}

// Predictions is a ranked list, highest probability first.
type Predictions []Prediction

// Top returns at most k leading predictions. k <= 0 returns the whole list.
func (ps Predictions) Top(k int) Predictions {
	if k <= 0 || k >= len(ps) {
		return ps
	}
	return ps[:k]
}

// Above keeps predictions whose probability is strictly greater than min.
func (ps Predictions) Above(min float64) Predictions {
	out := make(Predictions, 0, len(ps))
	for _, p := range ps {
		if p.Probability > min {
			out = append(out, p)
		}
	}
	return out
}

// Sum returns the total probability mass.
func (ps Predictions) Sum() float64 {
	var s float64
	for _, p := range ps {
		s += p.Probability
	}
	return s
}

// IsZero reports whether no label received any probability.
func (ps Predictions) IsZero() bool {
	for _, p := range ps {
		if p.Probability != 0 {
			return false
		}
	}
	return true
}

// Find returns the prediction for label and its rank, or -1 when absent.
func (ps Predictions) Find(label string) (Prediction, int) {
	for i, p := range ps {
		if p.Label == label {
			return p, i
		}
	}
	return Prediction{}, -1
}

// String joins the predictions as "a (50.0%), b (25.0%)".
func (ps Predictions) String() string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}
