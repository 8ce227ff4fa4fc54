package recognizer

import (
	"sort"

	"github.com/ironsheep/doodle-guess-mcp/internal/sketch"
)

// Score maps a descriptor to a ranked probability distribution over the
// profile's vocabulary.
//
// # Algorithm
//
//  1. An empty descriptor returns every label at 0 in vocabulary order.
//  2. Scores start at 0 in a dense slice indexed by vocabulary position.
//  3. Rules run in table order. A rule whose guard fails contributes
//     nothing; otherwise each award's weight is clamped to [0, 1] and
//     assigned or accumulated per the profile's Combine mode.
//  4. A positive total normalises the scores into probabilities. A zero
//     total leaves every label at 0.
//  5. Labels are stable-sorted by descending probability, so ties keep
//     vocabulary order.
func Score(d *sketch.Descriptor, p *Profile) Predictions {
	scores := make([]float64, len(p.vocab))
	if d.Empty {
		return Rank(p.vocab, scores)
	}

	for _, r := range p.rules {
		if !r.When(d) {
			continue
		}
		for _, a := range r.Awards {
			i := p.index[a.Label]
			w := clampUnit(a.Weight(d))
			switch p.combine {
			case Assign:
				scores[i] = w
			case Accumulate:
				scores[i] += w
				if scores[i] > 1 {
					scores[i] = 1
				}
			}
		}
	}

	return Rank(p.vocab, scores)
}

// Rank normalises raw scores (one per vocabulary entry, non-negative) into
// probabilities and stable-sorts them in descending order. A zero total
// leaves every probability at 0 and the list in vocabulary order.
func Rank(vocab []Label, scores []float64) Predictions {
	var total float64
	for _, s := range scores {
		total += s
	}
	out := make(Predictions, len(vocab))
	for i, l := range vocab {
		s := scores[i]
		if total > 0 {
			s /= total
		}
		out[i] = Prediction{Label: l.String(), Probability: s}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Probability > out[j].Probability
	})
	return out
}

// clampUnit limits w to [0, 1]. NaN maps to 0.
func clampUnit(w float64) float64 {
	if !(w > 0) {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}
