// Package recognizer turns sketch descriptors into ranked label guesses.
//
// Recognition is heuristic: no trained model is involved. A Profile pairs a
// label vocabulary with an ordered table of guarded rules. Each rule inspects
// a sketch.Descriptor and, when its guard holds, awards weights to one or
// more labels. Scores are normalised into a probability distribution and
// ranked.
//
// # Profiles
//
// Two profiles ship with the package:
//
//   - Basic: nineteen everyday labels, one formula per label, no
//     corner or curve analysis. Every formula always fires.
//   - Enhanced: the fifty QuickDraw labels plus the primitive shapes
//     circle, square, triangle and line. Sixteen rules accumulate evidence
//     and may feed the same label more than once; a label's running score
//     never exceeds 1.
//
// # Scoring Invariants
//
// Every award is clamped to [0, 1] before it is combined, so a negative or
// NaN weight contributes nothing. The returned Predictions always cover the
// full vocabulary, sum to 1 (or are all 0 when no rule fired), and are
// sorted by descending probability with ties in vocabulary order.
//
// # Thread Safety
//
// Profiles and rule tables are immutable after package initialisation. All
// functions are safe for concurrent use.
package recognizer
