package recognizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/doodle-guess-mcp/internal/sketch"
)

// ErrUnknownProfile is returned by ProfileByName for unrecognised names.
var ErrUnknownProfile = errors.New("unknown profile")

// Combine selects how rule awards merge into a label's score.
type Combine int

const (
	// Assign sets the label score to the award; each label has one rule.
	Assign Combine = iota
	// Accumulate adds awards, capping each label's running score at 1.
	Accumulate
)

// Profile is one configuration of the scoring pipeline: a vocabulary, an
// ordered rule table, a combine mode and the extraction detail it needs.
// Profiles are immutable and safe to share between goroutines.
type Profile struct {
	name    string
	vocab   []Label
	index   [numLabels]int
	rules   []Rule
	combine Combine
	extract sketch.Options
}

// The two built-in profiles.
var (
	Basic    = newProfile("basic", basicVocabulary, basicRules, Assign, sketch.Options{})
	Enhanced = newProfile("enhanced", enhancedVocabulary, enhancedRules, Accumulate, sketch.Options{ShapeDetail: true})
)

// newProfile builds the dense label index. A rule that awards a label
// missing from the vocabulary, or a duplicated label, is a programming error
// and panics at startup.
func newProfile(name string, vocab []Label, rules []Rule, combine Combine, opts sketch.Options) *Profile {
	p := &Profile{
		name:    name,
		vocab:   vocab,
		rules:   rules,
		combine: combine,
		extract: opts,
	}
	for i := range p.index {
		p.index[i] = -1
	}
	for i, l := range vocab {
		if p.index[l] != -1 {
			panic(fmt.Sprintf("recognizer: profile %s lists %q twice", name, l))
		}
		p.index[l] = i
	}
	for _, r := range rules {
		for _, a := range r.Awards {
			if p.index[a.Label] == -1 {
				panic(fmt.Sprintf("recognizer: profile %s rule %q awards %q outside the vocabulary", name, r.Name, a.Label))
			}
		}
	}
	return p
}

// ProfileByName resolves a profile by name. "local" and "smart" are accepted
// as aliases for basic and enhanced.
func ProfileByName(name string) (*Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "basic", "local":
		return Basic, nil
	case "enhanced", "smart", "":
		return Enhanced, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
}

// Name returns the canonical profile name.
func (p *Profile) Name() string { return p.name }

// Vocabulary returns a copy of the profile's labels in vocabulary order.
func (p *Profile) Vocabulary() []Label {
	out := make([]Label, len(p.vocab))
	copy(out, p.vocab)
	return out
}

// Labels returns the vocabulary display names.
func (p *Profile) Labels() []string {
	out := make([]string, len(p.vocab))
	for i, l := range p.vocab {
		out[i] = l.String()
	}
	return out
}

// Contains reports whether l is in the vocabulary.
func (p *Profile) Contains(l Label) bool {
	return l >= 0 && l < numLabels && p.index[l] != -1
}

// ResolveLabel parses a display name and checks it belongs to the
// vocabulary, returning the canonical name.
func (p *Profile) ResolveLabel(name string) (string, error) {
	l, ok := ParseLabel(name)
	if !ok || !p.Contains(l) {
		return "", fmt.Errorf("label %q is not in the %s vocabulary", name, p.name)
	}
	return l.String(), nil
}

// Rules returns the names of the profile's rules in evaluation order.
func (p *Profile) Rules() []string {
	out := make([]string, len(p.rules))
	for i, r := range p.rules {
		out[i] = r.Name
	}
	return out
}

// Describe extracts the descriptor with the detail this profile needs.
func (p *Profile) Describe(b *sketch.Bitmap) sketch.Descriptor {
	return sketch.Extract(b, p.extract)
}

// Options returns the extraction options the profile scores against.
func (p *Profile) Options() sketch.Options { return p.extract }

// Classify extracts and scores a bitmap. It only fails if ctx is already done.
func (p *Profile) Classify(ctx context.Context, b *sketch.Bitmap) (Predictions, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d := p.Describe(b)
	return Score(&d, p), nil
}
