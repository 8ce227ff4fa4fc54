package recognizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/doodle-guess-mcp/internal/sketch"
)

func TestMakeGuess_Empty(t *testing.T) {
	called := false
	c := ClassifierFunc(func(context.Context, *sketch.Bitmap) (Predictions, error) {
		called = true
		return nil, nil
	})

	g, err := MakeGuess(context.Background(), c, "enhanced", sketch.Blank(32, 32), GuessOptions{TopK: 5})
	require.NoError(t, err)
	assert.False(t, called)
	assert.True(t, g.Empty)
	assert.Equal(t, EmptySketchMessage, g.Summary)
	assert.Empty(t, g.Predictions)
}

func TestMakeGuess_TopK(t *testing.T) {
	g, err := MakeGuess(context.Background(), Enhanced, "enhanced", disk(), GuessOptions{TopK: 3})
	require.NoError(t, err)

	require.Len(t, g.Predictions, 3)
	assert.Equal(t, "circle", g.Predictions[0].Label)
	assert.True(t, strings.HasPrefix(g.Summary, "I see: circle (23.9%), heart (22.3%), "), g.Summary)
}

func TestMakeGuess_MinProbability(t *testing.T) {
	g, err := MakeGuess(context.Background(), Enhanced, "enhanced", tallRect(), GuessOptions{MinProbability: 0.3})
	require.NoError(t, err)

	require.Len(t, g.Predictions, 2)
	assert.Equal(t, "I see: tree (40.0%), dog (33.3%)", g.Summary)
}

func TestMakeGuess_NothingFires(t *testing.T) {
	dot := sketch.Blank(50, 50)
	dot.SetRGBA(10, 10, 0, 0, 0, 255)

	g, err := MakeGuess(context.Background(), Enhanced, "enhanced", dot, GuessOptions{TopK: 5})
	require.NoError(t, err)
	assert.False(t, g.Empty)
	assert.Len(t, g.Predictions, 5)
	assert.Equal(t, UnsureMessage, g.Summary)
}

func TestMakeGuess_Error(t *testing.T) {
	c := ClassifierFunc(func(context.Context, *sketch.Bitmap) (Predictions, error) {
		return nil, errors.New("boom")
	})
	_, err := MakeGuess(context.Background(), c, "x", disk(), GuessOptions{})
	assert.EqualError(t, err, "boom")
}

func TestMakeGuess_Target(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		topK        int
		wantRank    int
		wantGuessed bool
	}{
		{"leader", "circle", 3, 1, true},
		{"ranked but not shown", "heart", 1, 2, false},
		{"shown", "heart", 3, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := MakeGuess(context.Background(), Enhanced, "enhanced", disk(), GuessOptions{TopK: tt.topK, Target: tt.target})
			require.NoError(t, err)
			require.NotNil(t, g.Target)
			assert.Equal(t, tt.target, g.Target.Label)
			assert.Equal(t, tt.wantRank, g.Target.Rank)
			assert.Equal(t, tt.wantGuessed, g.Target.Guessed)
			assert.Greater(t, g.Target.Probability, 0.0)
		})
	}
}

func TestMakeGuess_TargetWithoutScore(t *testing.T) {
	// A disk is too round for the animal rules, so cat scores nothing.
	g, err := MakeGuess(context.Background(), Enhanced, "enhanced", disk(), GuessOptions{TopK: 0, Target: "cat"})
	require.NoError(t, err)
	require.NotNil(t, g.Target)
	assert.Zero(t, g.Target.Probability)
	assert.Positive(t, g.Target.Rank)
	assert.False(t, g.Target.Guessed)
}

func TestMakeGuess_TargetOnBlank(t *testing.T) {
	g, err := MakeGuess(context.Background(), Enhanced, "enhanced", sketch.Blank(8, 8), GuessOptions{Target: "cat"})
	require.NoError(t, err)
	assert.Nil(t, g.Target)
}
