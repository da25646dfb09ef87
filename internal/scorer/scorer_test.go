package scorer

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/wordle-suggester/internal/wordtype"
)

func mustWord(t *testing.T, s string) wordtype.Word {
	t.Helper()
	w, err := wordtype.NewWord(s)
	if err != nil {
		t.Fatalf("invalid word %q: %v", s, err)
	}
	return w
}

func mustWords(t *testing.T, ss ...string) []wordtype.Word {
	out := make([]wordtype.Word, len(ss))
	for i, s := range ss {
		out[i] = mustWord(t, s)
	}
	return out
}

// S5: trivial two-answer scorer scenario from spec §8.
func TestTop_TrivialTwoAnswers(t *testing.T) {
	answers := mustWords(t, "AAAAA", "AAAAB")
	guesses := mustWords(t, "AAAAA", "AAAAB", "ZZZZZ")

	ranked, err := Top(context.Background(), guesses, answers, 5)
	assert.NoError(t, err)
	assert.Equal(t, mustWord(t, "AAAAA"), ranked[0].Word)
	assert.InDelta(t, 1.0, ranked[0].Score, 1e-9)
}

// P5: scores fall in [0, log2(N)].
func TestGain_RangeBound(t *testing.T) {
	answers := mustWords(t, "CRANE", "SLATE", "TRACE", "STOIC", "SMOKY")
	bound := math.Log2(float64(len(answers)))
	for _, g := range mustWords(t, "CRANE", "ZZZZZ", "STARE") {
		gain := Gain(g, answers)
		assert.GreaterOrEqual(t, gain, 0.0)
		assert.LessOrEqual(t, gain, bound+1e-9)
	}
}

// P6: determinism across repeated runs, including tie-break order.
func TestTop_Deterministic(t *testing.T) {
	answers := mustWords(t, "CRANE", "SLATE", "TRACE", "STOIC")
	guesses := mustWords(t, "CRANE", "SLATE", "TRACE", "STOIC", "SMOKY", "ZZZZZ")

	first, err := Top(context.Background(), guesses, answers, 3)
	assert.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Top(context.Background(), guesses, answers, 3)
		assert.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

// P7: top-K size respects min(topK, |candidateGuesses|).
func TestTop_SizeRespectsTopK(t *testing.T) {
	answers := mustWords(t, "CRANE", "SLATE")
	guesses := mustWords(t, "CRANE", "SLATE", "TRACE")

	ranked, err := Top(context.Background(), guesses, answers, 2)
	assert.NoError(t, err)
	assert.Len(t, ranked, 2)

	ranked, err = Top(context.Background(), guesses, answers, 10)
	assert.NoError(t, err)
	assert.Len(t, ranked, len(guesses))
}

func TestTop_CancellationStopsEarly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	answers := mustWords(t, "CRANE", "SLATE")
	guesses := mustWords(t, "CRANE", "SLATE", "TRACE")

	_, err := Top(ctx, guesses, answers, 5)
	assert.ErrorIs(t, err, context.Canceled)
}
