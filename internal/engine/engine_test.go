package engine

import (
	"context"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-suggester/internal/engineconfig"
	"github.com/robalobadob/wordle-suggester/internal/engineerr"
	"github.com/robalobadob/wordle-suggester/internal/wordtype"
)

func mustWord(t *testing.T, s string) wordtype.Word {
	t.Helper()
	w, err := wordtype.NewWord(s)
	require.NoError(t, err)
	return w
}

func TestNew_RejectsInvalidWord(t *testing.T) {
	_, err := New([]string{"CRANE", "NOPE5"}, []string{"CRANE"}, engineconfig.Default(), zerolog.Nop())
	require.ErrorIs(t, err, engineerr.ErrInvalidWord)

	_, err = New([]string{"CRANE"}, []string{"TOOLONG"}, engineconfig.Default(), zerolog.Nop())
	require.ErrorIs(t, err, engineerr.ErrInvalidWord)
}

func TestCompute_ForcedWinSentinel(t *testing.T) {
	eng, err := New([]string{"CRANE"}, []string{"CRANE", "SLATE"}, engineconfig.Default(), zerolog.Nop())
	require.NoError(t, err)

	res, _, err := eng.Compute(context.Background(), "rid-1", nil, wordtype.Policy{})
	require.NoError(t, err)
	require.Len(t, res.Ranked, 1)
	assert.Equal(t, "CRANE", res.Ranked[0].Word.String())
	assert.True(t, math.IsInf(res.Ranked[0].Score, 1))
	assert.Equal(t, 1, res.RemainingAnswers)
	assert.Equal(t, "rid-1", res.RequestID)
}

func TestCompute_EmptySurvivingAnswers(t *testing.T) {
	eng, err := New([]string{"CRANE"}, []string{"CRANE", "SLATE"}, engineconfig.Default(), zerolog.Nop())
	require.NoError(t, err)

	h := wordtype.History{{
		Guess:    mustWord(t, "SLATE"),
		Feedback: wordtype.Feedback{wordtype.Green, wordtype.Green, wordtype.Green, wordtype.Green, wordtype.Green},
	}}
	res, dres, err := eng.Compute(context.Background(), "rid-2", h, wordtype.Policy{})
	require.NoError(t, err)
	assert.Empty(t, res.Ranked)
	assert.Equal(t, 0, res.RemainingAnswers)
	assert.Zero(t, dres)
}

func TestCompute_NoCandidateGuessesUnderStrictPrefix(t *testing.T) {
	eng, err := New([]string{"CRANE", "TRACE"}, []string{"CRANE", "TRACE"}, engineconfig.Default(), zerolog.Nop())
	require.NoError(t, err)

	res, _, err := eng.Compute(context.Background(), "rid-3", nil, wordtype.Policy{TypedPrefix: "ZZ"})
	require.NoError(t, err)
	assert.Empty(t, res.Ranked)
	assert.Equal(t, 2, res.RemainingAnswers)
}

func TestCompute_RanksMultipleCandidates(t *testing.T) {
	eng, err := New(
		[]string{"CRANE", "SLATE", "TRACE", "STOIC"},
		[]string{"CRANE", "SLATE", "TRACE", "STOIC"},
		engineconfig.Default(), zerolog.Nop(),
	)
	require.NoError(t, err)

	res, dres, err := eng.Compute(context.Background(), "rid-4", nil, wordtype.Policy{TopK: 2})
	require.NoError(t, err)
	require.False(t, dres.Cancelled)
	assert.LessOrEqual(t, len(res.Ranked), 2)
	assert.Equal(t, 4, res.RemainingAnswers)
	for _, sg := range res.Ranked {
		assert.False(t, math.IsInf(sg.Score, 1), "no forced win among 4 survivors")
	}
}

func TestCompute_CancelledContext(t *testing.T) {
	eng, err := New(
		[]string{"CRANE", "SLATE", "TRACE", "STOIC"},
		[]string{"CRANE", "SLATE", "TRACE", "STOIC"},
		engineconfig.Default(), zerolog.Nop(),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = eng.Compute(ctx, "rid-5", nil, wordtype.Policy{})
	require.ErrorIs(t, err, engineerr.ErrCancelled)
}

func TestAnswersAndGuesses_ExposeNormalizedUniverses(t *testing.T) {
	eng, err := New([]string{"crane"}, []string{"crane", "slate"}, engineconfig.Default(), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, []wordtype.Word{mustWord(t, "CRANE")}, eng.Answers())
	assert.Len(t, eng.Guesses(), 2)
}
