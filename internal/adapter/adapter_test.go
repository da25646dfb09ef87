package adapter

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/robalobadob/wordle-suggester/internal/engineconfig"
	"github.com/robalobadob/wordle-suggester/internal/wordtype"
)

func TestColor_RoundTrip(t *testing.T) {
	for _, c := range []wordtype.Color{wordtype.Gray, wordtype.Yellow, wordtype.Green} {
		name := ColorName(c)
		parsed, err := ParseColor(name)
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
}

func TestParseColor_Unknown(t *testing.T) {
	_, err := ParseColor("chartreuse")
	assert.Error(t, err)
}

func TestDecodeHistory_RejectsBadWord(t *testing.T) {
	_, err := DecodeHistory([]WireGuessEntry{{Word: "AB", Feedback: []string{"gray", "gray", "gray", "gray", "gray"}}})
	assert.ErrorIs(t, err, wordtype.ErrInvalidWord)
}

func TestDecodeHistory_RejectsShortFeedback(t *testing.T) {
	_, err := DecodeHistory([]WireGuessEntry{{Word: "CRANE", Feedback: []string{"green"}}})
	assert.Error(t, err)
}

func TestEncodeSuggestions_SentinelScore(t *testing.T) {
	w, err := wordtype.NewWord("CRANE")
	require.NoError(t, err)
	out := EncodeSuggestions([]wordtype.ScoredGuess{{Word: w, Score: math.Inf(1)}})
	require.Len(t, out, 1)
	assert.Equal(t, SentinelScore, out[0].Score)
	assert.GreaterOrEqual(t, out[0].Score, 1.7976931348623157e308)
}

func TestSupervisor_InitThenSolveRoundTrip(t *testing.T) {
	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	require.NoError(t, enc.Encode(InitMsg{
		Type:    MsgInit,
		Answers: []string{"CRANE", "SLATE", "TRACE"},
		Guesses: []string{"CRANE", "SLATE", "TRACE", "STOIC"},
	}))
	require.NoError(t, enc.Encode(SolveMsg{Type: MsgSolve, RequestID: "r1"}))

	var out bytes.Buffer
	sv := NewSupervisor(engineconfig.Default(), zerolog.Nop())
	err := sv.Run(context.Background(), &in, &out)
	require.NoError(t, err)

	dec := msgpack.NewDecoder(&out)

	var initComplete map[string]interface{}
	require.NoError(t, dec.Decode(&initComplete))
	assert.Equal(t, string(MsgInitComplete), initComplete["type"])

	var solveComplete map[string]interface{}
	require.NoError(t, dec.Decode(&solveComplete))
	assert.Equal(t, string(MsgSolveComplete), solveComplete["type"])
	assert.Equal(t, "r1", solveComplete["requestId"])
	assert.NotEmpty(t, solveComplete["suggestions"])
}

func TestSupervisor_SolveBeforeInitErrors(t *testing.T) {
	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	require.NoError(t, enc.Encode(SolveMsg{Type: MsgSolve, RequestID: "r1"}))

	var out bytes.Buffer
	sv := NewSupervisor(engineconfig.Default(), zerolog.Nop())
	err := sv.Run(context.Background(), &in, &out)
	require.NoError(t, err)

	dec := msgpack.NewDecoder(&out)
	var errMsg map[string]interface{}
	require.NoError(t, dec.Decode(&errMsg))
	assert.Equal(t, string(MsgError), errMsg["type"])
	assert.Equal(t, "r1", errMsg["requestId"])
}
