package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/wordle-suggester/internal/wordtype"
)

func words(t *testing.T, ss ...string) []wordtype.Word {
	t.Helper()
	out := make([]wordtype.Word, len(ss))
	for i, s := range ss {
		w, err := wordtype.NewWord(s)
		if err != nil {
			t.Fatalf("invalid word %q: %v", s, err)
		}
		out[i] = w
	}
	return out
}

func TestDerive_EmptyHistoryNoPolicy(t *testing.T) {
	answers := words(t, "CRANE", "SLATE", "TRACE")
	guesses := words(t, "CRANE", "SLATE", "TRACE", "ZZZZZ")

	sa, cg := Derive(answers, guesses, nil, wordtype.Policy{}, nil)
	assert.Len(t, sa, 3)
	assert.Len(t, cg, 4)
}

func TestDerive_TypedPrefixFiltersGuessesOnly(t *testing.T) {
	answers := words(t, "SLATE", "CRANE")
	guesses := words(t, "SLATE", "CRANE", "STOIC", "SMOKY")

	sa, cg := Derive(answers, guesses, nil, wordtype.Policy{TypedPrefix: "S"}, nil)
	assert.Len(t, sa, 2, "typed prefix must not affect surviving answers")
	assert.ElementsMatch(t, words(t, "SLATE", "STOIC", "SMOKY"), cg)
}

func TestDerive_TypedPrefixViaTrieMatchesLinear(t *testing.T) {
	guesses := words(t, "SLATE", "CRANE", "STOIC", "SMOKY", "STARE")
	idx := NewPrefixIndex(guesses)

	_, viaTrie := Derive(nil, guesses, nil, wordtype.Policy{TypedPrefix: "st"}, idx)
	_, viaLinear := Derive(nil, guesses, nil, wordtype.Policy{TypedPrefix: "st"}, nil)
	assert.ElementsMatch(t, viaLinear, viaTrie)
}

func TestDerive_StrictGuessesFiltersByHistory(t *testing.T) {
	guesses := words(t, "SLATE", "CRANE", "STOIC")
	h := wordtype.History{{Guess: words(t, "SLATE")[0], Feedback: wordtype.Feedback{wordtype.Green, wordtype.Gray, wordtype.Gray, wordtype.Gray, wordtype.Gray}}}

	_, strict := Derive(nil, guesses, h, wordtype.Policy{StrictGuesses: true}, nil)
	_, loose := Derive(nil, guesses, h, wordtype.Policy{StrictGuesses: false}, nil)
	assert.LessOrEqual(t, len(strict), len(loose))
}
