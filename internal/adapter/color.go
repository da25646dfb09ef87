package adapter

import (
	"fmt"

	"github.com/robalobadob/wordle-suggester/internal/wordtype"
)

// ColorName renders a Color the way every wire format in this repo spells
// it (spec §6.3: `color ∈ {"gray","yellow","green"}`).
func ColorName(c wordtype.Color) string {
	switch c {
	case wordtype.Green:
		return "green"
	case wordtype.Yellow:
		return "yellow"
	default:
		return "gray"
	}
}

// ParseColor is ColorName's inverse.
func ParseColor(s string) (wordtype.Color, error) {
	switch s {
	case "green":
		return wordtype.Green, nil
	case "yellow":
		return wordtype.Yellow, nil
	case "gray", "grey":
		return wordtype.Gray, nil
	default:
		return 0, fmt.Errorf("adapter: unknown color %q", s)
	}
}

// DecodeHistory converts wire guess entries into a wordtype.History,
// validating each word and its five colors.
func DecodeHistory(entries []WireGuessEntry) (wordtype.History, error) {
	h := make(wordtype.History, 0, len(entries))
	for _, e := range entries {
		word, err := wordtype.NewWord(e.Word)
		if err != nil {
			return nil, err
		}
		if len(e.Feedback) != 5 {
			return nil, wordtype.ErrInvalidWord
		}
		var fb wordtype.Feedback
		for i, cs := range e.Feedback {
			c, err := ParseColor(cs)
			if err != nil {
				return nil, err
			}
			fb[i] = c
		}
		h = append(h, wordtype.GuessEntry{Guess: word, Feedback: fb})
	}
	return h, nil
}

// EncodeSuggestions converts a ranked result into its wire form, applying
// the +Inf sentinel encoding.
func EncodeSuggestions(ranked []wordtype.ScoredGuess) []WireSuggestion {
	out := make([]WireSuggestion, len(ranked))
	for i, sg := range ranked {
		out[i] = WireSuggestion{Word: sg.Word.String(), Score: encodeScore(sg.Score)}
	}
	return out
}
