// Package oracle implements the Feedback Oracle: the pure, duplicate-letter-
// aware Wordle coloring rule.
//
// Grounded on the teacher's internal/game/engine.go:scoreGuess (and its
// twin, internal/words/daily_exports.go:Score), generalized from lowercase
// strings to the fixed-size wordtype.Word so the hot scoring loop allocates
// nothing per comparison.
package oracle

import "github.com/robalobadob/wordle-suggester/internal/wordtype"

// Score computes the Feedback a correct Wordle judge would emit for guess
// against answer. Pure, deterministic, O(5) time, no heap allocation.
//
// Two-pass rule:
//  1. Mark exact-position matches Green and remove that letter from the
//     answer's remaining multiset.
//  2. For every non-Green position, mark Yellow if the guessed letter still
//     has remaining count in the answer's multiset (decrementing it),
//     otherwise Gray.
//
// feedback(a, g) is not assumed symmetric in (a, g); callers always pass the
// hypothetical answer first and the guess second.
func Score(answer, guess wordtype.Word) wordtype.Feedback {
	var remaining [26]int8
	for _, c := range answer {
		remaining[c-'A']++
	}

	var fb wordtype.Feedback
	for i := 0; i < len(guess); i++ {
		if guess[i] == answer[i] {
			fb[i] = wordtype.Green
			remaining[answer[i]-'A']--
		}
	}
	for i := 0; i < len(guess); i++ {
		if fb[i] == wordtype.Green {
			continue
		}
		idx := guess[i] - 'A'
		if remaining[idx] > 0 {
			fb[i] = wordtype.Yellow
			remaining[idx]--
		} else {
			fb[i] = wordtype.Gray
		}
	}
	return fb
}
