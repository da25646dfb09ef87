// Package filter implements the Constraint Filter: whether a candidate word
// is still consistent with an observed History of (guess, feedback) pairs.
//
// The spec resolves an Open Question in favor of the oracle-equality
// formulation over an alternate min/max letter-count formulation; only the
// former is implemented here (see SPEC_FULL.md §11 and DESIGN.md).
package filter

import (
	"github.com/robalobadob/wordle-suggester/internal/oracle"
	"github.com/robalobadob/wordle-suggester/internal/wordtype"
)

// Consistent reports whether w could be the secret answer given every
// GuessEntry recorded in h: for each entry (g, f), w is consistent iff
// oracle.Score(w, g) == f.
func Consistent(w wordtype.Word, h wordtype.History) bool {
	for _, entry := range h {
		if oracle.Score(w, entry.Guess) != entry.Feedback {
			return false
		}
	}
	return true
}
