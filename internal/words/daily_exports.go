// Provides word lists and scoring utilities for the Daily Challenge mode.
// Wraps assets.AnswersList/AllowedList and exposes:
//   - Answers(): canonical list of valid answers
//   - Allowed(): set of all valid guesses (answers ⊆ allowed)
//   - Score():   Wordle-style evaluation (miss=0, present=1, hit=2)
//
// Notes:
//   • Data is lazily initialized once via sync.Once, reading from embedded files.
//   • Answers and Allowed are lowercase for consistency.
//   • Score implements the two-pass Wordle algorithm.

package words

import (
	"sync"

	"github.com/robalobadob/wordle-suggester/assets"
	"github.com/robalobadob/wordle-suggester/internal/oracle"
	"github.com/robalobadob/wordle-suggester/internal/wordtype"
)

var (
	dailyOnce    sync.Once          // ensures initDaily runs once
	dailyAnswers []string           // list of valid answers
	dailyAllowed map[string]struct{} // set of allowed guesses
	dailyInitErr error              // init error, if any
)

// initDaily loads answer and allowed word lists into memory.
// Called once on first access.
func initDaily() {
	dailyAllowed = make(map[string]struct{})

	// Load canonical answer list
	ans, err := assets.AnswersList()
	if err != nil {
		dailyInitErr = err
		return
	}
	dailyAnswers = ans

	// Load allowed guess list
	all, err := assets.AllowedList()
	if err != nil {
		dailyInitErr = err
		return
	}

	// Build guess set: include both allowed + answers
	for _, w := range all {
		dailyAllowed[w] = struct{}{}
	}
	for _, w := range dailyAnswers {
		dailyAllowed[w] = struct{}{}
	}
}

// Answers returns the canonical answer list (all lowercase).
func Answers() []string {
	dailyOnce.Do(initDaily)
	return dailyAnswers
}

// Allowed returns the allowed guess set (all lowercase).
// Answers are always included for safety.
func Allowed() map[string]struct{} {
	dailyOnce.Do(initDaily)
	return dailyAllowed
}

// Score compares guess vs. answer and returns a slice of ints:
//   0 = miss (letter not in answer)
//   1 = present (letter in answer, wrong position)
//   2 = hit (letter in correct position)
//
// Delegates to internal/oracle.Score so the Daily Challenge and the
// suggestion engine never disagree on feedback semantics.
func Score(guess, answer string) []int {
	n := len(answer)
	out := make([]int, n)

	a, err := wordtype.NewWord(answer)
	if err != nil {
		return out
	}
	g, err := wordtype.NewWord(guess)
	if err != nil {
		return out
	}
	fb := oracle.Score(a, g)
	for i, c := range fb {
		switch c {
		case wordtype.Green:
			out[i] = 2
		case wordtype.Yellow:
			out[i] = 1
		default:
			out[i] = 0
		}
	}
	return out
}
