// Package scorer implements the information-gain scoring of candidate
// guesses against a surviving-answer set (spec §4.4).
package scorer

import (
	"context"
	"math"
	"sort"

	"github.com/robalobadob/wordle-suggester/internal/oracle"
	"github.com/robalobadob/wordle-suggester/internal/wordtype"
)

// numPatterns is 3^5, the number of distinct Feedback values.
const numPatterns = 243

// entropy returns log2(n) for n >= 1 and 0 for n == 0, matching the spec's
// equiprobable-outcome entropy definition.
func entropy(n int) float64 {
	if n <= 0 {
		return 0
	}
	return math.Log2(float64(n))
}

// Gain computes the expected information gain of scoring guess against
// survivingAnswers: H(N) minus the answer-weighted expected post-feedback
// entropy. Bucketization uses a dense 243-slot array keyed by
// Feedback.Pattern(), never a map, per spec §4.4.
func Gain(guess wordtype.Word, survivingAnswers []wordtype.Word) float64 {
	n := len(survivingAnswers)
	if n == 0 {
		return 0
	}
	var buckets [numPatterns]int
	for _, a := range survivingAnswers {
		buckets[oracle.Score(a, guess).Pattern()]++
	}
	expected := 0.0
	for _, count := range buckets {
		if count == 0 {
			continue
		}
		expected += (float64(count) / float64(n)) * entropy(count)
	}
	return entropy(n) - expected
}

// Top scores every candidate guess against survivingAnswers and returns the
// top-K by descending score, ties broken by ascending lexicographic word
// order (P6, deterministic across runs). ctx is checked once per guess so a
// caller (the dispatcher) can cancel a long shard between candidates.
func Top(ctx context.Context, candidateGuesses, survivingAnswers []wordtype.Word, topK int) ([]wordtype.ScoredGuess, error) {
	out := make([]wordtype.ScoredGuess, 0, len(candidateGuesses))
	for _, g := range candidateGuesses {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
		out = append(out, wordtype.ScoredGuess{Word: g, Score: Gain(g, survivingAnswers)})
	}
	sortByScoreThenWord(out)
	if topK > 0 && len(out) > topK {
		out = out[:topK]
	}
	return out, nil
}

// sortByScoreThenWord sorts in place: score descending, word ascending on
// ties. Shared by the scorer and the dispatcher's final merge so both sides
// of the cancellation boundary use the identical comparator (P6).
func sortByScoreThenWord(sg []wordtype.ScoredGuess) {
	sort.Slice(sg, func(i, j int) bool {
		if sg[i].Score != sg[j].Score {
			return sg[i].Score > sg[j].Score
		}
		return sg[i].Word.Less(sg[j].Word)
	})
}

// SortByScoreThenWord is the exported form of sortByScoreThenWord, used by
// the dispatcher to merge per-shard results with the same comparator.
func SortByScoreThenWord(sg []wordtype.ScoredGuess) { sortByScoreThenWord(sg) }
