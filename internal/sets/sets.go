// Package sets derives the surviving answer set and candidate guess set from
// a word universe, a History, and a Policy (spec §4.3).
package sets

import (
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/robalobadob/wordle-suggester/internal/filter"
	"github.com/robalobadob/wordle-suggester/internal/wordtype"
)

// PrefixIndex accelerates typed-prefix filtering over a fixed guess universe
// with a patricia trie keyed on the lowercase word, grounded on
// bastiangx-wordserve/pkg/suggest/trie.go's VisitSubtree-based prefix search.
// It is built once per Engine and shared read-only across every request.
type PrefixIndex struct {
	trie     *patricia.Trie
	universe []wordtype.Word
}

// NewPrefixIndex builds a trie over guessUniverse. The trie stores the index
// into guessUniverse as the item so lookups avoid re-parsing words.
func NewPrefixIndex(guessUniverse []wordtype.Word) *PrefixIndex {
	t := patricia.NewTrie()
	for i, w := range guessUniverse {
		t.Insert(patricia.Prefix(strings.ToLower(w.String())), i)
	}
	return &PrefixIndex{trie: t, universe: guessUniverse}
}

// MatchPrefix returns every word in the universe beginning with prefix
// (case-insensitive). An empty prefix returns the full universe.
func (p *PrefixIndex) MatchPrefix(prefix string) []wordtype.Word {
	if prefix == "" {
		return p.universe
	}
	lower := strings.ToLower(prefix)
	var out []wordtype.Word
	_ = p.trie.VisitSubtree(patricia.Prefix(lower), func(_ patricia.Prefix, item patricia.Item) error {
		idx, ok := item.(int)
		if !ok {
			return nil
		}
		out = append(out, p.universe[idx])
		return nil
	})
	return out
}

// Derive computes (survivingAnswers, candidateGuesses) per spec §4.3.
// prefixIndex may be nil, in which case prefix matching falls back to a
// linear scan (used for small or ad-hoc universes, e.g. in tests).
func Derive(
	answerUniverse, guessUniverse []wordtype.Word,
	h wordtype.History,
	p wordtype.Policy,
	prefixIndex *PrefixIndex,
) (survivingAnswers, candidateGuesses []wordtype.Word) {
	survivingAnswers = make([]wordtype.Word, 0, len(answerUniverse))
	for _, a := range answerUniverse {
		if filter.Consistent(a, h) {
			survivingAnswers = append(survivingAnswers, a)
		}
	}

	var prefixMatches []wordtype.Word
	if prefixIndex != nil {
		prefixMatches = prefixIndex.MatchPrefix(p.TypedPrefix)
	} else {
		prefixMatches = linearPrefixMatch(guessUniverse, p.TypedPrefix)
	}

	candidateGuesses = make([]wordtype.Word, 0, len(prefixMatches))
	for _, g := range prefixMatches {
		if p.StrictGuesses && !filter.Consistent(g, h) {
			continue
		}
		candidateGuesses = append(candidateGuesses, g)
	}
	return survivingAnswers, candidateGuesses
}

func linearPrefixMatch(universe []wordtype.Word, prefix string) []wordtype.Word {
	if prefix == "" {
		return universe
	}
	out := make([]wordtype.Word, 0, len(universe))
	for _, w := range universe {
		if wordtype.HasPrefix(w, prefix) {
			out = append(out, w)
		}
	}
	return out
}
