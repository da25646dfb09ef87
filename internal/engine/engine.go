// Package engine wires together wordtype, sets, scorer, and dispatch: New
// builds an Engine over the two word universes and Compute runs one
// suggestion computation. The Suggest and SuggestStream entry points live on
// session.Session, which calls Compute. The Engine owns the immutable
// AnswerUniverse/GuessUniverse for its lifetime (spec §3: "Lifetime = engine
// lifetime").
package engine

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle-suggester/internal/dispatch"
	"github.com/robalobadob/wordle-suggester/internal/engineconfig"
	"github.com/robalobadob/wordle-suggester/internal/engineerr"
	"github.com/robalobadob/wordle-suggester/internal/sets"
	"github.com/robalobadob/wordle-suggester/internal/wordtype"
)

// Engine holds the immutable word universes and tuning config shared
// read-only across every request and every worker (spec §5: "no global lock
// on the engine's immutable universes").
type Engine struct {
	answers     []wordtype.Word
	guesses     []wordtype.Word
	prefixIndex *sets.PrefixIndex
	cfg         engineconfig.Config
	log         zerolog.Logger
	cache       *resultCache
}

// New validates and normalizes the two word universes and builds the
// prefix trie once. It fails with engineerr.ErrInvalidWord if any raw entry
// is not a valid 5-letter word.
func New(answerWords, guessWords []string, cfg engineconfig.Config, log zerolog.Logger) (*Engine, error) {
	answers := make([]wordtype.Word, 0, len(answerWords))
	for _, raw := range answerWords {
		w, err := wordtype.NewWord(raw)
		if err != nil {
			return nil, engineerr.ErrInvalidWord
		}
		answers = append(answers, w)
	}
	guesses := make([]wordtype.Word, 0, len(guessWords))
	for _, raw := range guessWords {
		w, err := wordtype.NewWord(raw)
		if err != nil {
			return nil, engineerr.ErrInvalidWord
		}
		guesses = append(guesses, w)
	}
	return &Engine{
		answers:     answers,
		guesses:     guesses,
		prefixIndex: sets.NewPrefixIndex(guesses),
		cfg:         cfg,
		log:         log,
		cache:       newResultCache(cfg.Engine.HotCacheSize),
	}, nil
}

// poolAndShardSize resolves the engine's configured pool/shard sizes,
// falling back to the spec defaults when the config leaves them at zero.
func (e *Engine) poolAndShardSize() (pool, shardCount int) {
	pool = e.cfg.Engine.PoolSize
	if pool <= 0 {
		pool = dispatch.PoolSize()
	}
	shardCount = e.cfg.Engine.ShardCount
	if shardCount <= 0 {
		shardCount = dispatch.DefaultShardCount
	}
	return pool, shardCount
}

// Compute runs one full suggestion computation: candidate-set derivation,
// degenerate-case short-circuits (spec §4.3), and dispatched scoring. It is
// the shared core behind both Suggest (single-shot) and SuggestStream
// (iterative, which calls Compute once and re-labels the dispatcher's
// internal shard-merge progress — see session.Session).
func (e *Engine) Compute(ctx context.Context, rid string, h wordtype.History, p wordtype.Policy) (wordtype.SuggestionResult, dispatch.Result, error) {
	p = p.Normalized(e.cfg.Engine.TopKDefault)

	key := cacheKey(h, p)
	if cached, ok := e.cache.get(key); ok {
		cached.RequestID = rid
		return cached, dispatch.Result{}, nil
	}

	survivingAnswers, candidateGuesses := sets.Derive(e.answers, e.guesses, h, p, e.prefixIndex)

	if len(survivingAnswers) == 0 {
		res := wordtype.SuggestionResult{RequestID: rid}
		e.cache.put(key, res)
		return res, dispatch.Result{}, nil
	}
	if len(survivingAnswers) == 1 {
		res := wordtype.SuggestionResult{
			Ranked:           []wordtype.ScoredGuess{{Word: survivingAnswers[0], Score: math.Inf(1)}},
			RemainingAnswers: 1,
			RequestID:        rid,
		}
		e.cache.put(key, res)
		return res, dispatch.Result{}, nil
	}
	if len(candidateGuesses) == 0 {
		res := wordtype.SuggestionResult{RemainingAnswers: len(survivingAnswers), RequestID: rid}
		e.cache.put(key, res)
		return res, dispatch.Result{}, nil
	}

	pool, shardCount := e.poolAndShardSize()
	dres := dispatch.Run(ctx, e.log, candidateGuesses, survivingAnswers, p.TopK, pool, shardCount)
	if dres.Cancelled {
		// Not cached: a cancelled/partial computation must not poison the
		// cache for a later, uncancelled request with the same key.
		return wordtype.SuggestionResult{}, dres, engineerr.ErrCancelled
	}
	res := wordtype.SuggestionResult{
		Ranked:           dres.Ranked,
		RemainingAnswers: len(survivingAnswers),
		RequestID:        rid,
	}
	e.cache.put(key, res)
	return res, dres, nil
}

// Answers exposes the normalized answer universe (read-only).
func (e *Engine) Answers() []wordtype.Word { return e.answers }

// Guesses exposes the normalized guess universe (read-only).
func (e *Engine) Guesses() []wordtype.Word { return e.guesses }
