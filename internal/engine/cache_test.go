package engine

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-suggester/internal/engineconfig"
	"github.com/robalobadob/wordle-suggester/internal/wordtype"
)

// newResultCache(0) / newResultCache(negative) disables caching entirely —
// get/put on a nil *resultCache must be safe no-ops.
func TestResultCache_DisabledWhenSizeNonPositive(t *testing.T) {
	c := newResultCache(0)
	require.Nil(t, c)

	c.put("k", wordtype.SuggestionResult{RemainingAnswers: 3})
	_, ok := c.get("k")
	assert.False(t, ok)
}

func TestResultCache_PutThenGetHits(t *testing.T) {
	c := newResultCache(2)
	want := wordtype.SuggestionResult{RemainingAnswers: 4}
	c.put("k", want)

	got, ok := c.get("k")
	require.True(t, ok)
	assert.Equal(t, want.RemainingAnswers, got.RemainingAnswers)
}

// At capacity, the least-recently-accessed entry is evicted first.
func TestResultCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := newResultCache(2)
	c.put("a", wordtype.SuggestionResult{RemainingAnswers: 1})
	c.put("b", wordtype.SuggestionResult{RemainingAnswers: 2})

	// Touch "a" so "b" becomes the least-recently-used entry.
	_, _ = c.get("a")

	c.put("c", wordtype.SuggestionResult{RemainingAnswers: 3})

	_, aOK := c.get("a")
	_, bOK := c.get("b")
	_, cOK := c.get("c")
	assert.True(t, aOK, "recently-accessed entry must survive eviction")
	assert.False(t, bOK, "least-recently-used entry must be evicted")
	assert.True(t, cOK, "newly-inserted entry must be present")
}

// cacheKey must ignore Policy.RequestID-equivalent data that Compute injects
// after the fact (RequestID itself isn't part of wordtype.Policy, but the
// same history+policy from two different callers/rids must still collide).
func TestCacheKey_IgnoresRequestID(t *testing.T) {
	h := wordtype.History{{Guess: mustWord(t, "CRANE"), Feedback: wordtype.Feedback{wordtype.Green}}}
	p := wordtype.Policy{TopK: 3}
	assert.Equal(t, cacheKey(h, p), cacheKey(h, p))
}

// Compute must serve a cached result on a repeat (history, policy) pair
// instead of recomputing, and must stamp the cached result with the new
// request's own RequestID rather than leaking the first caller's rid.
func TestCompute_ServesCachedResultWithCallersRequestID(t *testing.T) {
	eng, err := New(
		[]string{"CRANE", "SLATE", "TRACE", "STOIC"},
		[]string{"CRANE", "SLATE", "TRACE", "STOIC"},
		engineconfig.Default(), zerolog.Nop(),
	)
	require.NoError(t, err)

	first, _, err := eng.Compute(context.Background(), "rid-first", nil, wordtype.Policy{TopK: 2})
	require.NoError(t, err)

	second, _, err := eng.Compute(context.Background(), "rid-second", nil, wordtype.Policy{TopK: 2})
	require.NoError(t, err)

	assert.Equal(t, first.Ranked, second.Ranked)
	assert.Equal(t, first.RemainingAnswers, second.RemainingAnswers)
	assert.Equal(t, "rid-second", second.RequestID)
}

// A cancelled computation must not populate the cache: a later, uncancelled
// request with the same key must still run to completion rather than
// inheriting an empty cancelled result.
func TestCompute_CancelledResultNotCached(t *testing.T) {
	eng, err := New(
		[]string{"CRANE", "SLATE", "TRACE", "STOIC"},
		[]string{"CRANE", "SLATE", "TRACE", "STOIC"},
		engineconfig.Default(), zerolog.Nop(),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = eng.Compute(ctx, "rid-cancelled", nil, wordtype.Policy{TopK: 2})
	require.Error(t, err)

	_, ok := eng.cache.get(cacheKey(nil, wordtype.Policy{TopK: 2}.Normalized(eng.cfg.Engine.TopKDefault)))
	assert.False(t, ok, "a cancelled request must not leave a cache entry behind")
}
