package engine

import (
	"strconv"
	"strings"
	"sync"

	"github.com/robalobadob/wordle-suggester/internal/wordtype"
)

// resultCache memoizes Compute's result for a (history, policy) key, so
// repeated requests for the same constraints (a common case: many callers
// open with the same first guess) skip the dispatcher entirely. Bounded by
// maxEntries and evicted least-recently-used, grounded on
// bastiangx-wordserve/pkg/suggest/cache.go's HotCache (same map +
// access-counter eviction shape, generalized from cached words to cached
// suggestion results).
type resultCache struct {
	mu          sync.Mutex
	entries     map[string]wordtype.SuggestionResult
	accessTime  map[string]int64
	accessCount int64
	maxEntries  int
}

// newResultCache returns nil when maxEntries <= 0, the engine's signal to
// skip caching entirely (spec leaves hot_cache_size <= 0 as "disabled").
func newResultCache(maxEntries int) *resultCache {
	if maxEntries <= 0 {
		return nil
	}
	return &resultCache{
		entries:    make(map[string]wordtype.SuggestionResult, maxEntries),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

func (c *resultCache) get(key string) (wordtype.SuggestionResult, bool) {
	if c == nil {
		return wordtype.SuggestionResult{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	res, ok := c.entries[key]
	if ok {
		c.accessCount++
		c.accessTime[key] = c.accessCount
	}
	return res, ok
}

func (c *resultCache) put(key string, res wordtype.SuggestionResult) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLRU()
	}
	c.entries[key] = res
	c.accessCount++
	c.accessTime[key] = c.accessCount
}

// evictLRU drops the least-recently-accessed entry. Must be called with
// c.mu held.
func (c *resultCache) evictLRU() {
	var oldestKey string
	var oldestTime int64 = 1<<63 - 1
	for key, t := range c.accessTime {
		if t < oldestTime {
			oldestTime = t
			oldestKey = key
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
		delete(c.accessTime, oldestKey)
	}
}

// cacheKey builds a deterministic string key from the request's semantic
// inputs (history entries + policy), excluding RequestID: two requests with
// identical constraints must hit the same cache entry regardless of which
// caller or rid asked.
func cacheKey(h wordtype.History, p wordtype.Policy) string {
	var b strings.Builder
	for _, g := range h {
		b.WriteString(g.Guess.String())
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(g.Feedback.Pattern()))
		b.WriteByte('|')
	}
	b.WriteByte('#')
	if p.StrictGuesses {
		b.WriteByte('S')
	}
	b.WriteByte('|')
	b.WriteString(p.TypedPrefix)
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(p.TopK))
	return b.String()
}
