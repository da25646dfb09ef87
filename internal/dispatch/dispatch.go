// Package dispatch spreads scorer.Top over a pool of worker goroutines,
// sharding the candidate-guess universe and merging per-shard results under
// a single shared cancellation signal (spec §4.5).
//
// Grounded on the context.Context + goroutine + channel fan-out/fan-in
// pattern shown in goblincore-geoffreyengram/decay_worker.go (a ticker/
// ctx.Done select loop), generalized here from one background goroutine to a
// bounded worker pool feeding a result channel.
package dispatch

import (
	"context"
	"runtime"
	"sync"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle-suggester/internal/scorer"
	"github.com/robalobadob/wordle-suggester/internal/wordtype"
)

// DefaultShardCount is the spec's small constant S (§4.5 says "source uses
// 4").
const DefaultShardCount = 4

// PoolSize returns the spec's default worker count:
// min(max(availableCores-1, 1), 8).
func PoolSize() int {
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	if n > 8 {
		n = 8
	}
	return n
}

// Result is the dispatcher's merged output for one request.
type Result struct {
	Ranked       []wordtype.ScoredGuess
	ShardsMerged int
	TotalShards  int
	Cancelled    bool
}

// shard is a contiguous slice of the candidate-guess universe plus a shared,
// read-only view of the surviving answers.
type shard struct {
	guesses []wordtype.Word
	answers []wordtype.Word
}

// shardInput splits candidateGuesses into contiguous shards of
// ceil(n/shardCount) guesses each; the last shard holds whatever is left and
// may be shorter, so fewer than shardCount shards can result.
func shardInput(candidateGuesses, survivingAnswers []wordtype.Word, shardCount int) []shard {
	if shardCount < 1 {
		shardCount = 1
	}
	n := len(candidateGuesses)
	if n == 0 {
		return nil
	}
	size := (n + shardCount - 1) / shardCount
	if size < 1 {
		size = 1
	}
	var shards []shard
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		shards = append(shards, shard{guesses: candidateGuesses[start:end], answers: survivingAnswers})
	}
	return shards
}

// Run scores every candidate guess across a pool of poolSize workers and
// returns the globally merged top-K. If ctx is cancelled before a shard
// finishes, that shard's partial results are discarded and Result.Cancelled
// is true; Run itself never returns an error for cancellation — callers
// inspect Result.Cancelled, matching spec §4.5's "resolves its own result as
// cancelled without waiting for remaining workers."
func Run(ctx context.Context, log zerolog.Logger, candidateGuesses, survivingAnswers []wordtype.Word, topK, poolSize, shardCount int) Result {
	shards := shardInput(candidateGuesses, survivingAnswers, shardCount)
	if len(shards) == 0 {
		return Result{TotalShards: 0}
	}
	if poolSize < 1 {
		poolSize = 1
	}

	type shardResult struct {
		scored    []wordtype.ScoredGuess
		cancelled bool
	}

	jobs := make(chan shard)
	results := make(chan shardResult, len(shards))

	var wg sync.WaitGroup
	for w := 0; w < poolSize; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for sh := range jobs {
				select {
				case <-ctx.Done():
					results <- shardResult{cancelled: true}
					continue
				default:
				}
				scored, err := scorer.Top(ctx, sh.guesses, sh.answers, len(sh.guesses))
				if err != nil {
					log.Debug().Int("worker", workerID).Err(err).Msg("shard cancelled")
					results <- shardResult{cancelled: true}
					continue
				}
				results <- shardResult{scored: scored}
			}
		}(w)
	}

	go func() {
		for _, sh := range shards {
			jobs <- sh
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var merged []wordtype.ScoredGuess
	shardsMerged := 0
	cancelled := false
	for r := range results {
		if r.cancelled {
			// Resolve at once: workers still running send into the buffered
			// results channel (one slot per shard) and exit on their own.
			cancelled = true
			break
		}
		merged = append(merged, r.scored...)
		shardsMerged++
	}

	scorer.SortByScoreThenWord(merged)
	if topK > 0 && len(merged) > topK {
		merged = merged[:topK]
	}
	return Result{Ranked: merged, ShardsMerged: shardsMerged, TotalShards: len(shards), Cancelled: cancelled}
}
