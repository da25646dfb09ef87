package session

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-suggester/internal/engine"
	"github.com/robalobadob/wordle-suggester/internal/engineconfig"
	"github.com/robalobadob/wordle-suggester/internal/wordtype"
)

func testEngine(t *testing.T, answers, guesses []string) *engine.Engine {
	t.Helper()
	eng, err := engine.New(answers, guesses, engineconfig.Default(), zerolog.Nop())
	require.NoError(t, err)
	return eng
}

// S6: forced-win scenario — sole surviving answer returns +Inf.
func TestSuggest_ForcedWin(t *testing.T) {
	eng := testEngine(t, []string{"CRANE"}, []string{"CRANE", "SLATE"})
	s := New(eng, zerolog.Nop(), time.Second)

	res, err := s.Suggest(context.Background(), nil, wordtype.Policy{})
	require.NoError(t, err)
	require.Len(t, res.Ranked, 1)
	assert.Equal(t, "CRANE", res.Ranked[0].Word.String())
	assert.True(t, math.IsInf(res.Ranked[0].Score, 1))
	assert.Equal(t, 1, res.RemainingAnswers)
}

// S7: history contradicts the universe -> empty result, no error.
func TestSuggest_EmptySurvivors(t *testing.T) {
	eng := testEngine(t, []string{"CRANE"}, []string{"CRANE", "SLATE"})
	s := New(eng, zerolog.Nop(), time.Second)

	h := wordtype.History{{
		Guess:    mustWord(t, "SLATE"),
		Feedback: wordtype.Feedback{wordtype.Green, wordtype.Green, wordtype.Green, wordtype.Green, wordtype.Green},
	}}
	res, err := s.Suggest(context.Background(), h, wordtype.Policy{})
	require.NoError(t, err)
	assert.Empty(t, res.Ranked)
	assert.Equal(t, 0, res.RemainingAnswers)
}

func mustWord(t *testing.T, s string) wordtype.Word {
	t.Helper()
	w, err := wordtype.NewWord(s)
	require.NoError(t, err)
	return w
}

// P10: cancelling twice is a no-op, yields exactly one sentinel.
func TestCancel_Idempotent(t *testing.T) {
	eng := testEngine(t, []string{"CRANE", "SLATE", "TRACE"}, []string{"CRANE", "SLATE", "TRACE", "STOIC"})
	s := New(eng, zerolog.Nop(), time.Second)

	events := s.SuggestStream(context.Background(), nil, wordtype.Policy{})
	rid := ""
	sentinels := 0
	for ev := range events {
		if rid == "" {
			rid = ev.RequestID
		}
		s.Cancel(rid)
		s.Cancel(rid) // second call must not panic or double-emit
		if ev.Sentinel {
			sentinels++
		}
	}
	assert.Equal(t, 1, sentinels)
}

// P8: submitting r2 before r1 completes preempts r1; r1's sentinel status is
// cancelled/superseded and no r1 suggestion event reaches the consumer after
// r2 has started.
func TestSubmit_Preemption(t *testing.T) {
	eng := testEngine(t, []string{"CRANE", "SLATE", "TRACE"}, []string{"CRANE", "SLATE", "TRACE", "STOIC"})
	s := New(eng, zerolog.Nop(), time.Second)

	first := s.SuggestStream(context.Background(), nil, wordtype.Policy{})
	second := s.SuggestStream(context.Background(), nil, wordtype.Policy{TypedPrefix: "ST"})

	var firstEvents, secondEvents []Event
	done := make(chan struct{}, 2)
	go func() {
		for ev := range first {
			firstEvents = append(firstEvents, ev)
		}
		done <- struct{}{}
	}()
	go func() {
		for ev := range second {
			secondEvents = append(secondEvents, ev)
		}
		done <- struct{}{}
	}()
	<-done
	<-done

	require.NotEmpty(t, secondEvents)
	last := secondEvents[len(secondEvents)-1]
	assert.True(t, last.Sentinel)

	// The preempted request must still receive its own terminal event (spec
	// §7: exactly one terminal event per accepted request) — an empty
	// firstEvents would mean the channel closed with no sentinel at all.
	require.NotEmpty(t, firstEvents)
	assert.True(t, firstEvents[len(firstEvents)-1].Sentinel)
	assert.Equal(t, StatusCancelled, firstEvents[len(firstEvents)-1].Status)
	for _, ev := range firstEvents {
		if !ev.Sentinel {
			t.Fatalf("preempted request must not emit a non-sentinel event: %+v", ev)
		}
	}
}
