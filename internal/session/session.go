// Package session implements the Session Manager (spec §4.6): it owns the
// single in-flight request per session, assigns request identifiers, and
// guarantees preemption and ordering semantics.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle-suggester/internal/engine"
	"github.com/robalobadob/wordle-suggester/internal/engineerr"
	"github.com/robalobadob/wordle-suggester/internal/wordtype"
)

// DefaultTimeout is the spec's default per-request wall-clock budget.
const DefaultTimeout = 30 * time.Second

// EventStatus labels the terminal sentinel event of a request.
type EventStatus string

const (
	StatusCompleted EventStatus = "completed"
	StatusCancelled EventStatus = "cancelled"
)

// Event is either a "suggestions" frame or the terminal "stream-completed"
// sentinel (spec §4.6). Exactly one Event with Sentinel == true is sent per
// accepted request, always last.
type Event struct {
	RequestID        string
	Ranked           []wordtype.ScoredGuess
	RemainingAnswers int
	Depth            int
	Sentinel         bool
	Status           EventStatus
	Err              error
}

// request tracks one in-flight computation's cancellation handle.
type request struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}
}

// Session owns exactly one non-terminal request at a time (spec §3: "at most
// one request per session is in a non-terminal state"). Submissions are
// serialized behind mu so event emission order matches submission order
// (spec §5's within-session ordering guarantee).
type Session struct {
	eng     *engine.Engine
	log     zerolog.Logger
	timeout time.Duration

	mu      sync.Mutex
	current *request
}

// New constructs a Session bound to eng. timeout <= 0 uses DefaultTimeout.
func New(eng *engine.Engine, log zerolog.Logger, timeout time.Duration) *Session {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Session{eng: eng, log: log, timeout: timeout}
}

// preempt cancels any currently running request and clears it. Must be
// called with mu held.
func (s *Session) preempt() {
	if s.current != nil {
		s.current.cancel()
		s.current = nil
	}
}

// Cancel fires the cancellation signal for rid if it is still the session's
// current request. Idempotent: cancelling twice, or cancelling a rid that has
// already terminated, is a no-op (spec P10).
func (s *Session) Cancel(rid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.id == rid {
		s.current.cancel()
	}
}

// Suggest runs a single-shot request to completion and returns its final
// SuggestionResult. It preempts any prior in-flight request on this session.
func (s *Session) Suggest(parent context.Context, h wordtype.History, p wordtype.Policy) (wordtype.SuggestionResult, error) {
	events := s.submit(parent, "", h, p)
	var last wordtype.SuggestionResult
	var err error
	for ev := range events {
		if ev.Sentinel {
			if ev.Status == StatusCancelled {
				err = engineerr.ErrCancelled
			}
			if ev.Err != nil {
				err = ev.Err
			}
			continue
		}
		last = wordtype.SuggestionResult{Ranked: ev.Ranked, RemainingAnswers: ev.RemainingAnswers, RequestID: ev.RequestID}
	}
	return last, err
}

// SuggestStream runs a request and returns a channel carrying one
// "suggestions" Event with the fully computed result (Depth = shards merged),
// terminated by a sentinel (spec §4.6). Partial per-shard results are not
// streamed. The channel is buffered 1: a slow consumer only ever sees the
// latest event, per spec §9's "bounded producer-consumer channel... latest-wins."
func (s *Session) SuggestStream(parent context.Context, h wordtype.History, p wordtype.Policy) <-chan Event {
	return s.submit(parent, "", h, p)
}

// SuggestStreamWithID is SuggestStream for transports that assign their own
// request identifier instead of letting the session mint one (spec §6.2:
// the in-process messaging protocol's SOLVE message carries a caller-chosen
// requestId that CANCEL must later reference).
func (s *Session) SuggestStreamWithID(parent context.Context, rid string, h wordtype.History, p wordtype.Policy) <-chan Event {
	return s.submit(parent, rid, h, p)
}

func (s *Session) submit(parent context.Context, rid string, h wordtype.History, p wordtype.Policy) <-chan Event {
	if rid == "" {
		rid = uuid.NewString()
	}
	ctx, cancel := context.WithTimeout(parent, s.timeout)

	s.mu.Lock()
	s.preempt()
	req := &request{id: rid, cancel: cancel, done: make(chan struct{})}
	s.current = req
	s.mu.Unlock()

	out := make(chan Event, 1)
	go s.run(ctx, req, out, h, p)
	return out
}

func (s *Session) run(ctx context.Context, req *request, out chan<- Event, h wordtype.History, p wordtype.Policy) {
	defer close(req.done)
	defer close(out)
	defer req.cancel()

	logger := s.log.With().Str("rid", req.id).Logger()

	result, dres, err := s.eng.Compute(ctx, req.id, h, p)

	s.mu.Lock()
	isCurrent := s.current == req
	if isCurrent {
		s.current = nil
	}
	s.mu.Unlock()

	if !isCurrent {
		// Superseded or already cancelled: drop the computed result at the
		// source per spec §5 ("the engine SHOULD also drop it at the
		// source"), but every accepted request still owes its caller
		// exactly one terminal event (spec §7) — emit the sentinel before
		// returning so a consumer's `for ev := range events` always sees a
		// stream-completed frame instead of a silently closed channel.
		emit(out, Event{RequestID: req.id, Sentinel: true, Status: StatusCancelled})
		return
	}

	switch {
	case err == nil:
		emit(out, Event{RequestID: req.id, Ranked: result.Ranked, RemainingAnswers: result.RemainingAnswers, Depth: dres.ShardsMerged})
		emit(out, Event{RequestID: req.id, Sentinel: true, Status: StatusCompleted})
	case ctx.Err() == context.DeadlineExceeded:
		logger.Warn().Msg("request timed out")
		emit(out, Event{RequestID: req.id, Sentinel: true, Status: StatusCancelled, Err: engineerr.ErrTimeout})
	case err == engineerr.ErrCancelled || ctx.Err() == context.Canceled:
		logger.Debug().Msg("request cancelled")
		emit(out, Event{RequestID: req.id, Sentinel: true, Status: StatusCancelled})
	default:
		logger.Error().Err(err).Msg("internal error")
		emit(out, Event{RequestID: req.id, Sentinel: true, Status: StatusCancelled, Err: engineerr.ErrInternal})
	}
}

// emit sends ev, dropping it instead of blocking forever if the consumer has
// stopped reading (the channel is buffered 1; a second pending send here
// would only ever be the sentinel, which we must not lose, so we make room
// by draining one stale slot first).
func emit(out chan<- Event, ev Event) {
	select {
	case out <- ev:
	default:
		select {
		case <-out:
		default:
		}
		out <- ev
	}
}
