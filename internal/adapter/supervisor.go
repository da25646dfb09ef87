package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/robalobadob/wordle-suggester/internal/engine"
	"github.com/robalobadob/wordle-suggester/internal/engineconfig"
	"github.com/robalobadob/wordle-suggester/internal/engineerr"
	"github.com/robalobadob/wordle-suggester/internal/session"
	"github.com/robalobadob/wordle-suggester/internal/wordtype"
)

// Supervisor is the background compute context of spec §4.7: it decodes
// msgpack envelopes off r, spawns one short-lived worker goroutine per
// SOLVE via the underlying session.Session, and cancels them on CANCEL.
// Responses are encoded back onto w, serialized by writeMu the same way
// bastiangx-wordserve's Server.sendResponse serializes stdout writes.
type Supervisor struct {
	log zerolog.Logger
	cfg engineconfig.Config

	writeMu sync.Mutex
	w       io.Writer

	sessMu sync.Mutex
	sess   *session.Session
}

// NewSupervisor constructs a Supervisor that has not yet been INIT'd.
func NewSupervisor(cfg engineconfig.Config, log zerolog.Logger) *Supervisor {
	return &Supervisor{log: log, cfg: cfg}
}

// Run decodes one msgpack envelope per iteration from r and dispatches it
// until r is exhausted (io.EOF) or ctx is cancelled. Each SOLVE is handled
// in its own goroutine so a long-running computation never blocks the
// decode loop from observing a subsequent CANCEL.
func (sv *Supervisor) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	sv.w = w
	decoder := msgpack.NewDecoder(r)

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var raw map[string]interface{}
		if err := decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		typ, _ := raw["type"].(string)
		switch MsgType(typ) {
		case MsgInit:
			sv.handleInit(raw)
		case MsgSolve:
			wg.Add(1)
			go func() {
				defer wg.Done()
				sv.handleSolve(ctx, raw)
			}()
		case MsgCancel:
			sv.handleCancel(raw)
		default:
			sv.sendError("", fmt.Sprintf("unknown message type: %q", typ))
		}
	}
}

func (sv *Supervisor) handleInit(raw map[string]interface{}) {
	answers := toStringSlice(raw["answers"])
	guesses := toStringSlice(raw["guesses"])

	eng, err := engine.New(answers, guesses, sv.cfg, sv.log)
	if err != nil {
		sv.sendError("", err.Error())
		return
	}

	sv.sessMu.Lock()
	sv.sess = session.New(eng, sv.log, time.Duration(sv.cfg.Engine.RequestTimeoutSeconds)*time.Second)
	sv.sessMu.Unlock()

	sv.send(InitCompleteMsg{Type: MsgInitComplete})
}

func (sv *Supervisor) handleSolve(ctx context.Context, raw map[string]interface{}) {
	rid, _ := raw["requestId"].(string)

	sv.sessMu.Lock()
	sess := sv.sess
	sv.sessMu.Unlock()
	if sess == nil {
		sv.sendError(rid, engineerr.ErrNotInitialized.Error())
		return
	}

	entries := toWireHistory(raw["history"])
	history, err := DecodeHistory(entries)
	if err != nil {
		sv.sendError(rid, err.Error())
		return
	}
	strict, _ := raw["strictGuesses"].(bool)
	prefix, _ := raw["typedPrefix"].(string)

	policy := wordtype.Policy{StrictGuesses: strict, TypedPrefix: prefix}
	events := sess.SuggestStreamWithID(ctx, rid, history, policy)
	var last SolveCompleteMsg
	var solveErr error
	for ev := range events {
		if ev.Sentinel {
			if ev.Err != nil {
				solveErr = ev.Err
			} else if ev.Status == session.StatusCancelled {
				solveErr = engineerr.ErrCancelled
			}
			continue
		}
		last = SolveCompleteMsg{
			Type:             MsgSolveComplete,
			RequestID:        rid,
			Suggestions:      EncodeSuggestions(ev.Ranked),
			RemainingAnswers: ev.RemainingAnswers,
		}
	}

	if solveErr != nil {
		sv.sendError(rid, solveErr.Error())
		return
	}
	sv.send(last)
}

func (sv *Supervisor) handleCancel(raw map[string]interface{}) {
	rid, _ := raw["requestId"].(string)

	sv.sessMu.Lock()
	sess := sv.sess
	sv.sessMu.Unlock()
	if sess == nil || rid == "" {
		return
	}
	sess.Cancel(rid)
}

func (sv *Supervisor) sendError(rid, msg string) {
	sv.send(ErrorMsg{Type: MsgError, RequestID: rid, Error: msg})
}

// send encodes v to msgpack and writes it to sv.w, serialized by writeMu so
// concurrent SOLVE workers never interleave partial frames (the same
// atomicity concern bastiangx-wordserve's sendResponse documents).
func (sv *Supervisor) send(v any) {
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(v); err != nil {
		sv.log.Error().Err(err).Msg("adapter: failed to encode response")
		return
	}
	sv.writeMu.Lock()
	defer sv.writeMu.Unlock()
	if _, err := sv.w.Write(buf.Bytes()); err != nil {
		sv.log.Error().Err(err).Msg("adapter: failed to write response")
	}
}

func toStringSlice(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func toWireHistory(v interface{}) []WireGuessEntry {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]WireGuessEntry, 0, len(raw))
	for _, e := range raw {
		m, ok := e.(map[string]interface{})
		if !ok {
			continue
		}
		word, _ := m["word"].(string)
		colors := toStringSlice(m["feedback"])
		out = append(out, WireGuessEntry{Word: word, Feedback: colors})
	}
	return out
}
