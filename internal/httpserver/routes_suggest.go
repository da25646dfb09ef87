// routes_suggest.go wires the suggestion engine's SSE transport (spec
// §4.7, §6.3) onto the chi router: POST /api/v1/suggest/stream streams
// ranked suggestions for a history, POST /api/v1/suggest/close cancels an
// in-flight stream by its streamId.
package httpserver

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-suggester/internal/adapter"
	"github.com/robalobadob/wordle-suggester/internal/session"
	"github.com/robalobadob/wordle-suggester/internal/wordtype"
)

// wireFeedback matches spec §6.3's nested shape: {"colors": [...]}.
type wireFeedback struct {
	Colors []string `json:"colors"`
}

type wireHistoryEntry struct {
	Word     string       `json:"word"`
	Feedback wireFeedback `json:"feedback"`
}

type suggestStreamReq struct {
	History  []wireHistoryEntry `json:"history"`
	MaxDepth int                `json:"maxDepth,omitempty"`
}

type wireSuggestion struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

func (s *Server) mountSuggestRoutes(r chi.Router) {
	r.Post("/api/v1/suggest/stream", s.handleSuggestStream)
	r.Post("/api/v1/suggest/close", s.handleSuggestClose)
}

// callerID identifies the caller a suggestion session belongs to: the
// authenticated user ID if logged in, else the anonymous cookie ID — the
// same identity routes_daily.go's userIDWithAnon uses to key dailySession.
func (s *Server) callerID(w http.ResponseWriter, r *http.Request) string {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID
	}
	return s.ensureAnonID(w, r)
}

// sessionFor returns the caller's suggestion session, creating one on first
// use. Spec §4.6's "single in-flight request per session" is scoped to one
// caller; without this, two unrelated clients sharing one process-wide
// session.Session would preempt each other's in-flight requests.
func (s *Server) sessionFor(callerID string) *session.Session {
	s.sessMu.Lock()
	defer s.sessMu.Unlock()
	if sess, ok := s.sessions[callerID]; ok {
		return sess
	}
	sess := session.New(s.eng, s.sessLog, s.sessTimeout)
	s.sessions[callerID] = sess
	return sess
}

// handleSuggestStream decodes the request body, runs it through the
// caller's session manager, and streams SSE frames: one "stream-created",
// zero or more "suggestions", then one "stream-completed" sentinel.
func (s *Server) handleSuggestStream(w http.ResponseWriter, r *http.Request) {
	if s.eng == nil {
		http.Error(w, `{"error":"suggestion engine not initialized"}`, http.StatusServiceUnavailable)
		return
	}

	var req suggestStreamReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	history, err := decodeWireHistory(req.History)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, `{"error":"streaming unsupported"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sess := s.sessionFor(s.callerID(w, r))
	events := sess.SuggestStream(r.Context(), history, wordtype.Policy{})

	createdSent := false
	for ev := range events {
		if !createdSent {
			s.trackStream(ev.RequestID, sess)
			writeSSE(w, "stream-created", map[string]string{"streamId": ev.RequestID})
			flusher.Flush()
			createdSent = true
		}
		if ev.Sentinel {
			s.untrackStream(ev.RequestID)
			writeSSE(w, "stream-completed", map[string]string{
				"streamId": ev.RequestID,
				"status":   string(ev.Status),
			})
			flusher.Flush()
			continue
		}

		var top *wireSuggestion
		suggestions := make([]wireSuggestion, len(ev.Ranked))
		for i, sg := range ev.Ranked {
			// encoding/json rejects +Inf, so the forced-win sentinel goes
			// out as adapter.SentinelScore (math.MaxFloat64).
			score := sg.Score
			if math.IsInf(score, 1) {
				score = adapter.SentinelScore
			}
			suggestions[i] = wireSuggestion{Word: sg.Word.String(), Score: score}
		}
		if len(suggestions) > 0 {
			top = &suggestions[0]
		}
		writeSSE(w, "suggestions", map[string]any{
			"streamId":         ev.RequestID,
			"suggestions":      suggestions,
			"topSuggestion":    top,
			"depth":            ev.Depth,
			"remainingAnswers": ev.RemainingAnswers,
		})
		flusher.Flush()
	}
}

// handleSuggestClose cancels an in-flight stream by id, on whichever
// caller's session currently owns it.
func (s *Server) handleSuggestClose(w http.ResponseWriter, r *http.Request) {
	if s.eng == nil {
		http.Error(w, `{"error":"suggestion engine not initialized"}`, http.StatusServiceUnavailable)
		return
	}
	var body struct {
		StreamID string `json:"streamId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.StreamID == "" {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, ok := s.streamOwner(body.StreamID)
	if !ok {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	sess.Cancel(body.StreamID)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "closed"})
}

func (s *Server) trackStream(id string, sess *session.Session) {
	s.streamMu.Lock()
	s.streams[id] = sess
	s.streamMu.Unlock()
}

func (s *Server) untrackStream(id string) {
	s.streamMu.Lock()
	delete(s.streams, id)
	s.streamMu.Unlock()
}

func (s *Server) streamOwner(id string) (*session.Session, bool) {
	s.streamMu.Lock()
	defer s.streamMu.Unlock()
	sess, ok := s.streams[id]
	return sess, ok
}

func decodeWireHistory(entries []wireHistoryEntry) (wordtype.History, error) {
	wire := make([]adapter.WireGuessEntry, len(entries))
	for i, e := range entries {
		wire[i] = adapter.WireGuessEntry{Word: e.Word, Feedback: e.Feedback.Colors}
	}
	return adapter.DecodeHistory(wire)
}

// writeSSE writes one Server-Sent Events frame: "event: name\ndata:
// json(payload)\n\n".
func writeSSE(w http.ResponseWriter, event string, payload any) {
	b, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("httpserver: failed to encode SSE payload")
		return
	}
	if _, err := w.Write([]byte("event: " + event + "\ndata: " + string(b) + "\n\n")); err != nil {
		log.Debug().Err(err).Msg("httpserver: SSE write failed (client likely disconnected)")
	}
}
