package httpserver

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-suggester/internal/engine"
	"github.com/robalobadob/wordle-suggester/internal/engineconfig"
	"github.com/robalobadob/wordle-suggester/internal/store"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	eng, err := engine.New(
		[]string{"CRANE", "SLATE", "TRACE", "STOIC"},
		[]string{"CRANE", "SLATE", "TRACE", "STOIC"},
		engineconfig.Default(), zerolog.Nop(),
	)
	require.NoError(t, err)
	return New(store.NewMemoryStore(), nil, eng, 5*time.Second, zerolog.Nop())
}

// readSSEEvents parses a text/event-stream body into (event, data) pairs.
func readSSEEvents(t *testing.T, body []byte) []struct{ Event, Data string } {
	t.Helper()
	var out []struct{ Event, Data string }
	sc := bufio.NewScanner(bytes.NewReader(body))
	var cur struct{ Event, Data string }
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			cur.Event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			cur.Data = strings.TrimPrefix(line, "data: ")
		case line == "":
			if cur.Event != "" {
				out = append(out, cur)
				cur = struct{ Event, Data string }{}
			}
		}
	}
	return out
}

func TestHandleSuggestStream_EmptyHistoryStreamsFrames(t *testing.T) {
	s := testServer(t)

	body := `{"history":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/suggest/stream", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	events := readSSEEvents(t, rec.Body.Bytes())
	require.NotEmpty(t, events)
	assert.Equal(t, "stream-created", events[0].Event)
	last := events[len(events)-1]
	assert.Equal(t, "stream-completed", last.Event)
}

func TestHandleSuggestStream_BadWordRejected(t *testing.T) {
	s := testServer(t)

	body := `{"history":[{"word":"NOPE5","feedback":{"colors":["gray","gray","gray","gray","gray"]}}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/suggest/stream", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSuggestStream_EngineNotInitialized(t *testing.T) {
	s := New(store.NewMemoryStore(), nil, nil, 5*time.Second, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/suggest/stream", strings.NewReader(`{"history":[]}`))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

// sessionFor must key by caller so unrelated clients never share (and thus
// never preempt) each other's in-flight suggestion request (spec §4.6's
// "single in-flight request per session" is per-caller, not process-wide).
func TestSessionFor_PerCallerIsolation(t *testing.T) {
	s := testServer(t)

	a1 := s.sessionFor("caller-a")
	a2 := s.sessionFor("caller-a")
	b := s.sessionFor("caller-b")

	assert.Same(t, a1, a2, "repeated lookups for the same caller must reuse one session")
	assert.NotSame(t, a1, b, "different callers must not share a session")
}

func TestHandleSuggestClose_UnknownStreamIs404(t *testing.T) {
	s := testServer(t)

	body, _ := json.Marshal(map[string]string{"streamId": "does-not-exist"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/suggest/close", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// A request-scoped stream is forgotten once its sentinel event is emitted
// (untrackStream), so /close on a streamId from an already-finished stream
// must 404 rather than succeed twice. The test reads the whole stream to its
// end before calling /close, so the streamId is only ever used after
// completion and no cancel races the engine's own completion.
func TestHandleSuggestClose_ForgottenAfterCompletion(t *testing.T) {
	s := testServer(t)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/v1/suggest/stream", "application/json", strings.NewReader(`{"history":[]}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	events := readSSEEvents(t, raw)
	require.NotEmpty(t, events)
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(events[0].Data), &payload))
	streamID, _ := payload["streamId"].(string)
	require.NotEmpty(t, streamID)

	body, _ := json.Marshal(map[string]string{"streamId": streamID})
	closeReq, err := http.Post(srv.URL+"/api/v1/suggest/close", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer closeReq.Body.Close()
	assert.Equal(t, http.StatusNotFound, closeReq.StatusCode)
}
