// Package adapter implements the External Adapter Layer's in-process
// messaging transport (spec §4.7, §6.2): the worker-message protocol,
// modeled as msgpack-tagged Go structs that round-trip through
// github.com/vmihailenco/msgpack/v5, exchanged between a Supervisor
// goroutine and the per-request workers it spawns and cancels.
package adapter

import "math"

// MsgType is the wire discriminator carried by every envelope.
type MsgType string

const (
	MsgInit          MsgType = "INIT"
	MsgSolve         MsgType = "SOLVE"
	MsgCancel        MsgType = "CANCEL"
	MsgInitComplete  MsgType = "INIT_COMPLETE"
	MsgSolveComplete MsgType = "SOLVE_COMPLETE"
	MsgError         MsgType = "ERROR"
)

// SentinelScore is the wire encoding of a forced-win's +Inf score (spec
// §6.2): "the largest finite value of the wire numeric type." Receivers
// MUST treat values at or above this as the sentinel.
const SentinelScore = math.MaxFloat64

// InitMsg is the main-to-compute handshake carrying both word universes.
type InitMsg struct {
	Type    MsgType  `msgpack:"type"`
	Answers []string `msgpack:"answers"`
	Guesses []string `msgpack:"guesses"`
}

// WireGuessEntry is one history row: an uppercase word and its five
// per-letter colors, lowercased "gray"/"yellow"/"green" on the wire.
type WireGuessEntry struct {
	Word     string   `msgpack:"word"`
	Feedback []string `msgpack:"feedback"`
}

// SolveMsg requests a single-shot suggestion computation.
type SolveMsg struct {
	Type          MsgType          `msgpack:"type"`
	RequestID     string           `msgpack:"requestId"`
	History       []WireGuessEntry `msgpack:"history"`
	StrictGuesses bool             `msgpack:"strictGuesses,omitempty"`
	TypedPrefix   string           `msgpack:"typedPrefix,omitempty"`
}

// CancelMsg preempts an in-flight SOLVE by requestId.
type CancelMsg struct {
	Type      MsgType `msgpack:"type"`
	RequestID string  `msgpack:"requestId"`
}

// InitCompleteMsg acknowledges a successful INIT.
type InitCompleteMsg struct {
	Type MsgType `msgpack:"type"`
}

// WireSuggestion is one ranked candidate on the wire.
type WireSuggestion struct {
	Word  string  `msgpack:"word"`
	Score float64 `msgpack:"score"`
}

// SolveCompleteMsg carries a finished computation's ranked suggestions.
type SolveCompleteMsg struct {
	Type             MsgType          `msgpack:"type"`
	RequestID        string           `msgpack:"requestId"`
	Suggestions      []WireSuggestion `msgpack:"suggestions"`
	RemainingAnswers int              `msgpack:"remainingAnswers"`
}

// ErrorMsg reports a failure confined to RequestID (empty for INIT errors).
type ErrorMsg struct {
	Type      MsgType `msgpack:"type"`
	RequestID string  `msgpack:"requestId,omitempty"`
	Error     string  `msgpack:"error"`
}

// encodeScore maps a computed score onto its wire representation,
// collapsing the forced-win +Inf sentinel to SentinelScore.
func encodeScore(f float64) float64 {
	if math.IsInf(f, 1) {
		return SentinelScore
	}
	return f
}

// decodeScore is encodeScore's inverse: values at or above SentinelScore map
// back to +Inf. The Supervisor only encodes scores, so nothing in this
// package calls it; it is kept beside the sentinel's definition.
func decodeScore(f float64) float64 {
	if f >= SentinelScore {
		return math.Inf(1)
	}
	return f
}
