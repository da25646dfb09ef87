// Core game engine for a single Wordle session.
// Responsibilities:
//   - Create new games with deterministic dimensions (6x5).
//   - Validate and apply guesses (length, alphabetic, allowed list).
//   - Score guesses using the classic two‑pass Wordle algorithm.
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - Answers/allowed lists are provided by the words package.
//   - Mark is an enum defined in this package (MarkHit/MarkPresent/MarkMiss).
//   - randomID() is a compact hex identifier for correlating server state.
//
// Package-level defaults are kept here for clarity.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/robalobadob/wordle-suggester/internal/oracle"
	"github.com/robalobadob/wordle-suggester/internal/wordtype"
	"github.com/robalobadob/wordle-suggester/internal/words"
)

const (
	defaultRows = 6
	defaultCols = 5
)

// New constructs a new game instance.
// If withAnswer is empty, a random answer is chosen from the words package.
func New(withAnswer string) *Game {
	ans := withAnswer
	if ans == "" {
		ans = words.RandomAnswer()
	}
	return &Game {
		ID:      randomID(),
		Answer:  strings.ToLower(ans),
		Rows:    defaultRows,
		Cols:    defaultCols,
		Guesses: []string{},
	}
}

// ApplyGuess validates and scores a guess, mutating the game state.
// Returns: the per‑letter marks, the new state string ("playing"/"won"/"lost"), or an error.
//
// Validation rules:
//   - Game must not be finished.
//   - Guess must be exactly g.Cols letters and alphabetic a–z.
//   - Guess must be present in the allowed list.
//
// State transitions:
//   - If all tiles are Hit → Finished = true, Won = true.
//   - Else if the number of guesses reaches g.Rows → Finished = true (loss).
func (g *Game) ApplyGuess(guess string) ([]Mark, string, error) {
	if g.Finished {
		return nil, g.state(), errors.New("game finished")
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if len(guess) != g.Cols || !isAlpha(guess) {
		return nil, g.state(), errors.New("invalid guess")
	}
	if !words.IsAllowed(guess) {
		return nil, g.state(), errors.New("not in word list")
	}

	marks := scoreGuess(g.Answer, guess)
	g.Guesses = append(g.Guesses, guess)

	if allHit(marks) {
		g.Finished, g.Won = true, true
	} else if len(g.Guesses) >= g.Rows {
		g.Finished = true
	}
	return marks, g.state(), nil
}

// state reports a coarse string representation of the current game state.
func (g *Game) state() string {
	if g.Finished {
		if g.Won {
			return "won"
		}
		return "lost"
	}
	return "playing"
}

// scoreGuess delegates to the engine's feedback oracle (internal/oracle),
// so the practice game and the suggestion engine always agree on what a
// guess means against an answer. answer/guess are validated 5-letter
// lowercase words by the time they reach here.
func scoreGuess(answer, guess string) []Mark {
	a, err := wordtype.NewWord(answer)
	if err != nil {
		return make([]Mark, len(guess))
	}
	g, err := wordtype.NewWord(guess)
	if err != nil {
		return make([]Mark, len(guess))
	}
	fb := oracle.Score(a, g)
	res := make([]Mark, len(fb))
	for i, c := range fb {
		switch c {
		case wordtype.Green:
			res[i] = MarkHit
		case wordtype.Yellow:
			res[i] = MarkPresent
		default:
			res[i] = MarkMiss
		}
	}
	return res
}

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// allHit returns true if all marks are MarkHit.
func allHit(m []Mark) bool {
	for _, x := range m {
		if x != MarkHit {
			return false
		}
	}
	return true
}

// randomID returns a compact 16‑hex‑char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
