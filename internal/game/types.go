// internal/game/types.go
//
// Core type definitions for the Boggle game engine.
// Defines:
//   - Verdict: outcome of validating one submitted word.
//   - Seen: coordinates already used by the path being traced.
//   - Session: state for a single timed round.

package game

import (
	"errors"
	"time"

	"github.com/robalobadob/boggle/apps/go-server/internal/board"
)

// Verdict is the result of checking a word against a board and dictionary.
type Verdict string

const (
	VerdictOK         Verdict = "ok"
	VerdictNotWord    Verdict = "not-word"
	VerdictNotOnBoard Verdict = "not-on-board"
	VerdictTooShort   Verdict = "too-short"
)

// DefaultMinLen is the shortest word that can score.
const DefaultMinLen = 3

// Seen is the set of cells used by the current path.
type Seen map[board.Coord]struct{}

var (
	ErrGameOver     = errors.New("game is already over")
	ErrAlreadyFound = errors.New("word has already been found")
)

// Session holds one player's round: the board, the deadline, and progress.
type Session struct {
	ID        string
	Board     board.Board
	Daily     bool
	StartedAt time.Time
	EndsAt    time.Time
	Score     int
	Found     []string // lowercase, in submission order
}
