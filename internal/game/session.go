package game

import (
	"slices"
	"strings"
	"time"

	"github.com/robalobadob/boggle/apps/go-server/internal/board"
)

// NewSession starts a round on b that lasts for d from now.
func NewSession(id string, b board.Board, now time.Time, d time.Duration) *Session {
	return &Session{
		ID:        id,
		Board:     b,
		StartedAt: now.UTC(),
		EndsAt:    now.UTC().Add(d),
		Found:     []string{},
	}
}

// Over reports whether the round has ended at now.
func (s *Session) Over(now time.Time) bool {
	return !now.Before(s.EndsAt)
}

// Remaining returns the time left in the round, never negative.
func (s *Session) Remaining(now time.Time) time.Duration {
	if s.Over(now) {
		return 0
	}
	return s.EndsAt.Sub(now)
}

// HasFound reports whether word was already accepted this round.
func (s *Session) HasFound(word string) bool {
	return slices.Contains(s.Found, strings.ToLower(strings.TrimSpace(word)))
}

// Submit checks word for this round and records it when accepted.
//
// Checks run in order: the deadline (ErrGameOver), repeats (ErrAlreadyFound),
// then the validator. Only VerdictOK changes the score or the found list.
func (s *Session) Submit(v *Validator, word string, now time.Time) (Verdict, error) {
	if s.Over(now) {
		return "", ErrGameOver
	}
	if s.HasFound(word) {
		return "", ErrAlreadyFound
	}
	verdict := v.Validate(s.Board, word)
	if verdict == VerdictOK {
		s.Found = append(s.Found, strings.ToLower(strings.TrimSpace(word)))
		s.Score += Score(word)
	}
	return verdict, nil
}

// Missed returns the words on the board that were not found this round.
func (s *Session) Missed(v *Validator) []string {
	var out []string
	for _, w := range Solve(s.Board, v.Dict, v.MinLen) {
		if !slices.Contains(s.Found, w) {
			out = append(out, w)
		}
	}
	return out
}

// Clone returns a deep copy so stores never share mutable state with callers.
func (s *Session) Clone() *Session {
	c := *s
	c.Board = make(board.Board, len(s.Board))
	for r, row := range s.Board {
		c.Board[r] = slices.Clone(row)
	}
	c.Found = slices.Clone(s.Found)
	if c.Found == nil {
		c.Found = []string{}
	}
	return &c
}
