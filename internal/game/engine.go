// internal/game/engine.go
//
// Word validation for Boggle.
// Responsibilities:
//   - Reject words below the minimum length.
//   - Reject words missing from the dictionary.
//   - Trace the word over the board: each step moves to one of the 8
//     neighbouring cells and no cell is used twice in one path.
//
// Ordering matters: length, then dictionary, then board. A word that is
// both unknown and untraceable is reported as not-word.
//
// Nothing here mutates the board or dictionary, so one Validator can be
// shared by every request.

package game

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/boggle/apps/go-server/internal/board"
	"github.com/robalobadob/boggle/apps/go-server/internal/words"
)

// Validator checks submitted words against a shared dictionary.
type Validator struct {
	Dict   *words.Dictionary
	MinLen int
}

// NewValidator returns a Validator; minLen < 1 falls back to DefaultMinLen.
func NewValidator(dict *words.Dictionary, minLen int) *Validator {
	if minLen < 1 {
		minLen = DefaultMinLen
	}
	return &Validator{Dict: dict, MinLen: minLen}
}

// CheckValidWord validates word with the default minimum length.
func CheckValidWord(b board.Board, dict *words.Dictionary, word string) Verdict {
	return NewValidator(dict, DefaultMinLen).Validate(b, word)
}

// Validate returns the verdict for word on b.
func (v *Validator) Validate(b board.Board, word string) Verdict {
	word = strings.TrimSpace(word)
	if utf8.RuneCountInString(word) < v.MinLen {
		return VerdictTooShort
	}
	if !v.Dict.Contains(word) {
		return VerdictNotWord
	}
	if !Find(b, word) {
		return VerdictNotOnBoard
	}
	return VerdictOK
}

// Find reports whether word can be traced anywhere on b.
func Find(b board.Board, word string) bool {
	if word == "" {
		return false
	}
	w := strings.ToUpper(word)
	for r := range b {
		for c := range b[r] {
			if b[r][c] != w[0] {
				continue
			}
			if search(b, w, board.Coord{Row: r, Col: c}, Seen{}) {
				return true
			}
		}
	}
	return false
}

// FindFrom reports whether word can be traced starting at (row, col)
// without entering any cell in seen. The caller's seen set is not modified.
func FindFrom(b board.Board, word string, row, col int, seen Seen) bool {
	if word == "" {
		return false
	}
	own := make(Seen, len(seen)+len(word))
	for c := range seen {
		own[c] = struct{}{}
	}
	return search(b, strings.ToUpper(word), board.Coord{Row: row, Col: col}, own)
}

// search is a depth-first trace of w from at. Cells are added to seen on
// the way down and removed on the way back, so sibling branches only ever
// see the cells of their common ancestors.
func search(b board.Board, w string, at board.Coord, seen Seen) bool {
	if !b.InBounds(at.Row, at.Col) {
		return false
	}
	if _, used := seen[at]; used {
		return false
	}
	if b.At(at) != w[0] {
		return false
	}
	if len(w) == 1 {
		return true
	}

	seen[at] = struct{}{}
	defer delete(seen, at)

	for _, d := range board.NeighborOffsets {
		next := board.Coord{Row: at.Row + d.Row, Col: at.Col + d.Col}
		if search(b, w[1:], next, seen) {
			return true
		}
	}
	return false
}

// Solve lists every dictionary word of at least minLen letters that can be
// traced on b, sorted alphabetically.
func Solve(b board.Board, dict *words.Dictionary, minLen int) []string {
	if minLen < 1 {
		minLen = DefaultMinLen
	}
	var letters [26]bool
	for _, row := range b {
		for _, ch := range row {
			if ch >= 'A' && ch <= 'Z' {
				letters[ch-'A'] = true
			}
		}
	}
	var out []string
	for _, w := range dict.Words() {
		if utf8.RuneCountInString(w) < minLen || !onlyLetters(w, &letters) {
			continue
		}
		if Find(b, w) {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}

// onlyLetters reports whether every letter of lowercase w appears on the board.
func onlyLetters(w string, present *[26]bool) bool {
	for i := 0; i < len(w); i++ {
		ch := w[i]
		if ch < 'a' || ch > 'z' || !present[ch-'a'] {
			return false
		}
	}
	return true
}

// Score returns the points for an accepted word: one per letter (rune).
func Score(word string) int {
	return utf8.RuneCountInString(strings.TrimSpace(word))
}
