// internal/board/board.go
//
// Letter grid used by a single Boggle session.
// Responsibilities:
//   - Represent an N×N grid of uppercase A–Z letters.
//   - Generate random boards (independent, uniform letter per cell).
//   - Convert to/from the JSON shape used by the web client ([][]string).
//
// A Board is never mutated after it is generated or parsed.

package board

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// DefaultSize is the board edge length used by the classic game.
const DefaultSize = 5

var (
	ErrEmptyBoard = errors.New("board: must have at least one row")
	ErrNotSquare  = errors.New("board: rows and columns must have the same length")
	ErrBadCell    = errors.New("board: every cell must be a single letter A-Z")
)

// Coord addresses a cell by row and column (0-based, row 0 is the top).
type Coord struct {
	Row, Col int
}

// NeighborOffsets lists the 8 Moore-neighbourhood offsets (N, NE, E, SE, S, SW, W, NW).
var NeighborOffsets = [8]Coord{
	{-1, 0}, {-1, 1}, {0, 1}, {1, 1},
	{1, 0}, {1, -1}, {0, -1}, {-1, -1},
}

// Board is a square grid of uppercase ASCII letters, indexed [row][col].
type Board [][]byte

// Generate returns a size×size board with every cell drawn uniformly from A–Z.
// A nil rng draws from the process-wide source. Sizes below 1 are clamped to 1.
func Generate(size int, rng *rand.Rand) Board {
	if size < 1 {
		size = 1
	}
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	b := make(Board, size)
	for r := range b {
		b[r] = make([]byte, size)
		for c := range b[r] {
			b[r][c] = byte('A' + intN(26))
		}
	}
	return b
}

// Parse builds a Board from the client's [][]string form.
// Letters are upper-cased; the grid must be square and non-empty.
func Parse(rows [][]string) (Board, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyBoard
	}
	b := make(Board, len(rows))
	for r, row := range rows {
		if len(row) != len(rows) {
			return nil, fmt.Errorf("row %d has %d cells: %w", r, len(row), ErrNotSquare)
		}
		b[r] = make([]byte, len(row))
		for c, cell := range row {
			if len(cell) != 1 {
				return nil, fmt.Errorf("cell (%d,%d)=%q: %w", r, c, cell, ErrBadCell)
			}
			ch := upper(cell[0])
			if ch < 'A' || ch > 'Z' {
				return nil, fmt.Errorf("cell (%d,%d)=%q: %w", r, c, cell, ErrBadCell)
			}
			b[r][c] = ch
		}
	}
	return b, nil
}

// Size reports the edge length of the board.
func (b Board) Size() int { return len(b) }

// InBounds reports whether (row, col) addresses a cell of the board.
func (b Board) InBounds(row, col int) bool {
	return row >= 0 && row < len(b) && col >= 0 && col < len(b[row])
}

// At returns the letter at c. Callers must check InBounds first.
func (b Board) At(c Coord) byte { return b[c.Row][c.Col] }

// Rows returns the board as rows of one-letter strings (the JSON wire shape).
func (b Board) Rows() [][]string {
	out := make([][]string, len(b))
	for r, row := range b {
		out[r] = make([]string, len(row))
		for c, ch := range row {
			out[r][c] = string(ch)
		}
	}
	return out
}

// String renders the board one row per line, e.g. "YYZIH\nYHCNG\n…".
func (b Board) String() string {
	buf := make([]byte, 0, len(b)*(len(b)+1))
	for r, row := range b {
		if r > 0 {
			buf = append(buf, '\n')
		}
		buf = append(buf, row...)
	}
	return string(buf)
}

func upper(ch byte) byte {
	if ch >= 'a' && ch <= 'z' {
		return ch - 'a' + 'A'
	}
	return ch
}
