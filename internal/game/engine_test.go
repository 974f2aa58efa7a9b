package game_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/boggle/apps/go-server/internal/board"
	"github.com/robalobadob/boggle/apps/go-server/internal/game"
	"github.com/robalobadob/boggle/apps/go-server/internal/words"
)

// sampleBoard is the fixed 5×5 grid used throughout these tests:
//
//	Y Y Z I H
//	Y H C N G
//	G V S S M
//	F N B U I
//	P M J X V
func sampleBoard(t *testing.T) board.Board {
	t.Helper()
	b, err := board.Parse([][]string{
		{"Y", "Y", "Z", "I", "H"},
		{"Y", "H", "C", "N", "G"},
		{"G", "V", "S", "S", "M"},
		{"F", "N", "B", "U", "I"},
		{"P", "M", "J", "X", "V"},
	})
	require.NoError(t, err)
	return b
}

func sampleDict() *words.Dictionary {
	return words.New("bus", "zinc", "apple", "sub", "né", "café")
}

func TestCheckValidWord(t *testing.T) {
	b := sampleBoard(t)
	d := sampleDict()

	cases := []struct {
		word string
		want game.Verdict
	}{
		{"bus", game.VerdictOK},
		{"BUS", game.VerdictOK},
		{" zinc ", game.VerdictOK},
		{"apple", game.VerdictNotOnBoard},
		{"yyzih", game.VerdictNotWord},
		{"bu", game.VerdictTooShort},
		{"", game.VerdictTooShort},
		{"fnbui", game.VerdictNotWord},
		{"né", game.VerdictTooShort},
		{"café", game.VerdictNotOnBoard},
	}
	for _, tc := range cases {
		t.Run(tc.word, func(t *testing.T) {
			assert.Equal(t, tc.want, game.CheckValidWord(b, d, tc.word))
		})
	}
}

// TestCheckValidWord_DictionaryFirst verifies that a word absent from the
// dictionary is reported as not-word even when it also has no path.
func TestCheckValidWord_DictionaryFirst(t *testing.T) {
	b := sampleBoard(t)
	assert.Equal(t, game.VerdictNotWord, game.CheckValidWord(b, words.New("bus"), "apple"))
	// A traceable word missing from the dictionary is still not-word.
	assert.Equal(t, game.VerdictNotWord, game.CheckValidWord(b, words.New(), "bus"))
}

func TestValidator_MinLen(t *testing.T) {
	b := sampleBoard(t)
	v := game.NewValidator(sampleDict(), 4)
	assert.Equal(t, game.VerdictTooShort, v.Validate(b, "bus"))
	assert.Equal(t, game.VerdictOK, v.Validate(b, "zinc"))

	// Too short wins even with an empty dictionary and an empty board.
	assert.Equal(t, game.VerdictTooShort, game.NewValidator(nil, 0).Validate(nil, "ab"))
}

func TestFindFrom(t *testing.T) {
	b := sampleBoard(t)

	assert.True(t, game.FindFrom(b, "ZINC", 0, 2, game.Seen{}))
	assert.True(t, game.FindFrom(b, "BUS", 3, 2, game.Seen{}))
	assert.False(t, game.FindFrom(b, "ZINC", 0, 0, game.Seen{}))
	assert.False(t, game.FindFrom(b, "BUS", 0, 0, game.Seen{}))
	assert.True(t, game.FindFrom(b, "zinc", 0, 2, nil), "lowercase input is accepted")
}

func TestFindFrom_OutOfBounds(t *testing.T) {
	b := sampleBoard(t)
	for _, rc := range [][2]int{{-1, 0}, {0, -1}, {5, 0}, {0, 5}} {
		assert.False(t, game.FindFrom(b, "Y", rc[0], rc[1], game.Seen{}))
	}
	assert.False(t, game.FindFrom(b, "", 0, 0, game.Seen{}))
}

// TestFindFrom_RespectsSeen checks that cells already in seen are not
// entered and that the caller's set is left untouched.
func TestFindFrom_RespectsSeen(t *testing.T) {
	b := sampleBoard(t)
	seen := game.Seen{{Row: 1, Col: 3}: {}} // the only N next to I

	assert.False(t, game.FindFrom(b, "ZINC", 0, 2, seen))
	assert.Len(t, seen, 1)

	start := game.Seen{{Row: 0, Col: 2}: {}}
	assert.False(t, game.FindFrom(b, "ZINC", 0, 2, start), "start cell already used")
}

// TestFind_NoCellReuse ensures a single letter cell cannot serve twice in one path.
func TestFind_NoCellReuse(t *testing.T) {
	b, err := board.Parse([][]string{{"A", "B"}, {"C", "D"}})
	require.NoError(t, err)

	assert.True(t, game.Find(b, "ABDC"))
	assert.True(t, game.Find(b, "ADBC"), "diagonal steps are adjacent")
	assert.False(t, game.Find(b, "ABA"))
	assert.False(t, game.Find(b, "AA"))
}

// TestFind_SiblingBranchesIndependent builds a board where the first branch
// explored visits a cell that the successful branch needs later.
func TestFind_SiblingBranchesIndependent(t *testing.T) {
	b, err := board.Parse([][]string{
		{"A", "B", "X"},
		{"B", "C", "X"},
		{"X", "X", "X"},
	})
	require.NoError(t, err)

	// ABCB needs both B cells. Whichever B the search takes first, the
	// other must still be available once C is reached.
	assert.True(t, game.Find(b, "ABCB"))
	assert.False(t, game.Find(b, "ABCBA"))
}

func TestFind_NoWraparound(t *testing.T) {
	b, err := board.Parse([][]string{
		{"A", "X", "B"},
		{"X", "X", "X"},
		{"C", "X", "X"},
	})
	require.NoError(t, err)
	assert.False(t, game.Find(b, "AB"), "left and right edges are not adjacent")
	assert.False(t, game.Find(b, "AC"), "top and bottom edges are not adjacent")
}

func TestFind_FirstLetterAbsent(t *testing.T) {
	b := sampleBoard(t)
	assert.False(t, game.Find(b, "APPLE"))
	assert.True(t, game.Find(b, "BUS"))
	assert.True(t, game.Find(b, "ZINC"))
}

func TestSolve(t *testing.T) {
	b := sampleBoard(t)
	got := game.Solve(b, sampleDict(), game.DefaultMinLen)
	assert.Equal(t, []string{"bus", "sub", "zinc"}, got)

	assert.Equal(t, []string{"zinc"}, game.Solve(b, sampleDict(), 4))
}

func TestScore(t *testing.T) {
	cases := []struct {
		word string
		want int
	}{
		{"bus", 3},
		{" zinc ", 4},
		{"café", 4},
		{"né", 2},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, game.Score(tc.word), tc.word)
	}
}

// TestValidate_Concurrent shares one board and dictionary across goroutines.
func TestValidate_Concurrent(t *testing.T) {
	b := sampleBoard(t)
	v := game.NewValidator(sampleDict(), game.DefaultMinLen)
	want := map[string]game.Verdict{
		"bus":   game.VerdictOK,
		"zinc":  game.VerdictOK,
		"apple": game.VerdictNotOnBoard,
		"yyzih": game.VerdictNotWord,
		"bu":    game.VerdictTooShort,
	}

	var wg sync.WaitGroup
	errs := make(chan string, 50*len(want))
	for i := 0; i < 50; i++ {
		for w, verdict := range want {
			wg.Add(1)
			go func(w string, verdict game.Verdict) {
				defer wg.Done()
				if got := v.Validate(b, w); got != verdict {
					errs <- w + ": " + string(got)
				}
			}(w, verdict)
		}
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}
