// Package daily derives the shared "board of the day".
//
// Every player who starts a daily round on the same UTC date gets the same
// board: the date key is hashed with a server-side salt (keyed BLAKE2b) and
// the digest seeds the board generator.
package daily

import (
	"encoding/binary"
	"math/rand/v2"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/robalobadob/boggle/apps/go-server/internal/board"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns two 64-bit seeds from BLAKE2b-256(key=salt, DateKey(t)).
func Seed(t time.Time, salt string) (uint64, uint64) {
	key := []byte(salt)
	if len(key) > blake2b.Size {
		k := blake2b.Sum256(key)
		key = k[:]
	}
	h, err := blake2b.New256(key)
	if err != nil {
		// Only reachable with an oversized key, which is folded above.
		panic(err)
	}
	h.Write([]byte(DateKey(t)))
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8]), binary.BigEndian.Uint64(sum[8:16])
}

// Board returns the size×size board for the date of t.
func Board(t time.Time, salt string, size int) board.Board {
	s1, s2 := Seed(t, salt)
	return board.Generate(size, rand.New(rand.NewPCG(s1, s2)))
}
