package daily_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/boggle/apps/go-server/internal/daily"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	assert.Equal(t, "2026-03-01", daily.DateKey(time.Date(2026, 3, 2, 5, 0, 0, 0, loc)))
}

func TestBoard_StablePerDay(t *testing.T) {
	morning := time.Date(2026, 5, 4, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 5, 4, 23, 0, 0, 0, time.UTC)
	tomorrow := morning.Add(24 * time.Hour)

	a := daily.Board(morning, "salt", 5)
	assert.Equal(t, a, daily.Board(evening, "salt", 5))
	assert.NotEqual(t, a, daily.Board(tomorrow, "salt", 5))
	assert.NotEqual(t, a, daily.Board(morning, "other-salt", 5))
	assert.Equal(t, 5, a.Size())
}

func TestSeed_LongSalt(t *testing.T) {
	day := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	long := strings.Repeat("x", 200)
	s1, s2 := daily.Seed(day, long)
	t1, t2 := daily.Seed(day, long)
	assert.Equal(t, s1, t1)
	assert.Equal(t, s2, t2)
}
