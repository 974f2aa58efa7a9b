package game_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/boggle/apps/go-server/internal/game"
)

func TestSession_Submit(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := game.NewSession("s1", sampleBoard(t), now, 2*time.Minute)
	v := game.NewValidator(sampleDict(), game.DefaultMinLen)

	verdict, err := s.Submit(v, "bus", now.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, game.VerdictOK, verdict)
	assert.Equal(t, 3, s.Score)
	assert.Equal(t, []string{"bus"}, s.Found)

	// Rejected verdicts never score.
	for _, w := range []string{"fn", "yyzih", "apple"} {
		verdict, err = s.Submit(v, w, now.Add(time.Second))
		require.NoError(t, err)
		assert.NotEqual(t, game.VerdictOK, verdict, w)
	}
	assert.Equal(t, 3, s.Score)

	_, err = s.Submit(v, "BUS", now.Add(2*time.Second))
	assert.ErrorIs(t, err, game.ErrAlreadyFound)

	verdict, err = s.Submit(v, "zinc", now.Add(3*time.Second))
	require.NoError(t, err)
	assert.Equal(t, game.VerdictOK, verdict)
	assert.Equal(t, 7, s.Score)
	assert.Equal(t, []string{"bus", "zinc"}, s.Found)
}

// TestSession_GameOverFirst checks that an expired round rejects even a
// repeated word with ErrGameOver.
func TestSession_GameOverFirst(t *testing.T) {
	now := time.Now()
	s := game.NewSession("s2", sampleBoard(t), now.Add(-3*time.Minute), 2*time.Minute)
	s.Found = []string{"bus"}
	s.Score = 100
	v := game.NewValidator(sampleDict(), game.DefaultMinLen)

	_, err := s.Submit(v, "zinc", now)
	assert.ErrorIs(t, err, game.ErrGameOver)
	_, err = s.Submit(v, "bus", now)
	assert.ErrorIs(t, err, game.ErrGameOver)
	assert.Equal(t, 100, s.Score)
}

func TestSession_Timing(t *testing.T) {
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	s := game.NewSession("s3", sampleBoard(t), now, time.Minute)

	assert.False(t, s.Over(now))
	assert.Equal(t, time.Minute, s.Remaining(now))
	assert.True(t, s.Over(now.Add(time.Minute)))
	assert.Zero(t, s.Remaining(now.Add(2*time.Minute)))
}

func TestSession_Missed(t *testing.T) {
	now := time.Now()
	s := game.NewSession("s4", sampleBoard(t), now, time.Minute)
	v := game.NewValidator(sampleDict(), game.DefaultMinLen)

	_, err := s.Submit(v, "sub", now)
	require.NoError(t, err)
	assert.Equal(t, []string{"bus", "zinc"}, s.Missed(v))
}

func TestSession_Clone(t *testing.T) {
	s := game.NewSession("s5", sampleBoard(t), time.Now(), time.Minute)
	s.Found = append(s.Found, "bus")

	c := s.Clone()
	c.Found[0] = "zinc"
	c.Board[0][0] = 'Q'

	assert.Equal(t, "bus", s.Found[0])
	assert.Equal(t, byte('Y'), s.Board[0][0])
}
