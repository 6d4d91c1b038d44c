package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LSeaburg/FiggieServer/internal/engine"
)

func TestSaveAndRetrieveRound(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()

	rec := RoundRecord{
		RoundID:         "r1",
		GoalSuit:        engine.Hearts,
		DealFingerprint: "abc123",
		Pot:             200,
		Payouts:         map[engine.PlayerId]int64{"A": 140, "B": 30},
		PotWinners:      []engine.PlayerId{"A"},
	}
	require.NoError(t, s.SaveRound(rec))

	got, ok, err := s.RoundByID("r1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec.GoalSuit, got.GoalSuit)
	assert.Equal(t, rec.DealFingerprint, got.DealFingerprint)
	assert.Equal(t, rec.Pot, got.Pot)
	assert.Equal(t, rec.Payouts, got.Payouts)
	assert.Equal(t, rec.PotWinners, got.PotWinners)
}

func TestRoundByIDMissing(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.RoundByID("nonexistent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHandleEventArchivesCompletedRound(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()

	s.HandleEvent(engine.Event{
		Type:    engine.EventRoundCompleted,
		RoundID: "r2",
		DealFP:  "fp",
		Settled: &engine.Settlement{
			GoalSuit:   engine.Spades,
			Payouts:    map[engine.PlayerId]int64{"A": 10},
			PotWinners: []engine.PlayerId{"A"},
			PotShare:   10,
		},
	})

	got, ok, err := s.RoundByID("r2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, engine.Spades, got.GoalSuit)
}
