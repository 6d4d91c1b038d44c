package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSettleScenarioS6 reproduces the settlement worked example: goal_suit
// hearts, holdings {A:4,B:3,C:2,D:1}, pot 200, bonus 10/card. Bonuses total
// 100, leaving 100 for the single max-holder A.
func TestSettleScenarioS6(t *testing.T) {
	l := newLedger()
	holdings := map[PlayerId]int{"A": 4, "B": 3, "C": 2, "D": 1}
	for _, id := range []PlayerId{"A", "B", "C", "D"} {
		p := newPlayer(id, string(id))
		p.Hand[Hearts] = holdings[id]
		l.seat(p)
	}
	l.pot = 200

	s := settle(l, Hearts, 10)

	assert.Equal(t, []PlayerId{"A"}, s.PotWinners)
	assert.Equal(t, int64(100), s.PotShare)
	assert.Equal(t, int64(0), s.PotResidual)
	assert.Equal(t, int64(40+100), s.Payouts["A"])
	assert.Equal(t, int64(30), s.Payouts["B"])
	assert.Equal(t, int64(20), s.Payouts["C"])
	assert.Equal(t, int64(10), s.Payouts["D"])
	assert.Equal(t, int64(0), l.pot)
}

func TestSettleTiedWinnersSplitPotEvenly(t *testing.T) {
	l := newLedger()
	for _, id := range []PlayerId{"A", "B"} {
		p := newPlayer(id, string(id))
		p.Hand[Hearts] = 2
		l.seat(p)
	}
	l.pot = 101

	s := settle(l, Hearts, 10)

	// Bonuses total 40 (2 cards * 10 each, for both A and B), leaving 61 to
	// split between the two tied winners.
	assert.ElementsMatch(t, []PlayerId{"A", "B"}, s.PotWinners)
	assert.Equal(t, int64(30), s.PotShare)
	assert.Equal(t, int64(1), s.PotResidual)
}

func TestSettleNoGoalSuitHoldersLeavesPotUndistributed(t *testing.T) {
	l := newLedger()
	for _, id := range []PlayerId{"A", "B"} {
		p := newPlayer(id, string(id))
		l.seat(p)
	}
	l.pot = 100

	s := settle(l, Hearts, 10)

	assert.Empty(t, s.PotWinners)
	assert.Equal(t, int64(0), s.PotShare)
	assert.Equal(t, int64(100), s.PotResidual)
	assert.Equal(t, int64(0), s.Payouts["A"])
}
