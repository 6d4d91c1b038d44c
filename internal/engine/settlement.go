package engine

// Settlement is the result of closing out a completed round: a bonus per
// goal-suit card held, paid out of the pot, and the rest of the pot split
// among whichever players hold the most goal-suit cards.
type Settlement struct {
	GoalSuit     Suit
	BonusPerCard int64
	Payouts      map[PlayerId]int64 // bonus + pot share, keyed by player
	PotWinners   []PlayerId         // players tied for most goal-suit cards
	PotShare     int64              // per-winner share of the pot remaining after bonuses
	PotResidual  int64              // leftover after bonuses and the winner split, left undistributed
}

// settle computes bonuses and the pot split and credits every player's
// balance accordingly, then zeroes the pot — it is fully spent once settle
// runs, including any residual, which intentionally stays uncredited to
// anyone.
func settle(l *Ledger, goalSuit Suit, bonusPerCard int64) *Settlement {
	s := &Settlement{
		GoalSuit:     goalSuit,
		BonusPerCard: bonusPerCard,
		Payouts:      make(map[PlayerId]int64, len(l.order)),
	}

	maxHeld := 0
	var totalBonus int64
	for _, id := range l.order {
		held := l.players[id].Hand[goalSuit]
		totalBonus += int64(held) * bonusPerCard
		if held > maxHeld {
			maxHeld = held
		}
	}

	if maxHeld > 0 {
		for _, id := range l.order {
			if l.players[id].Hand[goalSuit] == maxHeld {
				s.PotWinners = append(s.PotWinners, id)
			}
		}
	}

	// Bonuses are paid first, out of the pot; only what's left is split
	// among the goal-suit winners.
	remaining := l.pot - totalBonus

	if len(s.PotWinners) > 0 {
		s.PotShare = remaining / int64(len(s.PotWinners))
		s.PotResidual = remaining % int64(len(s.PotWinners))
	} else {
		// No one holds a goal-suit card: per the round's design, the
		// remaining pot is left undistributed rather than split evenly
		// among all players.
		s.PotResidual = remaining
	}

	winners := make(map[PlayerId]bool, len(s.PotWinners))
	for _, id := range s.PotWinners {
		winners[id] = true
	}

	for _, id := range l.order {
		p := l.players[id]
		bonus := int64(p.Hand[goalSuit]) * bonusPerCard
		payout := bonus
		if winners[id] {
			payout += s.PotShare
		}
		p.Balance += payout
		s.Payouts[id] = payout
	}

	l.pot = 0

	return s
}
