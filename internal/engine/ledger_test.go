package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T, balances ...int64) *Ledger {
	t.Helper()
	l := newLedger()
	names := []string{"alice", "bob", "carol", "dave"}
	for i, bal := range balances {
		p := newPlayer(PlayerId(names[i]), names[i])
		p.Balance = bal
		l.seat(p)
	}
	return l
}

func TestLedgerAnteAllConservesTotal(t *testing.T) {
	l := newTestLedger(t, 500, 500, 500, 500)
	before := l.total()

	require.NoError(t, l.anteAll(50))

	assert.Equal(t, before, l.total())
	assert.Equal(t, int64(200), l.pot)
	assert.Equal(t, int64(450), l.players["alice"].Balance)
}

func TestLedgerAnteAllFailsOnInsufficientBalance(t *testing.T) {
	l := newTestLedger(t, 10)
	err := l.anteAll(50)
	assert.Error(t, err)
}

func TestLedgerSettleTradeMovesCardAndCash(t *testing.T) {
	l := newTestLedger(t, 500, 500)
	l.players["bob"].Hand[Hearts] = 1

	err := l.settleTrade(&Trade{Buyer: "alice", Seller: "bob", Suit: Hearts, Price: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(490), l.players["alice"].Balance)
	assert.Equal(t, int64(510), l.players["bob"].Balance)
	assert.Equal(t, 1, l.players["alice"].Hand[Hearts])
	assert.Equal(t, 0, l.players["bob"].Hand[Hearts])
}

func TestLedgerSettleTradeRejectsUndeliverableCard(t *testing.T) {
	l := newTestLedger(t, 500, 500)
	err := l.settleTrade(&Trade{Buyer: "alice", Seller: "bob", Suit: Hearts, Price: 10})
	assert.Error(t, err)
	var invErr *InvariantError
	assert.ErrorAs(t, err, &invErr)
}

func TestLedgerCardTotal(t *testing.T) {
	l := newTestLedger(t, 500, 500)
	l.players["alice"].Hand[Spades] = 3
	l.players["bob"].Hand[Spades] = 2
	assert.Equal(t, 5, l.cardTotal(Spades))
}
