package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckCompositionGoalIsRareCompanion(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		counts, goalSuit := deckComposition(rng)

		total := 0
		rareSuit := Suit("")
		for _, s := range Suits {
			total += counts[s]
			if counts[s] == 8 {
				rareSuit = s
			}
		}
		require.NotEmpty(t, rareSuit)
		assert.Equal(t, 40, total)
		assert.Equal(t, 12, counts[goalSuit])
		assert.Equal(t, rareSuit.Companion(), goalSuit)
	}
}

func TestDealHandsDealsAllCardsEvenly(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	players := []PlayerId{"a", "b", "c", "d"}
	counts := map[Suit]int{Spades: 12, Clubs: 10, Hearts: 10, Diamonds: 8}

	hands := dealHands(rng, players, counts)

	total := 0
	for _, id := range players {
		n := len(hands[id])
		assert.GreaterOrEqual(t, n, 10)
		assert.LessOrEqual(t, n, 10)
		total += n
	}
	assert.Equal(t, 40, total)

	bySuit := map[Suit]int{}
	for _, id := range players {
		for _, s := range hands[id] {
			bySuit[s]++
		}
	}
	assert.Equal(t, counts, bySuit)
}

func TestFingerprintDeterministicAndOrderIndependent(t *testing.T) {
	hands := map[PlayerId][]Suit{
		"a": {Spades, Spades, Hearts},
		"b": {Clubs},
	}
	fp1 := fingerprint([]PlayerId{"a", "b"}, hands)
	fp2 := fingerprint([]PlayerId{"b", "a"}, hands)
	assert.Equal(t, fp1, fp2)
	assert.Len(t, fp1, 64)
}

func TestFingerprintDiffersOnDifferentHands(t *testing.T) {
	hands1 := map[PlayerId][]Suit{"a": {Spades}}
	hands2 := map[PlayerId][]Suit{"a": {Hearts}}
	assert.NotEqual(t,
		fingerprint([]PlayerId{"a"}, hands1),
		fingerprint([]PlayerId{"a"}, hands2),
	)
}
