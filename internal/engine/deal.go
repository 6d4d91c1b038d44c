package engine

import (
	"crypto/sha256"
	"fmt"
	"math/rand"
	"sort"
)

// dealResult is the outcome of a single deal: the goal suit and the hands
// dealt to each player, plus a digest useful for telling two rounds' deals
// apart without re-deriving the hand maps from the event log.
type dealResult struct {
	goalSuit    Suit
	counts      map[Suit]int // cards per suit in this deal, e.g. 12/10/10/8
	hands       map[PlayerId][]Suit
	fingerprint string
}

// deckComposition assigns a card count to each suit for one round: one
// common suit gets 12, the opposite-color pair get 10 each, and the
// remaining suit (the 12-card suit's companion) gets 8. The goal suit is
// always the 12-card suit — the companion of the rare 8-card suit.
func deckComposition(rng *rand.Rand) (counts map[Suit]int, goalSuit Suit) {
	// Pick which color is "rare" (supplies the 8-card suit) at random, then
	// which of that color's two suits is the rare one.
	rareIsBlack := rng.Intn(2) == 0
	var rareSuit Suit
	if rareIsBlack {
		if rng.Intn(2) == 0 {
			rareSuit = Spades
		} else {
			rareSuit = Clubs
		}
	} else {
		if rng.Intn(2) == 0 {
			rareSuit = Hearts
		} else {
			rareSuit = Diamonds
		}
	}

	goalSuit = rareSuit.Companion()

	counts = make(map[Suit]int, 4)
	for _, s := range Suits {
		switch {
		case s == rareSuit:
			counts[s] = 8
		case s == goalSuit:
			counts[s] = 12
		default:
			counts[s] = 10
		}
	}
	return counts, goalSuit
}

// dealHands shuffles a 40-card deck built from counts and distributes it as
// evenly as possible across playerIDs (ordered, for determinism given a
// seeded rng).
func dealHands(rng *rand.Rand, playerIDs []PlayerId, counts map[Suit]int) map[PlayerId][]Suit {
	var deck []Suit
	for _, s := range Suits {
		for i := 0; i < counts[s]; i++ {
			deck = append(deck, s)
		}
	}
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	hands := make(map[PlayerId][]Suit, len(playerIDs))
	for _, id := range playerIDs {
		hands[id] = nil
	}
	for i, card := range deck {
		id := playerIDs[i%len(playerIDs)]
		hands[id] = append(hands[id], card)
	}
	return hands
}

// deal produces a full dealResult for the given players using rng.
func deal(rng *rand.Rand, playerIDs []PlayerId) dealResult {
	counts, goalSuit := deckComposition(rng)
	hands := dealHands(rng, playerIDs, counts)
	return dealResult{
		goalSuit:    goalSuit,
		counts:      counts,
		hands:       hands,
		fingerprint: fingerprint(playerIDs, hands),
	}
}

// fingerprint is a SHA-256 digest of the ordered (player, suit counts) deal,
// used for the round_started event's deal_fingerprint field so operators can
// tell two rounds apart without diffing full hand maps. A one-shot digest
// over fixed-shape data has no natural fit among the pack's domain
// libraries, so this one piece of plumbing stays on crypto/sha256.
func fingerprint(playerIDs []PlayerId, hands map[PlayerId][]Suit) string {
	ordered := append([]PlayerId(nil), playerIDs...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	h := sha256.New()
	for _, id := range ordered {
		counts := make(map[Suit]int, 4)
		for _, s := range hands[id] {
			counts[s]++
		}
		fmt.Fprintf(h, "%s:%d,%d,%d,%d;", id,
			counts[Spades], counts[Clubs], counts[Hearts], counts[Diamonds])
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
