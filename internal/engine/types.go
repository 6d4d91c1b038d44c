package engine

import "github.com/google/uuid"

// PlayerId is an opaque, unforgeable capability for a player within the
// current round. IDs are not reused across a reset — a player who rejoins
// after a round completes gets a fresh one.
type PlayerId string

// OrderId identifies a single order admitted to a book during the current
// trading phase.
type OrderId string

func newPlayerId() PlayerId { return PlayerId(uuid.NewString()) }
func newOrderId() OrderId   { return OrderId(uuid.NewString()) }

// Side is which side of the book an order or cancel selector targets.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// Player holds a single seat's identity, balance, and hand.
type Player struct {
	ID             PlayerId
	Name           string
	Balance        int64
	Hand           map[Suit]int
	InitialBalance int64
}

func newPlayer(id PlayerId, name string) *Player {
	return &Player{
		ID:   id,
		Name: name,
		Hand: map[Suit]int{Spades: 0, Clubs: 0, Hearts: 0, Diamonds: 0},
	}
}

func (p *Player) clone() *Player {
	cp := *p
	cp.Hand = make(map[Suit]int, len(p.Hand))
	for s, n := range p.Hand {
		cp.Hand[s] = n
	}
	return &cp
}

// Order is a single resting or just-submitted order in one suit's book.
type Order struct {
	OrderId OrderId
	Owner   PlayerId
	Side    Side
	Suit    Suit
	Price   int64
}

// Trade is one executed match, append-only within a round.
type Trade struct {
	Buyer  PlayerId
	Seller PlayerId
	Suit   Suit
	Price  int64
}
