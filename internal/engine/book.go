package engine

import "fmt"

// Book is a single suit's order book. Per the "reject non-improving" model,
// the book never holds more than one resting order per side: a new order
// either crosses the opposite side immediately (a trade) or must beat the
// current resting price to be admitted at all. There is no depth beyond the
// best bid and best ask.
type Book struct {
	suit Suit
	bid  *Order // highest resting buy, nil if none
	ask  *Order // lowest resting sell, nil if none
}

func newBook(suit Suit) *Book {
	return &Book{suit: suit}
}

// BestBid and BestAsk report the current touch, or (0, false) if empty.
func (b *Book) BestBid() (int64, bool) {
	if b.bid == nil {
		return 0, false
	}
	return b.bid.Price, true
}

func (b *Book) BestAsk() (int64, bool) {
	if b.ask == nil {
		return 0, false
	}
	return b.ask.Price, true
}

// resting returns the pointer to the book's resting slot for side.
func (b *Book) resting(side Side) **Order {
	if side == Buy {
		return &b.bid
	}
	return &b.ask
}

// admit evaluates a new order against the book's current state. It returns
// a *Trade if the order crosses and executes immediately, or rested=true if
// the order is instead admitted as the new resting order for its side. When
// admission bumps a previously-resting same-side order, that order is
// returned as bumped so the caller can emit its cancellation.
func (b *Book) admit(o *Order) (trade *Trade, bumped *Order, rested bool, err error) {
	if o.Suit != b.suit {
		return nil, nil, false, fmt.Errorf("engine: order for suit %q submitted to %q book", o.Suit, b.suit)
	}

	own := b.resting(o.Side)
	if *own != nil && (*own).Owner == o.Owner {
		return nil, nil, false, ErrDuplicateOrder
	}

	opp := b.resting(opposite(o.Side))
	if *opp != nil && crosses(o, *opp) {
		if (*opp).Owner == o.Owner {
			return nil, nil, false, ErrSelfCross
		}
		t := &Trade{Suit: b.suit, Price: (*opp).Price}
		if o.Side == Buy {
			t.Buyer, t.Seller = o.Owner, (*opp).Owner
		} else {
			t.Buyer, t.Seller = (*opp).Owner, o.Owner
		}
		*opp = nil
		return t, nil, false, nil
	}

	if *own != nil && !improves(o, *own) {
		return nil, nil, false, ErrNotImproving
	}

	prev := *own
	*own = o
	return nil, prev, true, nil
}

// cancel removes the resting order on side if it belongs to owner, at the
// given price (callers select by side+price per the external API's cancel
// selector). Returns false if there was nothing matching to remove.
func (b *Book) cancel(owner PlayerId, side Side, price int64) bool {
	slot := b.resting(side)
	if *slot == nil || (*slot).Owner != owner || (*slot).Price != price {
		return false
	}
	*slot = nil
	return true
}

// sweepInfeasible cancels owner's resting order(s) in this book that the
// ledger can no longer support — a bid the owner can't fund, or an ask the
// owner has nothing left to deliver — returning the canceled orders so the
// caller can emit cancel events. A trade filling one of owner's orders can
// leave another of owner's orders in this or another suit's book unfundable
// or undeliverable; this is what re-validates them.
func (b *Book) sweepInfeasible(l *Ledger, owner PlayerId) []*Order {
	var canceled []*Order
	if b.bid != nil && b.bid.Owner == owner && !l.canFund(owner, b.bid.Price) {
		canceled = append(canceled, b.bid)
		b.bid = nil
	}
	if b.ask != nil && b.ask.Owner == owner && !l.canDeliver(owner, b.suit) {
		canceled = append(canceled, b.ask)
		b.ask = nil
	}
	return canceled
}

func opposite(s Side) Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// crosses reports whether incoming (new) trades immediately against resting
// (the current opposite-side touch).
func crosses(incoming, resting *Order) bool {
	if incoming.Side == Buy {
		return incoming.Price >= resting.Price
	}
	return incoming.Price <= resting.Price
}

// improves reports whether incoming would be a strictly better price than
// the current same-side resting order, and therefore allowed to replace it.
func improves(incoming, current *Order) bool {
	if incoming.Side == Buy {
		return incoming.Price > current.Price
	}
	return incoming.Price < current.Price
}
