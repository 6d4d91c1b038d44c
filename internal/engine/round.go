package engine

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/LSeaburg/FiggieServer/internal/clock"
	"github.com/LSeaburg/FiggieServer/internal/statemachine"
)

// Phase is one of the four states a Round can be in. Trading is the only
// phase in which orders are accepted; waiting accepts joins; completed and
// errored are terminal.
type Phase string

const (
	PhaseWaiting   Phase = "waiting"
	PhaseTrading   Phase = "trading"
	PhaseCompleted Phase = "completed"
	PhaseErrored   Phase = "errored"
)

// RoundConfig holds the parameters fixed for a round's lifetime.
type RoundConfig struct {
	NumPlayers      int
	Ante            int64
	StartingBalance int64
	BonusPerCard    int64
	TradingDuration time.Duration
	Seed            int64
}

// Round owns one game's full lifecycle: seating, the deal, the four order
// books, the ledger, and settlement. Every exported method takes the
// round's single lock for its duration, so the whole round is one
// sequential, exclusive resource regardless of how many goroutines call in
// concurrently (one per connected player, typically).
type Round struct {
	mu  sync.Mutex
	id  string
	cfg RoundConfig

	clock clock.Clock
	sink  EventSink
	rng   *rand.Rand

	ledger *Ledger
	books  map[Suit]*Book

	goalSuit Suit
	dealFP   string

	phase Phase
	sm    *statemachine.StateMachine[Round]
	timer clock.Timer

	deadline time.Time
	settled  *Settlement
	errMsg   string
	trades   []*Trade
}

// NewRound creates a round in the waiting phase, ready to accept joins.
func NewRound(id string, cfg RoundConfig, c clock.Clock, sink EventSink) *Round {
	if sink == nil {
		sink = NopSink{}
	}
	r := &Round{
		id:     id,
		cfg:    cfg,
		clock:  c,
		sink:   sink,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		ledger: newLedger(),
		books:  make(map[Suit]*Book, 4),
		phase:  PhaseWaiting,
	}
	for _, s := range Suits {
		r.books[s] = newBook(s)
	}
	r.sm = statemachine.NewStateMachine(r, waitingState)
	return r
}

// --- state functions ---

func waitingState(r *Round, cb func(string, statemachine.StateEvent)) statemachine.StateFn[Round] {
	if len(r.ledger.order) < r.cfg.NumPlayers {
		return waitingState
	}
	r.beginTrading()
	if cb != nil {
		cb(string(PhaseTrading), statemachine.StateEntered)
	}
	return tradingState
}

func tradingState(r *Round, cb func(string, statemachine.StateEvent)) statemachine.StateFn[Round] {
	if r.errMsg != "" {
		if cb != nil {
			cb(string(PhaseErrored), statemachine.StateEntered)
		}
		return erroredState
	}
	if r.clock.Now().Before(r.deadline) {
		return tradingState
	}
	r.complete()
	if cb != nil {
		cb(string(PhaseCompleted), statemachine.StateEntered)
	}
	return completedState
}

func completedState(r *Round, _ func(string, statemachine.StateEvent)) statemachine.StateFn[Round] {
	return nil
}

func erroredState(r *Round, _ func(string, statemachine.StateEvent)) statemachine.StateFn[Round] {
	return nil
}

func (r *Round) dispatch() {
	r.sm.Dispatch(func(name string, _ statemachine.StateEvent) {
		r.phase = Phase(name)
	})
}

func (r *Round) fail(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	r.errMsg = msg
	r.phase = PhaseErrored
	r.sink.Publish(Event{Type: EventRoundErrored, RoundID: r.id, Reason: msg})
	return &InvariantError{Msg: msg, Dump: spew.Sdump(r.ledger)}
}

// --- lifecycle ---

// Join seats a new player if the round is still waiting for players. Once
// the configured player count is reached, Join that fills the last seat
// also triggers the deal and starts the trading timer.
func (r *Round) Join(name string) (*Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseWaiting {
		return nil, ErrWrongPhase
	}
	if len(r.ledger.order) >= r.cfg.NumPlayers {
		return nil, ErrRoundFull
	}

	p := newPlayer(newPlayerId(), name)
	p.Balance = r.cfg.StartingBalance
	p.InitialBalance = r.cfg.StartingBalance
	r.ledger.seat(p)

	r.dispatch()
	return p, nil
}

// beginTrading antes every seated player, deals hands, and starts the
// round's single expiry timer. Called only from waitingState, already
// holding r.mu via the caller of dispatch.
func (r *Round) beginTrading() {
	if err := r.ledger.anteAll(r.cfg.Ante); err != nil {
		r.errMsg = err.Error()
		return
	}

	d := deal(r.rng, append([]PlayerId(nil), r.ledger.order...))
	r.goalSuit = d.goalSuit
	r.dealFP = d.fingerprint
	for id, hand := range d.hands {
		p := r.ledger.players[id]
		for _, s := range hand {
			p.Hand[s]++
		}
	}

	r.deadline = r.clock.Now().Add(r.cfg.TradingDuration)
	r.timer = r.clock.AfterFunc(r.cfg.TradingDuration, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.dispatch()
	})

	r.sink.Publish(Event{Type: EventRoundStarted, RoundID: r.id, Suit: r.goalSuit, DealFP: r.dealFP})
}

// complete runs settlement. Called only from tradingState under r.mu.
func (r *Round) complete() {
	if r.timer != nil {
		r.timer.Stop()
	}
	r.settled = settle(r.ledger, r.goalSuit, r.cfg.BonusPerCard)
	r.sink.Publish(Event{Type: EventRoundCompleted, RoundID: r.id, DealFP: r.dealFP, Settled: r.settled})
}

// --- trading actions ---

// SubmitOrder validates and admits a new order for player in suit. On an
// immediate cross it returns the resulting Trade; on a rest it returns the
// Order that now sits on the book. Exactly one of the two is non-nil on
// success.
func (r *Round) SubmitOrder(playerID PlayerId, side Side, suit Suit, price int64) (*Order, *Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseTrading {
		return nil, nil, ErrWrongPhase
	}
	if _, err := r.ledger.player(playerID); err != nil {
		return nil, nil, err
	}
	if price <= 0 {
		return nil, nil, fmt.Errorf("engine: price must be positive")
	}

	switch side {
	case Buy:
		if !r.ledger.canFund(playerID, price) {
			r.sink.Publish(Event{Type: EventOrderRejected, RoundID: r.id, Player: playerID, Suit: suit, Price: price, Reason: ErrInsufficientFunds.Error()})
			return nil, nil, ErrInsufficientFunds
		}
	case Sell:
		if !r.ledger.canDeliver(playerID, suit) {
			r.sink.Publish(Event{Type: EventOrderRejected, RoundID: r.id, Player: playerID, Suit: suit, Price: price, Reason: ErrNoHoldings.Error()})
			return nil, nil, ErrNoHoldings
		}
	default:
		return nil, nil, fmt.Errorf("engine: invalid side %q", side)
	}

	o := &Order{OrderId: newOrderId(), Owner: playerID, Side: side, Suit: suit, Price: price}
	book := r.books[suit]

	trade, bumped, rested, err := book.admit(o)
	if err != nil {
		r.sink.Publish(Event{Type: EventOrderRejected, RoundID: r.id, Player: playerID, Suit: suit, Price: price, Reason: err.Error()})
		return nil, nil, err
	}

	if trade != nil {
		if err := r.ledger.settleTrade(trade); err != nil {
			return nil, nil, r.fail("%s", err.Error())
		}
		r.trades = append(r.trades, trade)
		r.sink.Publish(Event{Type: EventTransaction, RoundID: r.id, Suit: suit, Price: trade.Price, Trade: trade})
		r.sweepInfeasibleOrders(trade.Buyer)
		r.sweepInfeasibleOrders(trade.Seller)
		r.dispatch()
		return nil, trade, nil
	}

	if rested {
		if bumped != nil {
			r.sink.Publish(Event{Type: EventCancel, RoundID: r.id, Player: bumped.Owner, Suit: suit, Price: bumped.Price, Reason: "replaced by improving order"})
		}
		r.sink.Publish(Event{Type: EventOrderRested, RoundID: r.id, Player: playerID, Suit: suit, Price: price})
		r.dispatch()
		return o, nil, nil
	}

	return nil, nil, &InvariantError{Msg: "book.admit returned neither trade nor rest nor error"}
}

// sweepInfeasibleOrders cancels any of party's remaining resting orders,
// across all suits, that the ledger can no longer support after a trade —
// e.g. a second resting bid that the balance spent on the first fill can no
// longer cover. Emits a cancel event for each order pulled this way.
func (r *Round) sweepInfeasibleOrders(party PlayerId) {
	for _, suit := range Suits {
		for _, o := range r.books[suit].sweepInfeasible(r.ledger, party) {
			r.sink.Publish(Event{Type: EventCancel, RoundID: r.id, Player: party, Suit: suit, Price: o.Price, Reason: "no longer feasible after trade"})
		}
	}
}

// OrderType selects which side(s) a cancel targets.
type OrderType string

const (
	CancelBuy  OrderType = "buy"
	CancelSell OrderType = "sell"
	CancelBoth OrderType = "both"
)

// SuitSelector selects which suit(s) a cancel targets: either one concrete
// Suit or the wildcard "all".
type SuitSelector string

const AllSuits SuitSelector = "all"

// CancelSelector describes which resting order(s) a cancel targets, over
// the cartesian product of selected sides x selected suits. A resting
// order matches when price == -1 (meaning "all of mine"), or when it is a
// buy at or above price, or a sell at or below price.
type CancelSelector struct {
	OrderType OrderType
	Suit      SuitSelector
	Price     int64
}

func (sel CancelSelector) matchesSide(side Side) bool {
	return sel.OrderType == CancelBoth || OrderType(side) == sel.OrderType
}

func (sel CancelSelector) matchesSuit(suit Suit) bool {
	return sel.Suit == AllSuits || SuitSelector(suit) == sel.Suit
}

func (sel CancelSelector) matchesPrice(side Side, price int64) bool {
	if sel.Price == -1 {
		return true
	}
	if side == Buy {
		return price >= sel.Price
	}
	return price <= sel.Price
}

// Cancel removes every resting order matching sel that the caller owns,
// returning the suits they were resting in. If nothing matched, it returns
// ErrUnknownOrder.
func (r *Round) Cancel(playerID PlayerId, sel CancelSelector) ([]Suit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseTrading {
		return nil, ErrWrongPhase
	}

	var canceled []Suit
	for _, suit := range Suits {
		if !sel.matchesSuit(suit) {
			continue
		}
		book := r.books[suit]
		for _, side := range []Side{Buy, Sell} {
			if !sel.matchesSide(side) {
				continue
			}
			slot := book.resting(side)
			if *slot == nil || (*slot).Owner != playerID {
				continue
			}
			if !sel.matchesPrice(side, (*slot).Price) {
				continue
			}
			price := (*slot).Price
			*slot = nil
			r.sink.Publish(Event{Type: EventCancel, RoundID: r.id, Player: playerID, Suit: suit, Price: price})
			canceled = append(canceled, suit)
		}
	}

	if len(canceled) == 0 {
		return nil, ErrUnknownOrder
	}
	r.dispatch()
	return canceled, nil
}

// --- snapshotting ---

// PriceQuote is one side of a suit's market touch: who is resting there and
// at what price.
type PriceQuote struct {
	PlayerId PlayerId
	Price    int64
}

// MarketQuote is the public best bid/ask for one suit.
type MarketQuote struct {
	Suit       Suit
	HighestBid *PriceQuote
	LowestAsk  *PriceQuote
}

// Results is the completed-round summary: goal suit, each player's holding
// count in it, bonuses paid, pot winners, and the per-winner share.
type Results struct {
	GoalSuit  Suit
	Counts    map[PlayerId]int
	Bonuses   map[PlayerId]int64
	Winners   []PlayerId
	ShareEach int64
}

// Snapshot is the externally visible state of a round, as returned by
// GET /state. The requesting player sees their own hand; every player's
// balance is public, matching the reference client's market ticker.
type Snapshot struct {
	RoundID         string
	Phase           Phase
	Market          [4]MarketQuote
	TimeLeft        *int // integer in [0, 240] during trading, nil otherwise
	Pot             int64
	Hand            map[Suit]int
	Balances        map[PlayerId]int64
	Trades          []*Trade
	Results         *Results
	Hands           map[PlayerId]map[Suit]int // completed phase only
	InitialBalances map[PlayerId]int64        // completed phase only
	ErrorMsg        string
}

// reportedTimeUnits is the fixed range time_left is normalized into,
// regardless of the round's configured TradingDuration.
const reportedTimeUnits = 240

// StateFor builds a Snapshot from the caller's point of view.
func (r *Round) StateFor(playerID PlayerId) (*Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	self, ok := r.ledger.players[playerID]
	if !ok {
		return nil, ErrUnknownPlayer
	}

	s := &Snapshot{
		RoundID:  r.id,
		Phase:    r.phase,
		Pot:      r.ledger.pot,
		Hand:     self.clone().Hand,
		Balances: make(map[PlayerId]int64, len(r.ledger.order)),
		Trades:   append([]*Trade(nil), r.trades...),
		ErrorMsg: r.errMsg,
	}

	for _, id := range r.ledger.order {
		s.Balances[id] = r.ledger.players[id].Balance
	}

	for i, suit := range Suits {
		q := MarketQuote{Suit: suit}
		if bid := r.books[suit].bid; bid != nil {
			q.HighestBid = &PriceQuote{PlayerId: bid.Owner, Price: bid.Price}
		}
		if ask := r.books[suit].ask; ask != nil {
			q.LowestAsk = &PriceQuote{PlayerId: ask.Owner, Price: ask.Price}
		}
		s.Market[i] = q
	}

	if r.phase == PhaseTrading {
		remaining := r.deadline.Sub(r.clock.Now())
		if remaining < 0 {
			remaining = 0
		}
		// reported = ceil(240 * remaining / duration)
		num := reportedTimeUnits * int64(remaining)
		den := int64(r.cfg.TradingDuration)
		reported := int((num + den - 1) / den)
		if reported > reportedTimeUnits {
			reported = reportedTimeUnits
		}
		s.TimeLeft = &reported
	}

	if r.phase == PhaseCompleted && r.settled != nil {
		s.Hands = make(map[PlayerId]map[Suit]int, len(r.ledger.order))
		s.InitialBalances = make(map[PlayerId]int64, len(r.ledger.order))
		counts := make(map[PlayerId]int, len(r.ledger.order))
		for _, id := range r.ledger.order {
			p := r.ledger.players[id]
			s.Hands[id] = p.clone().Hand
			s.InitialBalances[id] = p.InitialBalance
			counts[id] = p.Hand[r.goalSuit]
		}
		s.Results = &Results{
			GoalSuit:  r.goalSuit,
			Counts:    counts,
			Bonuses:   bonusesFromPayouts(r.ledger, r.goalSuit, r.cfg.BonusPerCard),
			Winners:   r.settled.PotWinners,
			ShareEach: r.settled.PotShare,
		}
	}

	return s, nil
}

func bonusesFromPayouts(l *Ledger, goalSuit Suit, bonusPerCard int64) map[PlayerId]int64 {
	bonuses := make(map[PlayerId]int64, len(l.order))
	for _, id := range l.order {
		bonuses[id] = int64(l.players[id].Hand[goalSuit]) * bonusPerCard
	}
	return bonuses
}

// CurrentPhase reports the round's current phase.
func (r *Round) CurrentPhase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}
