// Package engine implements the Figgie round: the deal, the four per-suit
// order books, the ledger, and settlement. A single Engine wraps one Round
// at a time; when a round completes, a new one is started fresh on the
// next join.
package engine

import (
	"sync"

	"github.com/LSeaburg/FiggieServer/internal/clock"
)

// Engine owns round lifecycle: it hands out the current round to join, and
// replaces a completed round with a fresh one on demand.
type Engine struct {
	mu      sync.Mutex
	cfg     RoundConfig
	clock   clock.Clock
	sink    EventSink
	current *Round
	nextID  func() string
}

// New creates an Engine with its first round already instantiated in the
// waiting phase. nextID generates round IDs; tests typically pass a counter,
// production a uuid-backed generator.
func New(cfg RoundConfig, c clock.Clock, sink EventSink, nextID func() string) *Engine {
	e := &Engine{cfg: cfg, clock: c, sink: sink, nextID: nextID}
	e.current = NewRound(nextID(), cfg, c, sink)
	return e
}

// Current returns the round presently accepting joins or trading. If the
// current round has reached a terminal phase, a fresh one is started and
// returned instead.
func (e *Engine) Current() *Round {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.current.CurrentPhase() {
	case PhaseCompleted, PhaseErrored:
		e.current = NewRound(e.nextID(), e.cfg, e.clock, e.sink)
	}
	return e.current
}

// RoundByID returns the round with the given ID if it is still the current
// one. The engine keeps no history of past rounds in memory; completed
// rounds are retrieved from the store's archive instead.
func (e *Engine) RoundByID(id string) (*Round, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current != nil && e.current.id == id {
		return e.current, true
	}
	return nil, false
}
