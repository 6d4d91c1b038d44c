package engine

import "errors"

// Sentinel errors returned by book, ledger and round operations. The HTTP
// layer maps each of them to a client-facing message by direct comparison,
// so the round returns them unwrapped.
var (
	ErrUnknownPlayer     = errors.New("engine: unknown player")
	ErrUnknownOrder      = errors.New("engine: unknown order")
	ErrWrongPhase        = errors.New("engine: action not valid in current phase")
	ErrRoundFull         = errors.New("engine: round already has the configured number of players")
	ErrDuplicateOrder    = errors.New("engine: player already has a resting order of this side in this suit")
	ErrSelfCross         = errors.New("engine: order would cross the submitter's own resting order")
	ErrNotImproving      = errors.New("engine: order does not improve the resting best price")
	ErrInsufficientFunds = errors.New("engine: insufficient balance to cover a potential fill")
	ErrNoHoldings        = errors.New("engine: insufficient holdings to cover a potential fill")
	ErrNotOwner          = errors.New("engine: cancel target is not owned by the requesting player")
)

// InvariantError indicates a consistency check failed after a mutation that
// should have been impossible given the admission checks already performed.
// Seeing one means the round transitions to the errored phase rather than
// risking further corruption. Dump, when set, is a spew dump of the
// ledger at the moment of failure, for operators to inspect in logs.
type InvariantError struct {
	Msg  string
	Dump string
}

func (e *InvariantError) Error() string { return "engine: invariant violated: " + e.Msg }
