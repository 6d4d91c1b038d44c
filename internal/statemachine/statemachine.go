// Package statemachine implements a small generic state-function dispatcher
// following Rob Pike's "Lexical Scanning in Go" pattern: a state is a
// function that performs its work and returns the next state function.
package statemachine

import "sync"

// StateEvent distinguishes the two points a callback can be invoked at.
type StateEvent int

const (
	StateEntered StateEvent = iota
	StateExited
)

// StateFn is a state of the machine. It receives the entity it drives and an
// optional callback (nil is fine) used to observe entry/exit of named
// states, and returns the next state function. Returning nil terminates the
// machine.
type StateFn[T any] func(*T, func(stateName string, event StateEvent)) StateFn[T]

// StateMachine drives a single entity through a sequence of StateFn values.
// It is safe for concurrent use; callers typically hold their own coarser
// lock around a Dispatch/SetState pair anyway (the Round's mutation lock),
// but the internal mutex keeps GetCurrentState consistent regardless.
type StateMachine[T any] struct {
	entity  *T
	stateFn StateFn[T]
	mu      sync.RWMutex
}

// NewStateMachine creates a state machine for entity, starting at initial.
func NewStateMachine[T any](entity *T, initial StateFn[T]) *StateMachine[T] {
	return &StateMachine[T]{entity: entity, stateFn: initial}
}

// Dispatch runs the current state function once and adopts whatever state
// function it returns as the new current state.
func (sm *StateMachine[T]) Dispatch(callback func(stateName string, event StateEvent)) {
	sm.mu.Lock()
	current := sm.stateFn
	sm.mu.Unlock()

	if current == nil {
		return
	}
	next := current(sm.entity, callback)

	sm.mu.Lock()
	sm.stateFn = next
	sm.mu.Unlock()
}

// GetCurrentState returns the current state function.
func (sm *StateMachine[T]) GetCurrentState() StateFn[T] {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.stateFn
}

// SetState forces a transition without running the target state's entry
// logic through Dispatch — used when restoring or seeding state rather than
// reacting to an event.
func (sm *StateMachine[T]) SetState(stateFn StateFn[T]) {
	sm.mu.Lock()
	sm.stateFn = stateFn
	sm.mu.Unlock()
}
