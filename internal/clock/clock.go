// Package clock abstracts the passage of time so the round timer can be
// driven deterministically in tests instead of relying on real sleeps.
package clock

import (
	"sync"
	"time"
)

// Clock is the monotonic time source the engine reads from and schedules
// callbacks against. A real process uses Real; tests use a Manual clock so
// the round deadline can be advanced without a real wall-clock wait.
type Clock interface {
	Now() time.Time
	// AfterFunc schedules f to run once the clock reaches d past Now. It
	// returns a Timer that can cancel the pending callback.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer cancels a callback scheduled with Clock.AfterFunc.
type Timer interface {
	Stop() bool
}

// Real is a Clock backed by the actual wall clock and time.AfterFunc.
type Real struct{}

// NewReal returns a Clock backed by the operating system's clock.
func NewReal() Clock { return Real{} }

func (Real) Now() time.Time { return time.Now() }

func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Manual is a Clock a test drives explicitly by calling Advance. Pending
// callbacks fire synchronously, in schedule order, as soon as Advance moves
// the clock at or past their deadline.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	pending []*manualTimer
}

// NewManual returns a Manual clock starting at the given instant.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

type manualTimer struct {
	deadline time.Time
	f        func()
	fired    bool
	stopped  bool
}

func (t *manualTimer) Stop() bool {
	wasPending := !t.fired && !t.stopped
	t.stopped = true
	return wasPending
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{deadline: m.now.Add(d), f: f}
	m.pending = append(m.pending, t)
	return t
}

// Advance moves the clock forward by d, firing (in schedule order) every
// callback whose deadline has been reached. Callbacks run on the calling
// goroutine, after the clock has been updated, so a callback that reads
// Now() sees the post-advance time.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	target := m.now
	var due []*manualTimer
	remaining := m.pending[:0]
	for _, t := range m.pending {
		if !t.fired && !t.stopped && !t.deadline.After(target) {
			due = append(due, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	m.pending = remaining
	m.mu.Unlock()

	for _, t := range due {
		t.fired = true
		t.f()
	}
}
