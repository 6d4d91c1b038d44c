package events

import (
	"sync"
	"testing"
	"time"

	"github.com/decred/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LSeaburg/FiggieServer/internal/engine"
)

func testLogger() slog.Logger {
	backend := slog.NewBackend(nopWriter{})
	return backend.Logger("TEST")
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

type collectingHandler struct {
	mu     sync.Mutex
	events []engine.Event
}

func (c *collectingHandler) HandleEvent(e engine.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *collectingHandler) snapshot() []engine.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]engine.Event(nil), c.events...)
}

func TestProcessorDeliversPublishedEvents(t *testing.T) {
	h := &collectingHandler{}
	p := NewProcessor(testLogger(), 16, 2, h)
	p.Start()
	defer p.Stop()

	p.Publish(engine.Event{Type: engine.EventRoundStarted, RoundID: "r1"})
	p.Publish(engine.Event{Type: engine.EventRoundCompleted, RoundID: "r1"})

	require.Eventually(t, func() bool {
		return len(h.snapshot()) == 2
	}, time.Second, 5*time.Millisecond)
}

func TestProcessorDropsEventsWhenNotStarted(t *testing.T) {
	h := &collectingHandler{}
	p := NewProcessor(testLogger(), 16, 1, h)

	p.Publish(engine.Event{Type: engine.EventRoundStarted, RoundID: "r1"})

	time.Sleep(10 * time.Millisecond)
	assert.Empty(t, h.snapshot())
}

func TestProcessorDropsEventsWhenQueueFull(t *testing.T) {
	block := make(chan struct{})
	blocking := HandlerFunc(func(engine.Event) { <-block })
	h := &collectingHandler{}

	p := NewProcessor(testLogger(), 1, 1, blocking, h)
	p.Start()
	defer func() {
		close(block)
		p.Stop()
	}()

	for i := 0; i < 10; i++ {
		p.Publish(engine.Event{Type: engine.EventOrderRested, RoundID: "r1"})
	}
	// No assertion on exact drop count: only that Publish never blocks the
	// caller and the processor keeps running.
}
