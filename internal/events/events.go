// Package events provides an asynchronous, bounded-queue fan-out of engine
// events to one or more handlers (persistence, logging, future
// subscribers), following the same worker-pool shape as a synchronous
// in-process game loop would use for notification broadcast.
package events

import (
	"sync"

	"github.com/decred/slog"

	"github.com/LSeaburg/FiggieServer/internal/engine"
)

// Handler reacts to a single event. HandleEvent is called on a worker
// goroutine, never on the round's own mutation goroutine, so it must not
// call back into the engine.
type Handler interface {
	HandleEvent(engine.Event)
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(engine.Event)

func (f HandlerFunc) HandleEvent(e engine.Event) { f(e) }

// Processor is a bounded, worker-pool backed engine.EventSink. Publish never
// blocks the caller beyond a channel send: if the queue is full, the event
// is dropped and logged rather than applying backpressure to the round's
// lock.
type Processor struct {
	log         slog.Logger
	queue       chan engine.Event
	handlers    []Handler
	stopChan    chan struct{}
	wg          sync.WaitGroup
	mu          sync.Mutex
	started     bool
	workerCount int
}

// NewProcessor creates a Processor with the given queue depth and worker
// count. Handlers run in registration order for each event.
func NewProcessor(log slog.Logger, queueSize, workerCount int, handlers ...Handler) *Processor {
	if workerCount < 1 {
		workerCount = 1
	}
	return &Processor{
		log:         log,
		queue:       make(chan engine.Event, queueSize),
		handlers:    handlers,
		stopChan:    make(chan struct{}),
		workerCount: workerCount,
	}
}

// Start launches the worker pool. Calling Start twice is a no-op.
func (p *Processor) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true

	n := p.workerCount
	if n < 1 {
		n = 1
	}
	p.log.Infof("starting event processor with %d workers", n)
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go p.runWorker(i)
	}
}

// Stop drains in-flight handlers and halts the worker pool.
func (p *Processor) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	p.mu.Unlock()

	close(p.stopChan)
	p.wg.Wait()
	p.log.Infof("event processor stopped")
}

// Publish implements engine.EventSink.
func (p *Processor) Publish(e engine.Event) {
	p.mu.Lock()
	started := p.started
	p.mu.Unlock()

	if !started {
		p.log.Warnf("event processor not started, dropping event: %s", e.Type)
		return
	}

	select {
	case p.queue <- e:
	default:
		p.log.Errorf("event queue full, dropping event: %s round=%s", e.Type, e.RoundID)
	}
}

func (p *Processor) runWorker(id int) {
	defer p.wg.Done()
	p.log.Debugf("event worker %d started", id)
	for {
		select {
		case <-p.stopChan:
			p.log.Debugf("event worker %d stopping", id)
			return
		case e := <-p.queue:
			for _, h := range p.handlers {
				h.HandleEvent(e)
			}
		}
	}
}
