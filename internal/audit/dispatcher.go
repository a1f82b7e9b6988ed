package audit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/models"
)

// deliverTimeout bounds a single sink delivery so one stuck sink cannot stall
// the queue forever.
const deliverTimeout = 5 * time.Second

// Dispatcher decouples audit emission from delivery. Emit is non-blocking:
// events go into a bounded queue and are dropped, counted, and logged when it
// is full. A single background goroutine drains the queue and fans each event
// out to every sink in order.
type Dispatcher struct {
	events  chan models.AuditEvent
	sinks   []Sink
	logger  *logger.Logger
	dropped atomic.Int64
	stopped atomic.Bool

	// stopMu orders Emit against the channel close in Stop.
	stopMu    sync.RWMutex
	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
}

// NewDispatcher constructs a dispatcher with the given queue capacity.
// A non-positive bufferSize falls back to 256.
func NewDispatcher(bufferSize int, log *logger.Logger, sinks ...Sink) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 256
	}

	log.Debug().Int("buffer_size", bufferSize).Int("sinks", len(sinks)).Msg("creating audit dispatcher")
	return &Dispatcher{
		events: make(chan models.AuditEvent, bufferSize),
		sinks:  sinks,
		logger: log,
		done:   make(chan struct{}),
	}
}

// Emit enqueues one event without ever blocking the caller. When the queue is
// full the event is dropped and counted; the security operation that emitted
// it proceeds regardless.
func (d *Dispatcher) Emit(event models.AuditEvent) {
	d.stopMu.RLock()
	defer d.stopMu.RUnlock()

	if d.stopped.Load() {
		d.dropped.Add(1)
		return
	}

	select {
	case d.events <- event:
	default:
		d.dropped.Add(1)
		d.logger.Warn().
			Str("action", string(event.Action)).
			Int64("dropped_total", d.dropped.Load()).
			Msg("audit queue full, event dropped")
	}
}

// Run starts the delivery goroutine. It satisfies the background-worker
// contract and returns immediately.
func (d *Dispatcher) Run() {
	d.startOnce.Do(func() {
		go d.loop()
	})
}

func (d *Dispatcher) loop() {
	defer close(d.done)

	for event := range d.events {
		for _, sink := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
			if err := sink.Deliver(ctx, event); err != nil {
				d.logger.Err(err).
					Str("sink", sink.Name()).
					Str("action", string(event.Action)).
					Msg("audit sink delivery failed")
			}
			cancel()
		}
	}
}

// Stop closes the queue and waits for the backlog to drain, up to the
// context deadline. Events emitted after Stop are silently lost.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.stopOnce.Do(func() {
		d.stopMu.Lock()
		d.stopped.Store(true)
		close(d.events)
		d.stopMu.Unlock()
	})

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dropped returns the total number of events discarded because the queue was
// full.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}
