package notification

import (
	"log/slog"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/sse"
)

// Sink delivers an event to a user's open streams.
type Sink interface {
	Publish(userID string, event sse.Event)
}

// Config holds dispatcher configuration
type Config struct {
	WorkerCount int // default: 2
	QueueSize   int // per worker, default: 256
}

type delivery struct {
	userID string
	event  sse.Event
}

// Dispatcher moves event delivery off the request path. Events for one user
// always go through the same worker, so they arrive in publish order.
type Dispatcher struct {
	sink   Sink
	queues []chan delivery
	wg     sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

func NewDispatcher(sink Sink, cfg Config) *Dispatcher {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}

	d := &Dispatcher{
		sink:   sink,
		queues: make([]chan delivery, cfg.WorkerCount),
	}
	for i := range d.queues {
		d.queues[i] = make(chan delivery, cfg.QueueSize)
		d.wg.Add(1)
		go d.worker(i, d.queues[i])
	}

	slog.Info("notification dispatcher started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)
	return d
}

func (d *Dispatcher) worker(id int, queue <-chan delivery) {
	defer d.wg.Done()

	for item := range queue {
		d.sink.Publish(item.userID, item.event)
		slog.Debug("notification delivered", "worker", id, "user_id", item.userID, "event", item.event.Name)
	}
}

// Publish queues an event for userID. When the worker queue is full, or the
// dispatcher has been stopped, the event is delivered inline instead.
func (d *Dispatcher) Publish(userID string, event sse.Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.sink.Publish(userID, event)
		return
	}

	queue := d.queues[xxhash.Sum64String(userID)%uint64(len(d.queues))]
	select {
	case queue <- delivery{userID: userID, event: event}:
	default:
		slog.Warn("notification queue full, delivering inline", "user_id", userID, "event", event.Name)
		d.sink.Publish(userID, event)
	}
}

// Stop drains queued events and waits for the workers to exit.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	for _, q := range d.queues {
		close(q)
	}
	d.mu.Unlock()

	d.wg.Wait()
	slog.Info("notification dispatcher stopped")
}
