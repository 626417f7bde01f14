// Package async provides a worker pool that publishes progress events in the
// background through another eventstream.Publisher.
//
// The pool decouples event delivery from the HTTP hot path so a slow or
// unreachable broker never delays a progress write.
package async

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/vdk888/knowledge/pkg/eventstream"
)

var (
	defaultNumWorkers     uint = 2
	defaultQueueSize      uint = 256
	defaultPublishTimeout      = 10 * time.Second
)

// ErrQueueFull is returned by PublishProgress when the event was dropped.
var ErrQueueFull = errors.New("event queue full, event dropped")

// Config is the configuration options for the worker pool.
type Config struct {
	// Publisher delivers the queued events.
	Publisher eventstream.Publisher

	// NumWorkers is the number of background workers in the pool.
	NumWorkers uint

	// QueueSize is the capacity of the buffered event channel (defaults to 256).
	QueueSize uint

	// PublishTimeout bounds each delivery (defaults to 10s).
	PublishTimeout time.Duration

	Logger *slog.Logger
}

// Pool publishes events asynchronously. It implements eventstream.Publisher.
type Pool struct {
	config *Config
	queue  chan *eventstream.ProgressEvent
	wg     sync.WaitGroup
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
}

var _ eventstream.Publisher = (*Pool)(nil)

// NewPool creates a new Pool and starts its worker goroutines.
func NewPool(c *Config) (*Pool, error) {
	if c.Publisher == nil {
		return nil, errors.New("publisher is required")
	}

	if c.NumWorkers == 0 {
		c.NumWorkers = defaultNumWorkers
	}

	if c.QueueSize == 0 {
		c.QueueSize = defaultQueueSize
	}

	if c.PublishTimeout == 0 {
		c.PublishTimeout = defaultPublishTimeout
	}

	if c.NumWorkers > uint(math.MaxInt) {
		return nil, fmt.Errorf("NumWorkers %d exceeds max int", c.NumWorkers)
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	p := &Pool{
		config: c,
		queue:  make(chan *eventstream.ProgressEvent, c.QueueSize),
		logger: logger,
	}

	p.wg.Add(int(c.NumWorkers))
	for i := range c.NumWorkers {
		go p.worker(i)
	}

	return p, nil
}

// PublishProgress queues event for delivery. It never blocks: a full queue
// drops the event and returns ErrQueueFull.
func (p *Pool) PublishProgress(_ context.Context, event *eventstream.ProgressEvent) error {
	if event == nil {
		return eventstream.ErrNilProgressEvent
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return errors.New("event pool closed")
	}

	select {
	case p.queue <- event:
		p.logger.Debug("event queued", "event_id", event.EventID)
		return nil
	default:
		p.logger.Error("event not queued, queue full, event dropped", "event_id", event.EventID)
		return ErrQueueFull
	}
}

// Close stops accepting events, waits for queued events to be delivered and
// closes the underlying publisher.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
	return p.config.Publisher.Close()
}

func (p *Pool) worker(id uint) {
	defer p.wg.Done()
	p.logger.Debug("event worker started", "worker_id", id)

	for event := range p.queue {
		p.publish(event)
	}

	p.logger.Debug("event worker stopped", "worker_id", id)
}

func (p *Pool) publish(event *eventstream.ProgressEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), p.config.PublishTimeout)
	defer cancel()

	if err := p.config.Publisher.PublishProgress(ctx, event); err != nil {
		p.logger.Error("failed to publish progress event",
			"event_id", event.EventID,
			"progress_id", event.Progress.ID,
			"error", err,
		)
		return
	}

	p.logger.Debug("progress event published", "event_id", event.EventID)
}
