package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/vaultkeep/notes-service/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher is an asynchronous decorator over an AuditTrail: Record
// enqueues and returns immediately, so the login path never blocks on Redis
// I/O. Events are sharded to a fixed set of workers by username, which
// keeps per-user event ordering intact.
type Dispatcher struct {
	workers []chan ports.AuthEvent
	trail   ports.AuditTrail
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, trail ports.AuditTrail, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.AuthEvent, numWorkers),
		trail:   trail,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.AuthEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues the event to the worker responsible for its username.
// When the shard's buffer is full the event is dropped rather than blocking
// the caller; the trail is best-effort. Never returns an error.
func (d *Dispatcher) Record(_ context.Context, event ports.AuthEvent) error {
	select {
	case d.workers[d.shardIndex(event.Username)] <- event:
	default:
		d.log.Warn().
			Str("username", event.Username).
			Msg("audit queue full, event dropped")
	}
	return nil
}

// Recent reads straight through to the underlying trail.
func (d *Dispatcher) Recent(ctx context.Context, username string, limit int) ([]ports.AuthEvent, error) {
	return d.trail.Recent(ctx, username, limit)
}

// shardIndex maps a username deterministically to a worker index.
func (d *Dispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.AuthEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.trail.Record(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("username", event.Username).
					Int("worker_id", id).
					Msg("audit write failed")
			}
		}
	}
}
