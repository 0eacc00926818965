package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/djolof-farm/backend/internal/domain/model"
)

// EventSource exposes the subset of application functionality required by the relay.
type EventSource interface {
	PendingEvents(ctx context.Context, limit int) ([]model.OrderEvent, error)
	MarkEventPublished(ctx context.Context, eventID int64) error
}

// Publisher delivers one event to the stream.
type Publisher interface {
	Publish(ctx context.Context, event model.OrderEvent) error
}

// OutboxRelay drains the order-event outbox and publishes records concurrently.
// An event is marked published only after the publisher accepted it, so a
// failed publish is retried on a later poll.
type OutboxRelay struct {
	source       EventSource
	publisher    Publisher
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.OrderEvent
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewOutboxRelay constructs the relay worker pool.
func NewOutboxRelay(source EventSource, publisher Publisher, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *OutboxRelay {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &OutboxRelay{
		source:       source,
		publisher:    publisher,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.OrderEvent, batchSize*workers),
	}
}

// Start launches background processing.
func (r *OutboxRelay) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *OutboxRelay) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *OutboxRelay) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *OutboxRelay) fetchAndDispatch(ctx context.Context) {
	batch, err := r.source.PendingEvents(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("fetch pending events failed", slog.String("error", err.Error()))
		return
	}
	for _, event := range batch {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- event:
		}
	}
}

func (r *OutboxRelay) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-r.jobs:
			if !ok {
				return
			}
			r.handleEvent(ctx, event)
		}
	}
}

func (r *OutboxRelay) handleEvent(ctx context.Context, event model.OrderEvent) {
	if err := r.publisher.Publish(ctx, event); err != nil {
		r.logger.Error("publish event failed",
			slog.Int64("event_id", event.ID),
			slog.String("type", event.Type),
			slog.String("error", err.Error()))
		return
	}
	if err := r.source.MarkEventPublished(ctx, event.ID); err != nil {
		r.logger.Error("mark event published failed",
			slog.Int64("event_id", event.ID),
			slog.String("error", err.Error()))
	}
}
