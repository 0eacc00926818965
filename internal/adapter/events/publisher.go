package events

import (
	"context"
	"log/slog"

	"github.com/djolof-farm/backend/internal/domain/model"
)

// Publisher delivers order events to the event stream.
type Publisher interface {
	Publish(ctx context.Context, event model.OrderEvent) error
	Close() error
}

// LogPublisher is the fallback when no broker is configured: events are
// written to the log and considered delivered.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event model.OrderEvent) error {
	p.logger.Info("order event",
		slog.Int64("event_id", event.ID),
		slog.String("order_id", event.OrderID),
		slog.String("type", event.Type),
	)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
