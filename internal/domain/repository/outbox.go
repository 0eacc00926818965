package repository

import (
	"context"

	"github.com/djolof-farm/backend/internal/domain/model"
)

// EventRepository exposes the outbox of order events awaiting publication.
// Delivery is at-least-once: an event is marked published only after the
// broker accepted it, so consumers dedupe by event id.
type EventRepository interface {
	PendingBatch(ctx context.Context, limit int) ([]model.OrderEvent, error)
	MarkPublished(ctx context.Context, eventID int64) error
}
