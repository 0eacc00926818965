package model

import (
	"encoding/json"
	"time"
)

// Order event types written to the outbox alongside order mutations.
const (
	EventOrderCreated       = "order.created"
	EventOrderCancelled     = "order.cancelled"
	EventOrderStatusChanged = "order.status_changed"
	EventPaymentCompleted   = "payment.completed"
)

// OrderEvent is an outbox record pending publication to the event stream.
type OrderEvent struct {
	ID          int64
	OrderID     string
	Type        string
	Payload     json.RawMessage
	CreatedAt   time.Time
	PublishedAt *time.Time
}
