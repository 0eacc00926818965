package repository

import (
	"context"

	"github.com/djolof-farm/backend/internal/domain/model"
)

// OrderRepository describes persistence operations with orders. Methods that
// touch stock or statuses are atomic: the status check and the write happen in
// one transaction against the store.
type OrderRepository interface {
	// Create persists the order, its items and the matching stock reservations
	// as one unit. On insufficient stock nothing is written.
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	// TransitionStatus moves the order along a legal fulfillment edge and
	// stamps completed_at when entering the completed state.
	TransitionStatus(ctx context.Context, id string, target model.OrderStatus) (*model.Order, error)
	// Cancel releases every reserved item and transitions to cancelled in one
	// transaction.
	Cancel(ctx context.Context, id string) (*model.Order, error)
	GetByPaymentRef(ctx context.Context, reference string) (*model.Order, error)
	// SetPaymentInitiated records the provider reference for a pending payment.
	SetPaymentInitiated(ctx context.Context, id string, method model.PaymentMethod, reference string) error
	// CompletePayment marks the payment completed and confirms the order.
	// Returns applied=false when the event was already applied or the order can
	// no longer be confirmed.
	CompletePayment(ctx context.Context, id, reference string) (*model.Order, bool, error)
}
