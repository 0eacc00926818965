package usecase

import (
	"context"
	"fmt"
	"math"

	domainErrors "github.com/djolof-farm/backend/internal/domain/errors"
	"github.com/djolof-farm/backend/internal/domain/model"
	"github.com/djolof-farm/backend/internal/domain/repository"
)

// OrderUseCase encapsulates order lifecycle logic: totals, stock reservation
// and status transitions.
type OrderUseCase struct {
	orders      repository.OrderRepository
	deliveryFee float64
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, deliveryFee float64) *OrderUseCase {
	return &OrderUseCase{orders: orders, deliveryFee: deliveryFee}
}

// round2 keeps monetary values at two-decimal precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Create validates the draft, snapshots prices, computes totals and persists
// the order with its reservations as one unit.
func (u *OrderUseCase) Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	if draft.CustomerName == "" || draft.CustomerPhone == "" {
		return nil, fmt.Errorf("customer_name and customer_phone are required: %w", domainErrors.ErrInvalidInput)
	}
	if len(draft.Items) == 0 {
		return nil, fmt.Errorf("items must not be empty: %w", domainErrors.ErrInvalidInput)
	}

	if draft.DeliveryMethod == "" {
		draft.DeliveryMethod = model.DeliveryMethodPickup
	}
	if !model.ValidDeliveryMethod(draft.DeliveryMethod) {
		return nil, fmt.Errorf("delivery_method %q: %w", draft.DeliveryMethod, domainErrors.ErrInvalidInput)
	}
	if draft.PaymentMethod == "" {
		draft.PaymentMethod = model.PaymentMethodCash
	}
	if !model.ValidPaymentMethod(draft.PaymentMethod) {
		return nil, fmt.Errorf("payment_method %q: %w", draft.PaymentMethod, domainErrors.ErrInvalidInput)
	}

	var subtotal float64
	items := make([]model.OrderItem, 0, len(draft.Items))
	for _, it := range draft.Items {
		if it.ProductID == "" {
			return nil, fmt.Errorf("item product_id is required: %w", domainErrors.ErrInvalidInput)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("item quantity must be positive: %w", domainErrors.ErrInvalidInput)
		}
		if it.ProductPrice < 0 {
			return nil, fmt.Errorf("item price must not be negative: %w", domainErrors.ErrInvalidInput)
		}
		lineSubtotal := round2(float64(it.Quantity) * it.ProductPrice)
		subtotal = round2(subtotal + lineSubtotal)
		items = append(items, model.OrderItem{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			ProductPrice: it.ProductPrice,
			Quantity:     it.Quantity,
			Subtotal:     lineSubtotal,
		})
	}

	var deliveryFee float64
	if draft.DeliveryMethod == model.DeliveryMethodDelivery {
		deliveryFee = u.deliveryFee
	}

	order := &model.Order{
		UserID:          draft.UserID,
		CustomerName:    draft.CustomerName,
		CustomerEmail:   draft.CustomerEmail,
		CustomerPhone:   draft.CustomerPhone,
		DeliveryAddress: draft.DeliveryAddress,
		DeliveryMethod:  draft.DeliveryMethod,
		PaymentMethod:   draft.PaymentMethod,
		PaymentStatus:   model.PaymentStatusPending,
		Subtotal:        subtotal,
		DeliveryFee:     deliveryFee,
		TotalAmount:     round2(subtotal + deliveryFee),
		OrderStatus:     model.OrderStatusPending,
		CustomerNotes:   draft.CustomerNotes,
		Items:           items,
	}

	return u.orders.Create(ctx, order)
}

// Get returns one order with its items.
func (u *OrderUseCase) Get(ctx context.Context, id string) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}

// List returns orders newest first, narrowed by the filter.
func (u *OrderUseCase) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if filter.Status != nil && !model.ValidOrderStatus(*filter.Status) {
		return nil, fmt.Errorf("status %q: %w", *filter.Status, domainErrors.ErrInvalidInput)
	}
	return u.orders.List(ctx, filter)
}

// UpdateStatus moves the order along the fulfillment state machine.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, fmt.Errorf("status %q: %w", status, domainErrors.ErrInvalidInput)
	}
	return u.orders.TransitionStatus(ctx, id, status)
}

// Cancel releases the order's reservations and marks it cancelled.
func (u *OrderUseCase) Cancel(ctx context.Context, id string) (*model.Order, error) {
	return u.orders.Cancel(ctx, id)
}
