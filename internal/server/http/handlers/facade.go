package handlers

import (
	"context"

	"github.com/djolof-farm/backend/internal/adapter/payment"
	"github.com/djolof-farm/backend/internal/domain/model"
	"github.com/djolof-farm/backend/internal/pkg/auth"
	"github.com/djolof-farm/backend/internal/usecase"
)

// TokenFacade describes token capabilities required by middleware.
type TokenFacade interface {
	ParseToken(token string) (auth.Identity, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, draft model.OrderDraft) (*model.Order, error)
	Orders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	Order(ctx context.Context, id string) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
	CancelOrder(ctx context.Context, id string) (*model.Order, error)
}

// PaymentFacade provides payment session and reconciliation operations.
type PaymentFacade interface {
	InitiatePayment(ctx context.Context, orderID string, method model.PaymentMethod, phoneNumber string) (*payment.Session, error)
	HandlePaymentEvent(ctx context.Context, event usecase.WebhookEvent) error
	PaymentStatus(ctx context.Context, orderID string) (*model.Order, error)
	SimulatePaymentSuccess(ctx context.Context, orderID string) (*model.Order, error)
}

// HealthFacade reports backing store connectivity.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// ShopFacade aggregates the full set of operations used across handlers.
type ShopFacade interface {
	TokenFacade
	OrderFacade
	PaymentFacade
	HealthFacade
}
