package app

import (
	"context"

	"github.com/djolof-farm/backend/internal/adapter/payment"
	"github.com/djolof-farm/backend/internal/domain/model"
	"github.com/djolof-farm/backend/internal/domain/repository"
	pkgAuth "github.com/djolof-farm/backend/internal/pkg/auth"
	"github.com/djolof-farm/backend/internal/usecase"
)

// Pinger reports connectivity of the backing store.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// ShopFacade aggregates the operations exposed to the HTTP surface and the
// outbox relay.
type ShopFacade struct {
	orders   *usecase.OrderUseCase
	payments *usecase.PaymentUseCase
	events   repository.EventRepository
	tokens   pkgAuth.Strategy
	store    Pinger
}

// NewShopFacade constructs the facade over business use cases.
func NewShopFacade(orders *usecase.OrderUseCase, payments *usecase.PaymentUseCase, events repository.EventRepository, tokens pkgAuth.Strategy, store Pinger) *ShopFacade {
	return &ShopFacade{orders: orders, payments: payments, events: events, tokens: tokens, store: store}
}

func (f *ShopFacade) ParseToken(token string) (pkgAuth.Identity, error) {
	return f.tokens.ParseToken(token)
}

func (f *ShopFacade) CreateOrder(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	return f.orders.Create(ctx, draft)
}

func (f *ShopFacade) Orders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	return f.orders.List(ctx, filter)
}

func (f *ShopFacade) Order(ctx context.Context, id string) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

func (f *ShopFacade) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, id, status)
}

func (f *ShopFacade) CancelOrder(ctx context.Context, id string) (*model.Order, error) {
	return f.orders.Cancel(ctx, id)
}

func (f *ShopFacade) InitiatePayment(ctx context.Context, orderID string, method model.PaymentMethod, phoneNumber string) (*payment.Session, error) {
	return f.payments.Initiate(ctx, orderID, method, phoneNumber)
}

func (f *ShopFacade) HandlePaymentEvent(ctx context.Context, event usecase.WebhookEvent) error {
	return f.payments.HandleEvent(ctx, event)
}

func (f *ShopFacade) PaymentStatus(ctx context.Context, orderID string) (*model.Order, error) {
	return f.payments.Status(ctx, orderID)
}

func (f *ShopFacade) SimulatePaymentSuccess(ctx context.Context, orderID string) (*model.Order, error) {
	return f.payments.SimulateSuccess(ctx, orderID)
}

func (f *ShopFacade) HealthCheck(ctx context.Context) error {
	return f.store.HealthCheck(ctx)
}

func (f *ShopFacade) PendingEvents(ctx context.Context, limit int) ([]model.OrderEvent, error) {
	return f.events.PendingBatch(ctx, limit)
}

func (f *ShopFacade) MarkEventPublished(ctx context.Context, eventID int64) error {
	return f.events.MarkPublished(ctx, eventID)
}
