package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/djolof-farm/backend/internal/adapter/payment"
	domainErrors "github.com/djolof-farm/backend/internal/domain/errors"
	"github.com/djolof-farm/backend/internal/domain/model"
	"github.com/djolof-farm/backend/internal/domain/repository"
)

// WebhookEvent is the canonical form every provider callback is mapped to
// before processing.
type WebhookEvent struct {
	Reference string
	Succeeded bool
}

// PaymentUseCase drives payment initiation and reconciles asynchronous
// provider confirmations against orders.
type PaymentUseCase struct {
	orders   repository.OrderRepository
	registry *payment.Registry
	logger   *slog.Logger
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(orders repository.OrderRepository, registry *payment.Registry, logger *slog.Logger) *PaymentUseCase {
	return &PaymentUseCase{orders: orders, registry: registry, logger: logger}
}

// Initiate starts a payment session for the order. A provider failure leaves
// the order untouched; nothing is recorded until the session exists. A
// confirmation that commits during the provider call wins: the store refuses
// to record the session over a completed payment and ErrAlreadyPaid surfaces.
func (u *PaymentUseCase) Initiate(ctx context.Context, orderID string, method model.PaymentMethod, phoneNumber string) (*payment.Session, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus == model.PaymentStatusCompleted {
		return nil, domainErrors.ErrAlreadyPaid
	}
	provider, ok := u.registry.Get(method)
	if !ok {
		return nil, fmt.Errorf("payment_method %q: %w", method, domainErrors.ErrInvalidInput)
	}

	session, err := provider.Initiate(ctx, order, phoneNumber)
	if err != nil {
		return nil, err
	}

	if err := u.orders.SetPaymentInitiated(ctx, orderID, method, session.Reference); err != nil {
		return nil, err
	}
	return session, nil
}

// HandleEvent applies one provider confirmation. Events that cannot be mapped
// to an order are logged and absorbed so the provider is never induced to
// retry a shape it cannot fix; redelivered confirmations are no-ops.
func (u *PaymentUseCase) HandleEvent(ctx context.Context, event WebhookEvent) error {
	if event.Reference == "" {
		u.logger.Warn("webhook event without reference dropped")
		return nil
	}
	if !event.Succeeded {
		u.logger.Info("ignoring non-success webhook event", slog.String("reference", event.Reference))
		return nil
	}

	order, err := u.resolveOrder(ctx, event.Reference)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) || errors.Is(err, domainErrors.ErrMalformedEvent) {
			u.logger.Warn("webhook event could not be resolved", slog.String("reference", event.Reference))
			return nil
		}
		return err
	}

	updated, applied, err := u.orders.CompletePayment(ctx, order.ID, event.Reference)
	if err != nil {
		return err
	}
	if applied {
		u.logger.Info("payment confirmed",
			slog.String("order_id", updated.ID),
			slog.String("reference", event.Reference))
	} else {
		u.logger.Info("payment confirmation was a no-op",
			slog.String("order_id", updated.ID),
			slog.String("reference", event.Reference))
	}
	return nil
}

// resolveOrder prefers the stored payment_reference; the positional
// decomposition of the reference string is kept only as a fallback for
// sessions initiated before the reference was recorded.
func (u *PaymentUseCase) resolveOrder(ctx context.Context, reference string) (*model.Order, error) {
	order, err := u.orders.GetByPaymentRef(ctx, reference)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	orderID, ok := payment.OrderIDFromReference(reference)
	if !ok {
		return nil, fmt.Errorf("reference %q: %w", reference, domainErrors.ErrMalformedEvent)
	}
	return u.orders.GetByID(ctx, orderID)
}

// Status reports the payment view of one order.
func (u *PaymentUseCase) Status(ctx context.Context, orderID string) (*model.Order, error) {
	return u.orders.GetByID(ctx, orderID)
}

// SimulateSuccess completes a payment without any provider round-trip. The
// route exposing it is only mounted outside production.
func (u *PaymentUseCase) SimulateSuccess(ctx context.Context, orderID string) (*model.Order, error) {
	if _, err := u.orders.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	reference := fmt.Sprintf("SIM_%d", time.Now().UnixMilli())
	order, _, err := u.orders.CompletePayment(ctx, orderID, reference)
	if err != nil {
		return nil, err
	}
	return order, nil
}
