package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/djolof-farm/backend/internal/adapter/payment"
	"github.com/djolof-farm/backend/internal/config"
	"github.com/djolof-farm/backend/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newOrderUseCase,
	newPaymentUseCase,
)

type orderParams struct {
	fx.In

	Orders repository.OrderRepository
	Config *config.Config
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(p.Orders, p.Config.DeliveryFee)
}

type paymentParams struct {
	fx.In

	Orders   repository.OrderRepository
	Registry *payment.Registry
	Logger   *slog.Logger
}

func newPaymentUseCase(p paymentParams) *PaymentUseCase {
	return NewPaymentUseCase(p.Orders, p.Registry, p.Logger)
}
