package payment

import (
	"context"

	"github.com/djolof-farm/backend/internal/domain/model"
)

// CashProvider handles payment collected by staff at fulfillment time. No
// external call is made and no reference is issued; the payment stays pending
// until confirmed out-of-band.
type CashProvider struct{}

func NewCashProvider() *CashProvider {
	return &CashProvider{}
}

func (p *CashProvider) Method() model.PaymentMethod {
	return model.PaymentMethodCash
}

func (p *CashProvider) Initiate(ctx context.Context, order *model.Order, phoneNumber string) (*Session, error) {
	return &Session{}, nil
}
