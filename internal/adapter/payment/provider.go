package payment

import (
	"context"
	"fmt"

	"github.com/djolof-farm/backend/internal/domain/model"
)

// Session is the result of initiating a payment with a provider. Reference is
// the correlation key later echoed back by the provider's webhook.
type Session struct {
	Reference    string
	PaymentURL   string
	SessionToken string
	Simulated    bool
}

// Provider initiates a payment for one payment method. Initiation never
// mutates order state; a failed call leaves the order exactly as it was.
type Provider interface {
	Method() model.PaymentMethod
	Initiate(ctx context.Context, order *model.Order, phoneNumber string) (*Session, error)
}

// GatewayError reports a transport or provider failure during initiation.
type GatewayError struct {
	Provider string
	Err      error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s gateway: %v", e.Provider, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
