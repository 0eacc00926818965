package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/djolof-farm/backend/internal/domain/model"
)

// SimulationProvider stands in for a mobile-money provider outside production.
// It issues a real reference and a locally-resolvable confirmation URL so the
// webhook path can be exercised without contacting anyone.
type SimulationProvider struct {
	method      model.PaymentMethod
	frontendURL string
}

func NewSimulationProvider(method model.PaymentMethod, frontendURL string) *SimulationProvider {
	return &SimulationProvider{method: method, frontendURL: frontendURL}
}

func (p *SimulationProvider) Method() model.PaymentMethod {
	return p.method
}

func (p *SimulationProvider) Initiate(ctx context.Context, order *model.Order, phoneNumber string) (*Session, error) {
	reference := NewReference(order.ID)
	return &Session{
		Reference:    reference,
		PaymentURL:   fmt.Sprintf("%s/payment-simulation/%s/%s", p.frontendURL, p.method, reference),
		SessionToken: "sim_" + uuid.NewString(),
		Simulated:    true,
	}, nil
}
