package payment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/djolof-farm/backend/internal/config"
	"github.com/djolof-farm/backend/internal/domain/model"
)

// Module exposes the provider registry to the fx graph.
var Module = fx.Provide(newRegistry)

type registryParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// newRegistry builds the set of live providers. Outside production the
// mobile-money variants are replaced with the simulation provider, so the
// simulated path is structurally unreachable in a production configuration.
func newRegistry(p registryParams) (*Registry, error) {
	providers := []Provider{NewCashProvider()}

	if p.Config.IsProduction() {
		wave, err := NewWaveProvider(
			p.Config.WaveAPIKey,
			p.Config.WaveBaseURL,
			p.Config.FrontendURL,
			p.Config.AppURL+"/api/payments/wave/callback",
			p.Config.ProviderTimeout,
			p.Logger,
		)
		if err != nil {
			return nil, err
		}
		orange, err := NewOrangeMoneyProvider(
			p.Config.OrangeMerchant,
			p.Config.OrangeBaseURL,
			p.Config.FrontendURL,
			p.Config.AppURL+"/api/payments/orange/callback",
			p.Config.ProviderTimeout,
			p.Logger,
		)
		if err != nil {
			return nil, err
		}
		providers = append(providers, wave, orange)
	} else {
		providers = append(providers,
			NewSimulationProvider(model.PaymentMethodWave, p.Config.FrontendURL),
			NewSimulationProvider(model.PaymentMethodOrangeMoney, p.Config.FrontendURL),
		)
	}

	return NewRegistry(providers...), nil
}
