package di

import (
	"go.uber.org/fx"

	"github.com/djolof-farm/backend/internal/adapter/events"
	"github.com/djolof-farm/backend/internal/adapter/payment"
	"github.com/djolof-farm/backend/internal/app"
	"github.com/djolof-farm/backend/internal/config"
	"github.com/djolof-farm/backend/internal/logger"
	"github.com/djolof-farm/backend/internal/pkg/auth"
	"github.com/djolof-farm/backend/internal/server/http/handlers"
	"github.com/djolof-farm/backend/internal/server/http/router"
	"github.com/djolof-farm/backend/internal/storage/postgres"
	"github.com/djolof-farm/backend/internal/usecase"
)

// Module assembles the full application graph.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		payment.Module,
		events.Module,
		usecase.Module,
		fx.Provide(func(s *postgres.Storage) app.Pinger { return s }),
		fx.Provide(func(f *app.ShopFacade) handlers.ShopFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
