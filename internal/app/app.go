package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/djolof-farm/backend/internal/adapter/events"
	"github.com/djolof-farm/backend/internal/config"
	"github.com/djolof-farm/backend/internal/domain/repository"
	pkgAuth "github.com/djolof-farm/backend/internal/pkg/auth"
	"github.com/djolof-farm/backend/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewShopFacade,
		newHTTPServer,
		newOutboxRelay,
	),
	fx.Invoke(bootstrapAdmin),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type relayParams struct {
	fx.In

	Facade    *ShopFacade
	Publisher events.Publisher
	Config    *config.Config
	Logger    *slog.Logger
}

func newOutboxRelay(p relayParams) *worker.OutboxRelay {
	return worker.NewOutboxRelay(
		p.Facade,
		p.Publisher,
		p.Config.RelayPollInterval,
		p.Config.RelayBatchSize,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

type bootstrapParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Users     repository.UserRepository
	Hasher    pkgAuth.PasswordHasher
	Logger    *slog.Logger
}

// bootstrapAdmin creates the staff account on startup when credentials are
// configured. Existing accounts are left untouched.
func bootstrapAdmin(p bootstrapParams) {
	if p.Config.AdminEmail == "" || p.Config.AdminPassword == "" {
		return
	}
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			hash, err := p.Hasher.Hash(p.Config.AdminPassword)
			if err != nil {
				return err
			}
			id, err := p.Users.EnsureAdmin(ctx, p.Config.AdminEmail, hash)
			if err != nil {
				return err
			}
			p.Logger.Info("admin account ready", slog.String("user_id", id))
			return nil
		},
	})
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Relay      *worker.OutboxRelay
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting farmshop", slog.String("addr", p.Server.Addr))
			// the start context is cancelled once startup finishes, the
			// relay owns its own lifetime until Stop
			p.Relay.Start(context.Background())
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Relay.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("farmshop stopped")
			return nil
		},
	})
}
