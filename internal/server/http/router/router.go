package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/djolof-farm/backend/internal/config"
	"github.com/djolof-farm/backend/internal/server/http/handlers"
	"github.com/djolof-farm/backend/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ShopFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade, !cfg.IsProduction())
	healthHandler := handlers.NewHealthHandler(facade, cfg.AppEnv)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)

	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired(facade))
	orders.POST("", orderHandler.Create)
	orders.GET("/:id", orderHandler.Get)
	orders.PATCH("/:id/cancel", orderHandler.Cancel)

	staff := orders.Group("")
	staff.Use(middleware.AdminRequired())
	staff.GET("", orderHandler.List)
	staff.PATCH("/:id/status", orderHandler.UpdateStatus)

	payments := api.Group("/payments")
	payments.POST("/wave/callback", paymentHandler.WaveCallback)
	payments.POST("/orange/callback", paymentHandler.OrangeCallback)

	paymentsAuth := payments.Group("")
	paymentsAuth.Use(middleware.AuthRequired(facade))
	paymentsAuth.POST("/initiate", paymentHandler.Initiate)
	paymentsAuth.GET("/status/:order_id", paymentHandler.Status)
	if !cfg.IsProduction() {
		paymentsAuth.POST("/simulate-success", paymentHandler.SimulateSuccess)
	}

	return engine
}
